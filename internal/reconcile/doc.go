// Package reconcile compares hours computed from recorded shifts against
// the hours a paystub claims for the same pay period and grades the gap.
//
// The verdict is an ordered guard chain: no computed data wins over
// everything, a missing claim is reported before any percentage math, and
// the percent-difference bands assign exact boundary values to the more
// favorable tier. Invalid claim dates collapse to an empty window rather
// than an error so the surrounding form stays editable.
package reconcile
