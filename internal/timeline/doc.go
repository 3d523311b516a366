// Package timeline folds enriched shifts into per-day totals and derives
// display-ready series from them: dense date-windowed points with
// prior-period deltas, activity heatmap buckets, and per-position earnings
// breakdowns.
//
// Every function here is a full recompute over an immutable snapshot and
// allocates fresh output, so callers can rebuild derived state on any
// refresh without coordinating with readers of previous results.
package timeline
