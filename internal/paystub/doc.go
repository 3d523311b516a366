// Package paystub heuristically pulls pay-period bounds and claimed hours
// out of plain text converted from a paystub document.
//
// Extraction runs ordered, independently named rules with first-match-wins
// semantics per field. Every field is optional: layouts vary wildly between
// payroll providers, so a miss returns an empty field for the user to fill
// in by hand rather than an error.
package paystub
