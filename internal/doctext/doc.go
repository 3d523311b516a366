// Package doctext converts paystub documents to plain text by shelling out
// to pdftotext. Conversion failures collapse to ErrUnreadable so callers can
// show one stable message regardless of what poppler reported.
package doctext
