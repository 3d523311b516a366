// Package store persists shift records and wage rates in SQLite.
//
// It owns schema migrations, connection pragmas, and the row-to-model
// translation for the rest of the system. Lookups that find nothing return
// (nil, nil) rather than an error so callers can branch without unwrapping.
// Timestamps are stored as RFC 3339 text in UTC.
package store
