// Package api defines the DTOs and service layer shared by the HTTP server
// and the CLI.
//
// Services wrap the persistence layer behind narrow interfaces and return
// JSON-ready value types, keeping wire formatting concerns out of both the
// store and the handlers.
package api
