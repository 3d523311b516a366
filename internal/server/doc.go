// Package server exposes the shift tracker over a local HTTP API.
//
// The server binds to the configured address, optionally enforces a bearer
// token, and delegates all behavior to the api service layer. Handlers map
// service sentinel errors onto HTTP status codes and never embed domain
// logic of their own.
package server
