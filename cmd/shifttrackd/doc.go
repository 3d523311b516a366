// Command shifttrackd runs the shift tracker daemon: it holds the instance
// lock, owns the SQLite store, and serves the HTTP API until interrupted.
package main
