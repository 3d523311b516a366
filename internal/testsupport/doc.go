// Package testsupport provides shared helpers for package tests: temp-backed
// configs, an opened store with cleanup, seed records, and PATH-stubbed
// external binaries.
package testsupport
