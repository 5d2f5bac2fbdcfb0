// Package testdb locates the document stores used by integration tests.
// Tests skip when no store is configured, except in CI where a missing store
// is a failure.
package testdb
