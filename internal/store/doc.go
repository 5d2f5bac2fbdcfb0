// Package store defines the persistence contract for tasks.
// Implementations live under internal/platform and keep the service layer
// independent of the document store in use.
package store
