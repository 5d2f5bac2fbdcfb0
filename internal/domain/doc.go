// Package domain defines the core business entities and errors of the task
// list. It has no dependencies on storage or transport packages.
package domain
