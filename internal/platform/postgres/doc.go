// Package postgres implements store.TaskStore on PostgreSQL, keeping each
// task as a JSONB document next to its store-assigned UUID and creation
// time. It uses the pgx driver through database/sql and manages its single
// table with embedded goose migrations.
package postgres
