// Package mongodb implements store.TaskStore on a MongoDB collection.
//
// Each task is one document: {_id: ObjectID, text, completed, createdAt}.
// The driver's connection pool is created once at startup and shared by all
// requests.
package mongodb
