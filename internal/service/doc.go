// Package service contains the task list use cases. It validates input,
// calls the store defined in internal/store and translates store errors
// into the service-level errors the API layer maps to HTTP responses.
//
// Services receive their store through constructor injection and never hold
// task state between calls.
package service
