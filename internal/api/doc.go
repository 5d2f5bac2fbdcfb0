// Package api handles incoming HTTP requests for the task list: request
// decoding and validation, calls into the task service, and response
// formatting. Error values are translated to status codes here and nowhere
// else.
package api
