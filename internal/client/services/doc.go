// Package services implements the use cases behind each client screen on
// top of the REST API, the session and the local cache.
//
// Services validate user input before any request is sent; validation
// failures are returned as *client.APIError values of kind
// client.KindValidation carrying per-field messages. Errors from the
// backend propagate unchanged so screens can render them by kind.
package services
