// Package client contains the tracker's transport to the backend and the
// local database bootstrap.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, a JSON transport rooted at BasePath that attaches the
//     stored bearer token, stamps every request with an X-Request-ID and
//     treats any 401 as a forced logout (the token is cleared and the
//     UnauthorizedHandler runs before the error is returned).
//  2. The API interface and its RESTClient implementation, one method per
//     backend endpoint. Application endpoints return raw JSON; reshaping it
//     is the status package's job.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are classified by Kind. Non-2xx responses are *APIError values
// that also match the sentinels ErrUnauthorized, ErrForbidden, ErrNotFound
// and ErrValidation through errors.Is. Transport failures wrap
// ErrUnavailable. A stored token is never sent over plain http to a
// non-loopback host unless explicitly allowed (ErrInsecureTransport).
//
// # Concurrency
//
// HTTPClient and RESTClient are safe for concurrent use. All operations
// accept a context.Context and honor cancellation.
package client
