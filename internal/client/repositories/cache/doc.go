// Package cache persists small backend responses (such as the public
// configuration) in the local SQLite database so the client can fall back to
// the last known copy when the backend is unreachable.
package cache
