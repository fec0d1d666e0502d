// Package cli provides the interactive irccwatch terminal client.
//
// It wires configuration, the local token database, the REST client, the
// authentication session and the screen services into a REPL. Every command
// maps to a route; the route guard decides whether the screen renders or the
// user is redirected, and redirects are printed as "→ /path".
//
// Key features:
//   - Register / Login / Logout / Change password
//   - Manage IRCC credentials (add, edit, toggle monitoring, delete)
//   - Browse normalized application status and history
//   - Admin dashboard, check-all and test e-mail triggers
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
