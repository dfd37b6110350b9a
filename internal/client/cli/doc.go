// Package cli provides the interactive AgriLink terminal client.
//
// It wires configuration, the local state store and the account, product
// and locale services into a REPL. The prompt shows the logged-in email,
// the language and the current view (home, login or dashboard). Product
// commands are dashboard operations and send the user to the login view
// when no session is stored.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
