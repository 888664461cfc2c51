// Package cli provides the interactive journal command-line client.
//
// It wires configuration, the hosted identity provider, local session
// storage, and the remote entries API into an interactive REPL. On startup
// the client silently restores any persisted session, then pulls the entry
// list once before handing control to the user.
//
// Key features:
//   - Register / Confirm / Login / Logout against the identity provider
//   - List / Show cached entries, Refresh from the server
//   - Add / Delete entries
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
