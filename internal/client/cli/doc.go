// Package cli provides the interactive gymbacteria command-line client.
//
// It wires configuration, the credential store, the API client, the session
// manager and route guard, and an interactive REPL. Typical flow: resolve the
// persisted session, start a background connectivity watcher, and execute
// user commands.
//
// Key features:
//   - Login / Signup / Logout with the access key read from the terminal
//   - whoami and status, optionally re-resolving the user against the API
//   - go <path> to move between pages, subject to the route guard
//   - ping and delete-account
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
