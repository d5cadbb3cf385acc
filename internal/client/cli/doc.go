// Package cli provides the interactive journal command-line client.
//
// It wires configuration, the HTTP API client and a small REPL. The user
// logs in once with the default account; the bearer token is kept in memory
// for the rest of the session. A background watcher probes /healthz and
// shows whether the server is reachable in the prompt.
//
// Commands: login, logout, me, list, add, show, edit, delete, calendar,
// help, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
