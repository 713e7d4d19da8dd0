// Package cli provides the interactive accountctl command-line client.
//
// It wires configuration and the gRPC API client into a REPL covering the
// whole account lifecycle: register, verify, resend, login, passwd, profile,
// edit, users and logout. A background watcher pings the server and switches
// the prompt between online and offline.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
