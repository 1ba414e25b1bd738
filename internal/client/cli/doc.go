// Package cli provides the interactive terminal client for the bank.
//
// It wires configuration, the local metadata store, the backend services and
// a REPL. The prompt shows who is logged in and whether the backend is
// reachable, as reported by a background watcher.
//
// Key features:
//   - Register, and a two-step login: email and PIN, then the OTP
//   - Dashboard, full history and profile for customers
//   - Deposit and withdraw; a failed amount is offered again as the default
//   - Plain-text statements saved to a directory or an S3 bucket
//   - Account roster and status changes for the administrator
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
