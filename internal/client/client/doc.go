// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. A transport-agnostic contract for the banking backend (see Client):
//     Login, Register, GetUser, Deposit, Withdraw, and the admin calls
//     ListUsers, Stats and SetUserStatus.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that tags every call
//     with an X-Request-ID and maps failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Connectivity problems surface as ErrUnavailable. A non-2xx reply becomes an
// *APIError carrying the backend's message; it also matches ErrUnauthorized,
// ErrForbidden or ErrNotFound through errors.Is when the status code says so.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every operation takes a
// context.Context and honours cancellation on top of the configured
// per-request timeout.
package client
