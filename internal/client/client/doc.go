// Package client contains the client-side transport and local persistence
// bootstrap for gymbacteria.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface) for the
//     training API's user endpoints: GetUser, CreateUser, DeleteUser, Ping.
//  2. An HTTP/JSON implementation (see HTTPClient). Each request carries an
//     X-Request-ID header; non-2xx responses are mapped to sentinel errors.
//  3. Local DB bootstrap (InitDatabase, RunMigrations): a modernc SQLite
//     database with embedded goose migrations.
//
// # Error Handling
//
// Callers match errors with errors.Is: ErrUnavailable (transport failure,
// timeout, 5xx), ErrNotFound (404), ErrUnauthorized (401/403), ErrRejected
// (other 4xx), ErrUnexpectedResponse (wrong status or undecodable body).
package client
