package session

import "errors"

var (
	// ErrSuperseded is returned by an operation whose result was discarded
	// because a later operation started before it completed.
	ErrSuperseded = errors.New("superseded by a later session operation")
	// ErrClosed is returned once the manager has been closed.
	ErrClosed = errors.New("session manager closed")
	// ErrNotAuthenticated is returned by operations that need a session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrStarted is returned by a second Start.
	ErrStarted = errors.New("session already started")
)

// User-visible error messages carried in models.Session.Error.
const (
	MsgInvalidCredential  = "invalid credential"
	MsgSessionExpired     = "session expired"
	MsgServiceUnavailable = "identity service unavailable"
)
