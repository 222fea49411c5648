package models

// Phase is the lifecycle state of the client session.
type Phase string

const (
	PhaseInitializing    Phase = "initializing"
	PhaseAuthenticating  Phase = "authenticating"
	PhaseAuthenticated   Phase = "authenticated"
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseExpired         Phase = "expired"
)

// SignedOut reports whether p is one of the phases without an identity that
// the route guard redirects from.
func (p Phase) SignedOut() bool {
	return p == PhaseUnauthenticated || p == PhaseExpired
}

// Session is a read-only snapshot of the session state. User is non-nil
// exactly when Phase is PhaseAuthenticated.
type Session struct {
	User  *User
	Phase Phase
	Error string
}

// IsLoading reports whether a resolution is in progress.
func (s Session) IsLoading() bool {
	return s.Phase == PhaseInitializing || s.Phase == PhaseAuthenticating
}

// Authenticated reports whether the snapshot carries an identity.
func (s Session) Authenticated() bool {
	return s.Phase == PhaseAuthenticated && s.User != nil
}
