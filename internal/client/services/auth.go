// Package services contains application services for the gymbacteria client.
// This file defines the authentication service the REPL talks to: form
// validation, login, signup, logout, identity refresh, liveness probe and
// account deletion.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gymbacteria/internal/client/client"
	"github.com/dmitrijs2005/gymbacteria/internal/client/identity"
	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
)

// SessionManager is the subset of session.Manager the service drives.
type SessionManager interface {
	Login(ctx context.Context, credential string) error
	Logout(ctx context.Context)
	Refresh(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Snapshot() models.Session
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate the form, then authenticate through the session.
//   - Signup: validate the form, generate an access key and register it.
//     The caller shows the key and logs in with it.
//   - Logout: end the session. Never fails.
//   - WhoAmI: current session, optionally re-resolved against the API.
//   - Ping: API health probe.
//   - DeleteAccount: delete the current identity and sign out.
//
// Form problems are returned as *ValidationError.
type AuthService interface {
	Login(ctx context.Context, form LoginForm) error
	Signup(ctx context.Context, form SignupForm) (string, error)
	Logout(ctx context.Context)
	WhoAmI(ctx context.Context, refresh bool) (models.Session, error)
	Ping(ctx context.Context) (*client.Health, error)
	DeleteAccount(ctx context.Context) error
}

type authService struct {
	session  SessionManager
	resolver identity.Resolver
	api      client.Client
	newKey   func() (string, error)
}

// NewAuthService constructs an AuthService over the session manager, the
// identity resolver (for signup) and the API client (for health checks).
func NewAuthService(session SessionManager, resolver identity.Resolver, api client.Client) AuthService {
	return &authService{
		session:  session,
		resolver: resolver,
		api:      api,
		newKey:   identity.GenerateAccessKey,
	}
}

func (a *authService) Login(ctx context.Context, form LoginForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return a.session.Login(ctx, strings.TrimSpace(form.AccessKey))
}

func (a *authService) Signup(ctx context.Context, form SignupForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	key, err := a.newKey()
	if err != nil {
		return "", err
	}
	if _, err := a.resolver.Create(ctx, strings.TrimSpace(form.Nickname), key); err != nil {
		return "", fmt.Errorf("signup error: %w", err)
	}
	return key, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}

func (a *authService) WhoAmI(ctx context.Context, refresh bool) (models.Session, error) {
	if refresh {
		if err := a.session.Refresh(ctx); err != nil {
			return a.session.Snapshot(), err
		}
	}
	return a.session.Snapshot(), nil
}

func (a *authService) Ping(ctx context.Context) (*client.Health, error) {
	return a.api.Ping(ctx)
}

func (a *authService) DeleteAccount(ctx context.Context) error {
	return a.session.DeleteAccount(ctx)
}
