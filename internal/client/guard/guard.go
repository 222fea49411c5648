// Package guard keeps protected pages unreachable without an active session.
//
// Evaluate is the pure rule. Guard binds it to a phase source and a
// navigator: its Policy runs on every navigation and Check runs on every
// session transition, so both triggers of the rule are covered.
package guard

import (
	"slices"

	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
	"github.com/dmitrijs2005/gymbacteria/internal/client/navigation"
)

// LoginPath is the login entry point.
const LoginPath = "/login"

// SignupPath is the registration page.
const SignupPath = "/signup"

// PublicPaths are reachable without a session.
var PublicPaths = []string{LoginPath, SignupPath}

// IsPublic reports whether p is in PublicPaths.
func IsPublic(p string) bool {
	return slices.Contains(PublicPaths, navigation.Clean(p))
}

// Evaluate returns LoginPath and true when a client in phase must not stay
// on p. Loading phases never redirect.
func Evaluate(p string, phase models.Phase) (string, bool) {
	if phase.SignedOut() && !IsPublic(p) {
		return LoginPath, true
	}
	return "", false
}

// Guard applies Evaluate to a live session.
type Guard struct {
	phase func() models.Phase
	nav   navigation.Navigator
}

// New returns a Guard reading the session phase from phase.
func New(phase func() models.Phase, nav navigation.Navigator) *Guard {
	return &Guard{phase: phase, nav: nav}
}

// Policy is the navigation policy to install on a router.
func (g *Guard) Policy() navigation.Policy {
	return func(p string) (string, bool) {
		return Evaluate(p, g.phase())
	}
}

// Check re-evaluates the current location and redirects if needed.
func (g *Guard) Check() {
	g.enforce(g.phase())
}

// Observe is a session observer that enforces the rule for the new phase.
func (g *Guard) Observe(_, next models.Session) {
	g.enforce(next.Phase)
}

func (g *Guard) enforce(phase models.Phase) {
	if to, ok := Evaluate(g.nav.Current(), phase); ok {
		g.nav.Navigate(to)
	}
}
