package session

import (
	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
)

// Observer is called after every session change, outside the manager's lock
// and in the order the changes were made. It must not call Manager operations
// that change the session.
type Observer func(prev, next models.Session)

// Recorder receives session events for metrics.
type Recorder interface {
	Login(result string)
	Transition(from, to models.Phase)
}

type Option func(*Manager)

// WithLandingPath sets the page opened after a successful login.
func WithLandingPath(p string) Option {
	return func(m *Manager) { m.landingPath = p }
}

// WithLoginPath sets the page opened after logout.
func WithLoginPath(p string) Option {
	return func(m *Manager) { m.loginPath = p }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observers = append(m.observers, o) }
}

type nopRecorder struct{}

func (nopRecorder) Login(string) {}
func (nopRecorder) Transition(models.Phase, models.Phase) {}
