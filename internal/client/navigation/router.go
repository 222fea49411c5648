// Package navigation tracks the client's current location (a page path) and
// lets policies redirect a navigation before it lands.
package navigation

import (
	"path"
	"sync"
)

// DefaultHistorySize bounds Router.History when no size is given.
const DefaultHistorySize = 32

// Navigator is the imperative "go to path" primitive.
type Navigator interface {
	Navigate(path string)
	Current() string
}

// Policy returns a replacement path and true when a navigation to p must be
// redirected.
type Policy func(p string) (redirect string, ok bool)

// Listener is notified after the current path changed.
type Listener func(from, to string)

// Router is a goroutine-safe Navigator.
//
// On every Navigate the installed policies are evaluated in order against the
// requested path. The first redirect wins and its target is taken as-is, so
// a navigation is redirected at most once and cannot loop.
type Router struct {
	mu        sync.Mutex
	current   string
	history   []string
	limit     int
	policies  []Policy
	listeners []Listener
}

// NewRouter returns a Router positioned at start. historySize <= 0 selects
// DefaultHistorySize.
func NewRouter(start string, historySize int) *Router {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Router{current: Clean(start), limit: historySize}
}

// Use installs a policy.
func (r *Router) Use(p Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies = append(r.policies, p)
}

// OnChange registers a listener.
func (r *Router) OnChange(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Navigate moves to p, subject to policies. Navigating to the current path
// is a no-op.
func (r *Router) Navigate(p string) {
	target := Clean(p)

	r.mu.Lock()
	policies := append([]Policy(nil), r.policies...)
	r.mu.Unlock()

	// policies may read other components' state; run them unlocked
	for _, pol := range policies {
		if to, ok := pol(target); ok {
			target = Clean(to)
			break
		}
	}

	r.mu.Lock()
	from := r.current
	if from == target {
		r.mu.Unlock()
		return
	}
	r.history = append(r.history, from)
	if len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
	r.current = target
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(from, target)
	}
}

// Current returns the current path.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns previously visited paths, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// Clean normalises p to an absolute, slash-separated path. Empty becomes "/".
func Clean(p string) string {
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
