// Package session owns the client's single authenticated session.
//
// Manager is the only writer of the session state. Operations may overlap:
// each one takes a new generation when it starts and applies its result only
// if no later operation has started since, so the state always reflects the
// most recently started operation. Network calls and store reads run outside
// the lock; store writes run inside the same critical section as the state
// change they belong to. Side effects of state changes (recorder, observers,
// navigation) are delivered one at a time in the order the changes were made.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gymbacteria/internal/client/client"
	"github.com/dmitrijs2005/gymbacteria/internal/client/credstore"
	"github.com/dmitrijs2005/gymbacteria/internal/client/guard"
	"github.com/dmitrijs2005/gymbacteria/internal/client/identity"
	"github.com/dmitrijs2005/gymbacteria/internal/client/metrics"
	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
	"github.com/dmitrijs2005/gymbacteria/internal/client/navigation"
	"github.com/dmitrijs2005/gymbacteria/internal/common"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
)

// DefaultLandingPath is opened after a successful login.
const DefaultLandingPath = "/training-plans"

type Manager struct {
	store    credstore.Store
	resolver identity.Resolver
	nav      navigation.Navigator
	logger   logging.Logger
	recorder Recorder

	landingPath string
	loginPath   string

	mu         sync.Mutex
	state      models.Session
	credential string
	gen        uint64
	started    bool
	closed     bool
	observers  []Observer
	subs       map[int]chan models.Session
	nextSub    int
	pending    []change

	// pubMu is held while pending changes are delivered.
	pubMu sync.Mutex

	// lastUser is the user of the most recent authenticated state. A failed
	// login returns to it.
	lastUser *models.User
}

// NewManager returns a Manager in PhaseInitializing. Call Start to resolve
// the persisted session.
func NewManager(store credstore.Store, resolver identity.Resolver, nav navigation.Navigator,
	logger logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		resolver:    resolver,
		nav:         nav,
		logger:      logger.With("module", "session"),
		recorder:    nopRecorder{},
		landingPath: DefaultLandingPath,
		loginPath:   guard.LoginPath,
		state:       models.Session{Phase: models.PhaseInitializing},
		subs:        make(map[int]chan models.Session),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// change is a state transition queued for publishing.
type change struct {
	prev, next models.Session
	navigate   string
}

// Start resolves the persisted session: a cached user is adopted without a
// network call, a cached credential is resolved, otherwise the session is
// unauthenticated. A rejected credential clears the store and expires the
// session.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.started {
		m.mu.Unlock()
		return ErrStarted
	}
	m.started = true
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	u, cached := m.store.LoadUser(ctx)
	cred, ok := m.store.Load(ctx)

	if cached || !ok {
		m.mu.Lock()
		if err := m.currentLocked(gen); err != nil {
			m.mu.Unlock()
			return err
		}
		if cached {
			if !ok {
				cred = u.AccessKey
			}
			m.authenticateLocked(cred, u, "")
		} else {
			m.setLocked(models.Session{Phase: models.PhaseUnauthenticated}, "")
		}
		m.mu.Unlock()

		if cached {
			m.logger.Info(ctx, "adopted cached user", "user_id", u.ID)
		}
		m.flush()
		return nil
	}

	u, err := m.resolver.Resolve(ctx, cred)

	m.mu.Lock()
	if cerr := m.currentLocked(gen); cerr != nil {
		m.mu.Unlock()
		return cerr
	}
	wctx := context.WithoutCancel(ctx)
	if err != nil {
		m.store.Clear(wctx)
		m.credential, m.lastUser = "", nil
		m.setLocked(models.Session{Phase: models.PhaseExpired, Error: MsgSessionExpired}, "")
	} else {
		m.store.SaveUser(wctx, u)
		m.authenticateLocked(cred, u, "")
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Info(ctx, "persisted credential rejected", "credential", common.MaskSecret(cred), "error", err)
	}
	m.flush()
	return err
}

// Login authenticates with credential. On success the credential and user
// are persisted and the landing page is opened. On failure the store is left
// untouched, Error is set to MsgInvalidCredential and the session returns to
// the previously authenticated user, if there was one.
func (m *Manager) Login(ctx context.Context, credential string) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.started = true
	m.gen++
	gen := m.gen
	m.setLocked(models.Session{Phase: models.PhaseAuthenticating}, "")
	m.mu.Unlock()
	m.flush()

	u, err := m.resolver.Resolve(ctx, credential)

	m.mu.Lock()
	if cerr := m.currentLocked(gen); cerr != nil {
		m.mu.Unlock()
		m.recorder.Login(metrics.ResultSuperseded)
		return cerr
	}
	if err != nil {
		next := models.Session{Phase: models.PhaseUnauthenticated, Error: MsgInvalidCredential}
		if m.lastUser != nil {
			next = models.Session{Phase: models.PhaseAuthenticated, User: m.lastUser, Error: MsgInvalidCredential}
		}
		m.setLocked(next, "")
		m.mu.Unlock()

		m.recorder.Login(metrics.ResultFailure)
		m.logger.Info(ctx, "login failed", "credential", common.MaskSecret(credential), "error", err)
		m.flush()
		return err
	}

	m.store.SaveSession(context.WithoutCancel(ctx), credential, u)
	m.authenticateLocked(credential, u, m.landingPath)
	m.mu.Unlock()

	m.recorder.Login(metrics.ResultSuccess)
	m.logger.Info(ctx, "logged in", "user_id", u.ID)
	m.flush()
	return nil
}

// Logout clears the session and the store and opens the login page. It
// always succeeds and supersedes any operation in flight.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.store.Clear(context.WithoutCancel(ctx))
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.signOutLocked()
	m.mu.Unlock()

	m.logger.Info(ctx, "logged out")
	m.flush()
}

// Refresh re-resolves the current credential, replacing a stale cached user.
// A rejection expires the session. If the identity service is unreachable
// the session is kept and Error is set to MsgServiceUnavailable.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state.Phase != models.PhaseAuthenticated {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.gen++
	gen := m.gen
	cred := m.credential
	m.mu.Unlock()

	u, err := m.resolver.Resolve(ctx, cred)

	m.mu.Lock()
	if cerr := m.currentLocked(gen); cerr != nil {
		m.mu.Unlock()
		return cerr
	}
	wctx := context.WithoutCancel(ctx)
	switch {
	case err == nil:
		if !u.Equal(m.state.User) {
			m.store.SaveUser(wctx, u)
		}
		m.authenticateLocked(cred, u, "")
	case errors.Is(err, client.ErrUnavailable):
		next := m.state
		next.Error = MsgServiceUnavailable
		m.setLocked(next, "")
	default:
		m.store.Clear(wctx)
		m.credential, m.lastUser = "", nil
		m.setLocked(models.Session{Phase: models.PhaseExpired, Error: MsgSessionExpired}, "")
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Info(ctx, "refresh failed", "error", err)
	}
	m.flush()
	return err
}

// DeleteAccount deletes the current identity on the server, then signs out.
// On failure the session is unchanged.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state.Phase != models.PhaseAuthenticated {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.gen++
	gen := m.gen
	cred := m.credential
	m.mu.Unlock()

	if err := m.resolver.Delete(ctx, cred); err != nil {
		return err
	}

	m.mu.Lock()
	if err := m.currentLocked(gen); err != nil {
		m.mu.Unlock()
		return err
	}
	m.store.Clear(context.WithoutCancel(ctx))
	m.signOutLocked()
	m.mu.Unlock()

	m.logger.Info(ctx, "account deleted")
	m.flush()
	return nil
}

// Snapshot returns the current session value.
func (m *Manager) Snapshot() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Phase returns the current phase.
func (m *Manager) Phase() models.Phase {
	return m.Snapshot().Phase
}

// Subscribe returns a channel that receives the current session and then
// every change. Slow readers only see the latest value. The channel is
// closed by the returned cancel func or by Close.
func (m *Manager) Subscribe() (<-chan models.Session, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan models.Session, 1)
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- m.state
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
}

// AddObserver registers an observer.
func (m *Manager) AddObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Close tears the manager down. Results of operations still in flight are
// discarded and subscriber channels are closed. Close is idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.gen++
	for id, c := range m.subs {
		delete(m.subs, id)
		close(c)
	}
}

func (m *Manager) currentLocked(gen uint64) error {
	if m.closed {
		return ErrClosed
	}
	if gen != m.gen {
		return ErrSuperseded
	}
	return nil
}

func (m *Manager) authenticateLocked(cred string, u *models.User, navigate string) {
	m.credential, m.lastUser = cred, u
	m.setLocked(models.Session{Phase: models.PhaseAuthenticated, User: u}, navigate)
}

func (m *Manager) signOutLocked() {
	m.gen++
	m.started = true
	m.credential, m.lastUser = "", nil
	m.setLocked(models.Session{Phase: models.PhaseUnauthenticated}, m.loginPath)
}

// setLocked swaps the state, fans it out to subscribers and queues the
// change for flush.
func (m *Manager) setLocked(next models.Session, navigate string) {
	prev := m.state
	m.state = next
	for _, c := range m.subs {
		select {
		case c <- next:
		default:
			select {
			case <-c:
			default:
			}
			c <- next
		}
	}
	m.pending = append(m.pending, change{prev: prev, next: next, navigate: navigate})
}

// flush delivers queued changes in order. It must be called without m.mu
// held, and observers must not call back into operations that change the
// session. A caller blocked behind another flush returns once that flush has
// delivered its change too.
func (m *Manager) flush() {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return
		}
		ch := m.pending[0]
		m.pending = m.pending[1:]
		observers := append([]Observer(nil), m.observers...)
		m.mu.Unlock()

		m.publish(ch, observers)
	}
}

func (m *Manager) publish(ch change, observers []Observer) {
	if !sameSession(ch.prev, ch.next) {
		if ch.prev.Phase != ch.next.Phase {
			m.recorder.Transition(ch.prev.Phase, ch.next.Phase)
		}
		for _, o := range observers {
			o(ch.prev, ch.next)
		}
	}
	if ch.navigate != "" && m.nav != nil {
		m.nav.Navigate(ch.navigate)
	}
}

func sameSession(a, b models.Session) bool {
	return a.Phase == b.Phase && a.Error == b.Error && a.User.Equal(b.User)
}
