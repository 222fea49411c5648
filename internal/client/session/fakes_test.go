package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gymbacteria/internal/client/client"
	"github.com/dmitrijs2005/gymbacteria/internal/client/credstore"
	"github.com/dmitrijs2005/gymbacteria/internal/client/identity"
	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
)

// fakeResolver resolves from a fixed table. A credential with a gate blocks
// in Resolve until the gate is closed.
type fakeResolver struct {
	mu        sync.Mutex
	users     map[string]*models.User
	errs      map[string]error
	gates     map[string]chan struct{}
	entered   chan string
	deleteErr error

	Calls       []string
	LastDeleted string
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		users:   map[string]*models.User{},
		errs:    map[string]error{},
		gates:   map[string]chan struct{}{},
		entered: make(chan string, 64),
	}
}

func (f *fakeResolver) add(u *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.AccessKey] = u
}

func (f *fakeResolver) gate(cred string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := make(chan struct{})
	f.gates[cred] = g
	return g
}

func (f *fakeResolver) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *fakeResolver) Resolve(ctx context.Context, cred string) (*models.User, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, cred)
	u, err, gate := f.users[cred], f.errs[cred], f.gates[cred]
	f.mu.Unlock()

	f.entered <- cred
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", identity.ErrAuthenticationFailed, ctx.Err())
		}
	}

	if err == nil && u == nil {
		err = client.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", identity.ErrAuthenticationFailed, err)
	}
	return u, nil
}

func (f *fakeResolver) Create(_ context.Context, nickname, cred string) (*models.User, error) {
	u := &models.User{ID: 99, Nickname: nickname, AccessKey: cred}
	f.add(u)
	return u, nil
}

func (f *fakeResolver) Delete(_ context.Context, cred string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastDeleted = cred
	if f.deleteErr != nil {
		return fmt.Errorf("%w: %w", identity.ErrDeletionFailed, f.deleteErr)
	}
	delete(f.users, cred)
	return nil
}

type fakeNavigator struct {
	mu      sync.Mutex
	current string
	Visited []string
}

func (n *fakeNavigator) Navigate(p string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = p
	n.Visited = append(n.Visited, p)
}

func (n *fakeNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *fakeNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Visited...)
}

// blockingStore holds LoadUser until release is closed.
type blockingStore struct {
	credstore.Store
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) LoadUser(ctx context.Context) (*models.User, bool) {
	close(s.entered)
	<-s.release
	return s.Store.LoadUser(ctx)
}
