package navigation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	cases := map[string]string{
		"":                 "/",
		"login":            "/login",
		"/login/":          "/login",
		"/a/../b":          "/b",
		"/training-plans":  "/training-plans",
		"//double//slash/": "/double/slash",
	}
	for in, want := range cases {
		assert.Equal(t, want, Clean(in), "Clean(%q)", in)
	}
}

func TestNavigate_UpdatesCurrentAndHistory(t *testing.T) {
	r := NewRouter("/", 0)

	r.Navigate("/login")
	r.Navigate("training-plans")

	assert.Equal(t, "/training-plans", r.Current())
	assert.Equal(t, []string{"/", "/login"}, r.History())
}

func TestNavigate_SamePathIsNoop(t *testing.T) {
	r := NewRouter("/login", 0)
	calls := 0
	r.OnChange(func(string, string) { calls++ })

	r.Navigate("/login/")

	assert.Zero(t, calls)
	assert.Empty(t, r.History())
}

func TestNavigate_HistoryIsBounded(t *testing.T) {
	r := NewRouter("/0", 2)
	r.Navigate("/1")
	r.Navigate("/2")
	r.Navigate("/3")

	assert.Equal(t, []string{"/1", "/2"}, r.History())
}

func TestNavigate_PolicyRedirectsOnce(t *testing.T) {
	r := NewRouter("/", 0)
	// would loop forever if redirect targets were re-evaluated
	r.Use(func(p string) (string, bool) { return p + "x", true })

	r.Navigate("/a")
	assert.Equal(t, "/ax", r.Current())
}

func TestNavigate_FirstRedirectWins(t *testing.T) {
	r := NewRouter("/", 0)
	r.Use(func(p string) (string, bool) { return "", false })
	r.Use(func(p string) (string, bool) { return "/login", p == "/secret" })
	r.Use(func(p string) (string, bool) { return "/other", true })

	r.Navigate("/secret")
	assert.Equal(t, "/login", r.Current())
}

func TestNavigate_ListenersSeeTransition(t *testing.T) {
	r := NewRouter("/start", 0)
	var got [][2]string
	r.OnChange(func(from, to string) { got = append(got, [2]string{from, to}) })

	r.Navigate("/a")
	r.Navigate("/b")

	require.Len(t, got, 2)
	assert.Equal(t, [2]string{"/start", "/a"}, got[0])
	assert.Equal(t, [2]string{"/a", "/b"}, got[1])
}

func TestNavigate_ListenerMayReadRouter(t *testing.T) {
	r := NewRouter("/", 0)
	var seen string
	r.OnChange(func(_, _ string) { seen = r.Current() })

	r.Navigate("/x")
	assert.Equal(t, "/x", seen)
}

func TestNavigate_Concurrent(t *testing.T) {
	r := NewRouter("/", 4)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Navigate("/a")
			r.Navigate("/b")
			_ = r.Current()
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, len(r.History()), 4)
}
