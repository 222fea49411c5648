package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	onSignup func()

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	if f.onSignup != nil {
		f.onSignup()
	}
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context, refresh bool) error {
	if refresh {
		f.calls = append(f.calls, "whoami-refresh")
	} else {
		f.calls = append(f.calls, "whoami")
	}
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error { f.calls = append(f.calls, "status"); return nil }
func (f *fakeExec) Go(ctx context.Context, path string) error {
	f.calls = append(f.calls, "go")
	f.arg = path
	return nil
}
func (f *fakeExec) Ping(ctx context.Context) error { f.calls = append(f.calls, "ping"); return nil }
func (f *fakeExec) DeleteAccount(ctx context.Context) error {
	f.calls = append(f.calls, "delete-account")
	f.loggedIn = false
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = fmt.Sprint(v)
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"whoami",
		"whoami --refresh",
		"status",
		"go /calendar",
		"ping",
		"logout",
		"signup",
		"delete-account",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{
		"login", "whoami", "whoami-refresh", "status", "go", "ping",
		"logout", "signup", "delete-account",
	}, exec.calls)
	assert.Equal(t, "/calendar", exec.arg)
}

func TestRunREPL_UsageUnknownAndEOF(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader("go\n\nfoobar\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "(s)" }, bufio.NewReader(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: go <path>")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "gb (s)> ")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nquit\n")))
	assert.Contains(t, *out, "Available commands: login, signup, status, go <path>, ping, exit")
	assert.Contains(t, *out, "Bye!")

	*out = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, *out, "Available commands: whoami [--refresh], status, go <path>, ping, logout, delete-account, exit")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	input := bufio.NewReader(strings.NewReader("status\nping"))
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, input)

	assert.Equal(t, []string{"status", "ping"}, exec.calls)
}

func TestRunREPL_LeavesFollowingLinesForHandlers(t *testing.T) {
	captureOutput(t)

	input := bufio.NewReader(strings.NewReader("signup\nalex\nstatus\n"))
	exec := &fakeExec{onSignup: func() {
		line, err := input.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "alex\n", line)
	}}
	runREPL(context.Background(), exec, func() string { return "" }, input)

	assert.Equal(t, []string{"signup", "status"}, exec.calls)
}
