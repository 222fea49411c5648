package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gymbacteria/internal/client/navigation"
	"github.com/dmitrijs2005/gymbacteria/internal/client/session"
)

// WhoAmI prints the current user. With refresh the user is re-read from
// the API first.
func (a *App) WhoAmI(ctx context.Context, refresh bool) error {
	s, err := a.authService.WhoAmI(ctx, refresh)
	if errors.Is(err, session.ErrNotAuthenticated) {
		err = nil
	}
	if !s.Authenticated() {
		if s.Error != "" {
			printlnFn("Not logged in:", s.Error)
		} else {
			printlnFn("Not logged in")
		}
		return err
	}

	printlnFn(fmt.Sprintf("id: %d, nickname: %s", s.User.ID, s.User.Nickname))
	if err != nil {
		printlnFn("Could not refresh:", s.Error)
	}
	return err
}

// Status prints the session phase, any session error, the current page and
// connectivity.
func (a *App) Status(ctx context.Context) error {
	s, _ := a.authService.WhoAmI(ctx, false)

	printlnFn("phase:", string(s.Phase))
	if s.User != nil {
		printlnFn("user:", s.User.Nickname)
	}
	if s.Error != "" {
		printlnFn("error:", s.Error)
	}
	if a.router != nil {
		printlnFn("page:", a.router.Current())
	}
	if m := a.mode(); m != "" {
		printlnFn("mode:", string(m))
	}
	return nil
}

// Go navigates to path. The route guard may redirect.
func (a *App) Go(_ context.Context, path string) error {
	want := navigation.Clean(path)
	a.router.Navigate(want)

	if got := a.router.Current(); got != want {
		printlnFn(fmt.Sprintf("Redirected to %s", got))
		return nil
	}
	printlnFn("Now on", want)
	return nil
}

// Ping probes the API health endpoint.
func (a *App) Ping(ctx context.Context) error {
	h, err := a.authService.Ping(ctx)
	if err != nil {
		a.setMode(ModeOffline)
		printlnFn("API unavailable:", err.Error())
		return err
	}
	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("API %s (version %s)", h.Status, h.Version))
	return nil
}

// DeleteAccount deletes the current account after confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return session.ErrNotAuthenticated
	}

	answer, err := getSimpleText(a.reader, "Delete your account permanently? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.authService.DeleteAccount(ctx); err != nil {
		printlnFn("Failed to delete account:", err.Error())
		return err
	}
	printlnFn("Account deleted.")
	return nil
}
