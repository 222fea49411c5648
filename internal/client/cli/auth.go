package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gymbacteria/internal/client/services"
	"github.com/dmitrijs2005/gymbacteria/internal/client/session"
	"github.com/dmitrijs2005/gymbacteria/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetSecret

// Messages shown by the signup flow.
const (
	msgSignupFailed      = "Failed to create account. Please try again."
	msgSignupLoginFailed = "Failed to log in with new account. Please try again."
)

// Login reads an access key from the terminal without echo and
// authenticates with it. The key is wiped before returning.
//
// Form problems are printed next to their field and returned. A rejected
// key prints the session error ("invalid credential").
func (a *App) Login(ctx context.Context) error {
	key, err := getPassword(os.Stdout, "Enter access key")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	return a.login(ctx, string(key))
}

func (a *App) login(ctx context.Context, key string) error {
	err := a.authService.Login(ctx, services.LoginForm{AccessKey: key})
	if err != nil {
		a.reportLoginError(ctx, err)
		return err
	}

	s, _ := a.authService.WhoAmI(ctx, false)
	if s.User != nil {
		printlnFn(fmt.Sprintf("Welcome, %s!", s.User.Nickname))
	}
	return nil
}

func (a *App) reportLoginError(ctx context.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		printFieldErrors(ve)
	case errors.Is(err, session.ErrSuperseded):
		printlnFn("Login was superseded by a newer request.")
	default:
		s, _ := a.authService.WhoAmI(ctx, false)
		msg := s.Error
		if msg == "" {
			msg = session.MsgInvalidCredential
		}
		printlnFn("Login unsuccessful:", msg)
		a.logger.Debug(ctx, "login failed", "error", err)
	}
}

// Signup asks for a nickname, registers a freshly generated access key,
// shows it once and logs in with it.
func (a *App) Signup(ctx context.Context) error {
	nickname, err := getSimpleText(a.reader, "Enter nickname", os.Stdout)
	if err != nil {
		return err
	}

	key, err := a.authService.Signup(ctx, services.SignupForm{Nickname: nickname})
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			printFieldErrors(ve)
		} else {
			printlnFn(msgSignupFailed)
			a.logger.Warn(ctx, "signup failed", "error", err)
		}
		return err
	}

	printlnFn("Account created! Here is your access key. Save it somewhere safe, you will need it to log in:")
	printlnFn("  " + key)

	if err := a.authService.Login(ctx, services.LoginForm{AccessKey: key}); err != nil {
		printlnFn(msgSignupLoginFailed)
		return err
	}
	printlnFn(fmt.Sprintf("Welcome, %s!", nickname))
	return nil
}

// Logout ends the session. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

func printFieldErrors(ve *services.ValidationError) {
	for _, f := range ve.Fields {
		printlnFn(f.Message)
	}
}
