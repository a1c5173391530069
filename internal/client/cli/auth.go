package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/avelichko/skillswap/internal/client/api"
	"github.com/avelichko/skillswap/internal/client/repositories/pending"
	"github.com/avelichko/skillswap/internal/client/session"
)

// Login asks for credentials and establishes a session.
func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, a.out, "Email")
	if err != nil {
		fmt.Fprintf(a.out, "Input error: %v\n", err)
		return
	}
	password, err := GetPassword(int(syscall.Stdin), a.out, "Password")
	if err != nil {
		fmt.Fprintf(a.out, "Input error: %v\n", err)
		return
	}

	id, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		a.printAuthError(err)
		return
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", id.Name)
}

// Signup registers a new account and hands off to email verification. The
// account stays unverified until the code from the email is confirmed.
func (a *App) Signup(ctx context.Context) {
	name, err := GetSimpleText(a.reader, a.out, "Name")
	if err != nil {
		return
	}
	email, err := GetSimpleText(a.reader, a.out, "Email")
	if err != nil {
		return
	}
	password, err := GetPassword(int(syscall.Stdin), a.out, "Password")
	if err != nil {
		return
	}
	location, err := GetSimpleText(a.reader, a.out, "Location (optional)")
	if err != nil {
		return
	}

	if _, err := a.sessions.Signup(ctx, name, email, password, location); err != nil {
		a.printAuthError(err)
		return
	}

	if err := a.client.SendOTP(ctx, email, name); err != nil {
		a.printAuthError(err)
		return
	}
	if err := a.pending.Set(ctx, pending.Verification{Email: email, UserName: name}); err != nil {
		fmt.Fprintf(a.out, "Warning: could not save verification state: %v\n", err)
	}

	a.RunVerification(ctx, email, name)
}

func (a *App) Logout(ctx context.Context) {
	a.sessions.Logout(ctx)
	a.invalidateSwapCache()
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) printAuthError(err error) {
	switch {
	case errors.Is(err, session.ErrAuthentication):
		fmt.Fprintf(a.out, "%v\n", err)
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
