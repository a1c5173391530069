package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avelichko/skillswap/internal/client/api"
	"github.com/avelichko/skillswap/internal/client/models"
	"github.com/avelichko/skillswap/internal/client/verification"
)

// RunVerification drives the OTP entry loop until the code is confirmed or
// the user cancels. Pending verification state is cleared on either outcome.
func (a *App) RunVerification(ctx context.Context, email, userName string) {
	done := make(chan struct{})

	s := verification.NewSession(a.client, a.sessions, email, userName,
		verification.WithOnComplete(func(_ *models.Identity) {
			_ = a.pending.Clear(ctx)
			close(done)
		}),
		verification.WithOnCancel(func() {
			_ = a.pending.Clear(ctx)
			close(done)
		}),
	)
	s.Start()

	fmt.Fprintf(a.out, "A 6-digit code was sent to %s.\n", email)
	fmt.Fprintln(a.out, "Enter the code, or type 'resend' or 'cancel'.")

	for {
		select {
		case <-done:
			if s.Verified() {
				fmt.Fprintf(a.out, "Email verified. Welcome, %s!\n", a.sessions.CurrentUser().Name)
			}
			return
		default:
		}

		prompt := fmt.Sprintf("Code (%ds left)", s.Remaining())
		if s.Expired() {
			prompt = "Code expired, type 'resend' or 'cancel'"
		}
		line, err := GetSimpleText(a.reader, a.out, prompt)
		if err != nil {
			s.Cancel()
			<-done
			return
		}

		switch strings.ToLower(line) {
		case "cancel":
			s.Cancel()
			<-done
			return
		case "resend":
			a.resendCode(ctx, s)
		default:
			a.submitCode(ctx, s, line, done)
		}
	}
}

func (a *App) resendCode(ctx context.Context, s *verification.Session) {
	if !s.CanResend() {
		fmt.Fprintln(a.out, "Please wait before requesting a new code")
		return
	}
	if err := s.Resend(ctx); err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			fmt.Fprintln(a.out, "Server unavailable, try again later")
		} else {
			fmt.Fprintf(a.out, "Could not resend code: %v\n", err)
		}
		return
	}
	fmt.Fprintln(a.out, "A new code was sent")
}

func (a *App) submitCode(ctx context.Context, s *verification.Session, code string, done chan struct{}) {
	if err := s.SetCode(code); err != nil {
		fmt.Fprintln(a.out, "Enter up to 6 digits")
		return
	}
	if err := s.SubmitCode(ctx); err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidCode):
			fmt.Fprintln(a.out, "The code must be exactly 6 digits")
		case errors.Is(err, verification.ErrExpired):
			fmt.Fprintln(a.out, "Code expired, type 'resend' for a new one")
		case errors.Is(err, api.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unavailable, try again later")
		default:
			fmt.Fprintln(a.out, "Incorrect code, try again")
		}
		return
	}
	<-done
}
