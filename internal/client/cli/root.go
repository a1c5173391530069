package cli

import (
	"context"
	"fmt"
	"strings"
)

// Root runs the top-level command loop until the user quits or the context is
// canceled.
func (a *App) Root(ctx context.Context) {
	a.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		cmd, err := GetSimpleText(a.reader, a.out, "skillswap")
		if err != nil {
			return
		}

		switch strings.ToLower(cmd) {
		case "":
			continue
		case "help":
			a.printHelp()
		case "login":
			a.Login(ctx)
		case "signup":
			a.Signup(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.whoami()
		case "people":
			a.ListPeople(ctx)
		case "swaps":
			a.ListSwaps(ctx)
		case "request":
			a.CreateSwap(ctx)
		case "edit":
			a.EditSwap(ctx)
		case "photo":
			a.UploadPhoto(ctx)
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(a.out, "Unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (a *App) whoami() {
	u := a.sessions.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "%s <%s>", u.Name, u.Email)
	if u.Location != "" {
		fmt.Fprintf(a.out, ", %s", u.Location)
	}
	fmt.Fprintln(a.out)
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `Commands:
  login    sign in with email and password
  signup   create an account (email verification required)
  logout   end the current session
  whoami   show the logged-in user
  people   list members you can swap with
  swaps    list your swap requests
  request  send a new swap request
  edit     edit one of your swap requests
  photo    upload a profile photo
  quit     exit`)
}
