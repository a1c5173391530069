package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/avelichko/skillswap/internal/client/api"
	"github.com/avelichko/skillswap/internal/client/forms"
	"github.com/avelichko/skillswap/internal/client/models"
)

func (a *App) loadSwaps(ctx context.Context) ([]*models.SwapRequest, error) {
	if a.swapCache != nil {
		return a.swapCache, nil
	}
	list, err := a.client.ListSwapRequests(ctx)
	if err != nil {
		return nil, err
	}
	a.swapCache = list
	return list, nil
}

// ListSwaps prints the current user's swap requests.
func (a *App) ListSwaps(ctx context.Context) {
	list, err := a.loadSwaps(ctx)
	if err != nil {
		a.printAPIError(err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No swap requests yet")
		return
	}
	for i, r := range list {
		fmt.Fprintf(a.out, "%d. [%s] offer %q for %q", i+1, r.Status, r.SenderSkill, r.ReceiverSkill)
		if r.Message != "" {
			fmt.Fprintf(a.out, ": %s", r.Message)
		}
		fmt.Fprintln(a.out)
	}
}

// ListPeople prints the member directory with the IDs used to address swap
// requests.
func (a *App) ListPeople(ctx context.Context) {
	people, err := a.client.ListUsers(ctx)
	if err != nil {
		a.printAPIError(err)
		return
	}
	if len(people) == 0 {
		fmt.Fprintln(a.out, "Nobody else here yet")
		return
	}
	for _, p := range people {
		fmt.Fprintf(a.out, "%s  %s", p.ID, p.Name)
		if p.Location != "" {
			fmt.Fprintf(a.out, " (%s)", p.Location)
		}
		fmt.Fprintln(a.out)
	}
}

// CreateSwap prompts for the fields of a new swap request and submits it.
func (a *App) CreateSwap(ctx context.Context) {
	targetID, err := GetSimpleText(a.reader, a.out, "Target user ID")
	if err != nil {
		return
	}
	if targetID == "" {
		fmt.Fprintln(a.out, "Target user ID is required")
		return
	}
	message, err := GetSimpleText(a.reader, a.out, "Message (optional)")
	if err != nil {
		return
	}

	if _, err := a.client.CreateSwapRequest(ctx, targetID, message); err != nil {
		a.printAPIError(err)
		return
	}
	a.invalidateSwapCache()
	fmt.Fprintln(a.out, "Swap request sent")
}

// EditSwap opens the edit form for one of the listed requests.
func (a *App) EditSwap(ctx context.Context) {
	list, err := a.loadSwaps(ctx)
	if err != nil {
		a.printAPIError(err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No swap requests to edit")
		return
	}
	a.ListSwaps(ctx)

	line, err := GetSimpleText(a.reader, a.out, "Number to edit")
	if err != nil {
		return
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(list) {
		fmt.Fprintln(a.out, "Invalid selection")
		return
	}

	a.editForm.Open(list[n-1])
	a.runEditForm(ctx)
}

func (a *App) runEditForm(ctx context.Context) {
	for a.editForm.IsOpen() {
		fmt.Fprintf(a.out, "Offering: %s / Wanting: %s / Message: %s\n",
			a.editForm.SenderSkill, a.editForm.ReceiverSkill, a.editForm.Message)
		cmd, err := GetSimpleText(a.reader, a.out, "edit [offer|want|message|save|discard]")
		if err != nil {
			a.editForm.Close()
			return
		}
		switch cmd {
		case "offer":
			a.editForm.SenderSkill, _ = GetSimpleText(a.reader, a.out, "Skill you offer")
		case "want":
			a.editForm.ReceiverSkill, _ = GetSimpleText(a.reader, a.out, "Skill you want")
		case "message":
			a.editForm.Message, _ = GetSimpleText(a.reader, a.out, "Message")
		case "save":
			if _, err := a.editForm.Submit(ctx); err != nil {
				if errors.Is(err, forms.ErrSkillsRequired) {
					fmt.Fprintln(a.out, "Both skills are required")
				} else {
					a.printAPIError(err)
				}
				continue
			}
			fmt.Fprintln(a.out, "Swap request updated")
		case "discard":
			a.editForm.Close()
		default:
			fmt.Fprintln(a.out, "Unknown command")
		}
	}
}

func (a *App) printAPIError(err error) {
	var reqErr *api.RequestError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(a.out, "Please log in first")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.As(err, &reqErr):
		fmt.Fprintf(a.out, "Error: %s\n", reqErr.Message)
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
