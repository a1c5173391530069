// Package models defines the client-side view of server entities.
package models

// Identity is the authenticated user as returned by the API.
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Verified bool   `json:"verified"`
}
