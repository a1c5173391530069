// Package models holds the database entities shared by server repositories
// and services.
package models

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Location     string
	PhotoKey     string
	Verified     bool
	CreatedAt    time.Time
}
