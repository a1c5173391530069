package models

import "time"

// VerificationCode is an issued one-time email code. Only a hash of the code
// is stored; issuing a new code for the same email supersedes earlier ones.
type VerificationCode struct {
	ID        string
	Email     string
	UserName  string
	CodeHash  []byte
	ExpiresAt time.Time
	CreatedAt time.Time
}
