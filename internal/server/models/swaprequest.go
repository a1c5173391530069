package models

import "time"

const (
	SwapStatusPending  = "pending"
	SwapStatusAccepted = "accepted"
	SwapStatusDeclined = "declined"
)

type SwapRequest struct {
	ID            string
	RequesterID   string
	TargetID      string
	SenderSkill   string
	ReceiverSkill string
	Message       string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
