package models

import "time"

// SwapRequest is a proposal to exchange one user's offered skill for
// another's.
type SwapRequest struct {
	ID            string    `json:"id"`
	RequesterID   string    `json:"requesterId"`
	TargetID      string    `json:"targetId"`
	SenderSkill   string    `json:"senderSkill"`
	ReceiverSkill string    `json:"receiverSkill"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
