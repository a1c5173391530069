package httpapi

import (
	"time"

	"github.com/avelichko/skillswap/internal/server/models"
)

// identity is the public JSON view of a user.
type identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Verified bool   `json:"verified"`
}

func (s *Server) identityOf(u *models.User) identity {
	return identity{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Location: u.Location,
		PhotoURL: s.photos.PhotoURL(u.PhotoKey),
		Verified: u.Verified,
	}
}

type swapRequestView struct {
	ID            string `json:"id"`
	RequesterID   string `json:"requesterId"`
	TargetID      string `json:"targetId"`
	SenderSkill   string `json:"senderSkill"`
	ReceiverSkill string `json:"receiverSkill"`
	Message       string `json:"message"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

func swapViewOf(r *models.SwapRequest) swapRequestView {
	return swapRequestView{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		TargetID:      r.TargetID,
		SenderSkill:   r.SenderSkill,
		ReceiverSkill: r.ReceiverSkill,
		Message:       r.Message,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
