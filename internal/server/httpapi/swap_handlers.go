package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/avelichko/skillswap/internal/common"
	"github.com/avelichko/skillswap/internal/server/services"
)

func (s *Server) handleListSwaps(w http.ResponseWriter, r *http.Request) {
	list, err := s.swaps.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.logger.Error(r.Context(), "listing swap requests", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load swap requests")
		return
	}

	views := make([]swapRequestView, 0, len(list))
	for _, req := range list {
		views = append(views, swapViewOf(req))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateSwap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetID string `json:"targetId"`
		Message  string `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.TargetID = strings.TrimSpace(req.TargetID)
	if req.TargetID == "" {
		writeError(w, http.StatusBadRequest, "targetId is required")
		return
	}

	created, err := s.swaps.Create(r.Context(), userIDFromContext(r.Context()), req.TargetID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "cannot send a swap request to yourself")
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "target user not found")
		default:
			s.logger.Error(r.Context(), "creating swap request", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create swap request")
		}
		return
	}

	writeJSON(w, http.StatusCreated, swapViewOf(created))
}

func (s *Server) handleUpdateSwap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		SenderSkill   string `json:"senderSkill"`
		ReceiverSkill string `json:"receiverSkill"`
		Message       string `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.swaps.Update(r.Context(), userIDFromContext(r.Context()), id,
		strings.TrimSpace(req.SenderSkill), strings.TrimSpace(req.ReceiverSkill), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSkillsRequired):
			writeError(w, http.StatusBadRequest, "both skills are required")
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "swap request not found")
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusForbidden, "only the requester may edit a swap request")
		default:
			s.logger.Error(r.Context(), "updating swap request", "error", err)
			writeError(w, http.StatusInternalServerError, "could not update swap request")
		}
		return
	}

	writeJSON(w, http.StatusOK, swapViewOf(updated))
}

func (s *Server) handlePhotoUpload(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.photos.PresignUpload(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.logger.Error(r.Context(), "presigning photo upload", "error", err)
		writeError(w, http.StatusInternalServerError, "could not prepare upload")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
}
