package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/avelichko/skillswap/internal/common"
	"github.com/avelichko/skillswap/internal/server/services"
)

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		UserName string `json:"userName"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}

	if !s.otpLimiter.Allow(req.Email, time.Now()) {
		writeError(w, http.StatusTooManyRequests, "too many codes requested, try again later")
		return
	}

	code, err := s.users.IssueCode(r.Context(), req.Email, strings.TrimSpace(req.UserName))
	if err != nil {
		s.logger.Error(r.Context(), "issuing verification code", "error", err)
		writeError(w, http.StatusInternalServerError, "could not send verification code")
		return
	}

	// mail delivery is out of process; the code is only surfaced in logs
	s.logger.Info(r.Context(), "verification code issued", "email", req.Email, "code", code)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email   string `json:"email"`
		OTPCode string `json:"otpCode"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(req.Email) || len(req.OTPCode) != common.OTPDigits {
		writeError(w, http.StatusBadRequest, "invalid email or code")
		return
	}

	user, err := s.users.VerifyCode(r.Context(), req.Email, req.OTPCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCodeExpired):
			writeError(w, http.StatusBadRequest, "verification code expired")
		case errors.Is(err, services.ErrCodeInvalid):
			writeError(w, http.StatusBadRequest, "incorrect verification code")
		default:
			s.logger.Error(r.Context(), "verifying code", "error", err)
			writeError(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}

	if err := s.setSessionCookie(w, user.ID); err != nil {
		s.logger.Error(r.Context(), "issuing session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not open session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": s.identityOf(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusBadRequest, "invalid email or password")
			return
		}
		s.logger.Error(r.Context(), "login", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := s.setSessionCookie(w, user.ID); err != nil {
		s.logger.Error(r.Context(), "issuing session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not open session")
		return
	}

	writeJSON(w, http.StatusOK, s.identityOf(user))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Location string `json:"location"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" || !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "name and a valid email are required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := s.users.Signup(r.Context(), req.Name, req.Email, req.Password, strings.TrimSpace(req.Location))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		s.logger.Error(r.Context(), "signup", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	writeJSON(w, http.StatusCreated, s.identityOf(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.Directory(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "listing users", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load users")
		return
	}

	self := userIDFromContext(r.Context())
	views := make([]identity, 0, len(list))
	for _, u := range list {
		if u.ID == self {
			continue
		}
		views = append(views, s.identityOf(u))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown session user")
			return
		}
		s.logger.Error(r.Context(), "loading session user", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load profile")
		return
	}

	writeJSON(w, http.StatusOK, s.identityOf(user))
}
