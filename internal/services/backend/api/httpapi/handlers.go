package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/studydesk/studydesk/internal/services/backend/plan"
	"github.com/studydesk/studydesk/internal/services/backend/session"
	"github.com/studydesk/studydesk/internal/services/backend/storage"
	"github.com/studydesk/studydesk/internal/services/backend/user"
)

const maxBodyBytes = 1 << 16

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type userPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionPayload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type grantPayload struct {
	AccessToken string          `json:"access_token,omitempty"`
	Session     *sessionPayload `json:"session,omitempty"`
	User        userPayload     `json:"user"`
}

type planPayload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewHandler wires the backend API routes.
func NewHandler(svc *Service) http.Handler {
	mux := http.NewServeMux()
	h := handlers{svc: svc}
	mux.HandleFunc(http.MethodPost+" /v1/auth/signup", h.handleSignUp)
	mux.HandleFunc(http.MethodPost+" /v1/auth/login", h.handleLogin)
	mux.HandleFunc(http.MethodPost+" /v1/auth/logout", h.handleLogout)
	mux.HandleFunc(http.MethodGet+" /v1/auth/session", h.handleSession)
	mux.HandleFunc(http.MethodGet+" /v1/profiles/{id}", h.handleProfile)
	mux.HandleFunc(http.MethodGet+" /v1/study-plans", h.handleStudyPlans)
	mux.HandleFunc(http.MethodPost+" /v1/study-plans", h.handleCreateStudyPlan)
	mux.HandleFunc(http.MethodGet+" /v1/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

type handlers struct {
	svc *Service
}

func (h handlers) handleSignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	grant, err := h.svc.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grantToPayload(grant))
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	grant, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grantToPayload(grant))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}
	if err := h.svc.SignOut(r.Context(), token); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) handleSession(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}
	sess, u, err := h.svc.SessionUser(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grantPayload{
		Session: &sessionPayload{ID: sess.ID, UserID: sess.UserID, ExpiresAt: sess.ExpiresAt},
		User:    userToPayload(u),
	})
}

func (h handlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	_, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	userID := strings.TrimSpace(r.PathValue("id"))
	// Profiles are user-private; a session only reads its own record.
	if userID == "" || userID != caller.ID {
		writeError(w, http.StatusForbidden, "profile access denied")
		return
	}
	u, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userToPayload(u))
}

func (h handlers) handleStudyPlans(w http.ResponseWriter, r *http.Request) {
	_, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	plans, err := h.svc.StudyPlans(r.Context(), caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	payload := make([]planPayload, 0, len(plans))
	for _, p := range plans {
		payload = append(payload, planToPayload(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": payload})
}

type createPlanRequest struct {
	Title   string `json:"title"`
	Subject string `json:"subject,omitempty"`
}

func (h handlers) handleCreateStudyPlan(w http.ResponseWriter, r *http.Request) {
	_, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req createPlanRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.CreatePlan(r.Context(), caller.ID, req.Title, req.Subject)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, planToPayload(p))
}

func (h handlers) authenticate(w http.ResponseWriter, r *http.Request) (session.Session, user.User, bool) {
	token, ok := bearerToken(w, r)
	if !ok {
		return session.Session{}, user.User{}, false
	}
	sess, u, err := h.svc.SessionUser(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return session.Session{}, user.User{}, false
	}
	return sess, u, true
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return credentialsRequest{}, false
	}
	return req, true
}

func bearerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		writeError(w, http.StatusUnauthorized, "bearer token required")
		return "", false
	}
	return strings.TrimSpace(token), true
}

func grantToPayload(grant Grant) grantPayload {
	payload := grantPayload{AccessToken: grant.Token, User: userToPayload(grant.User)}
	if grant.Session.ID != "" {
		payload.Session = &sessionPayload{
			ID:        grant.Session.ID,
			UserID:    grant.Session.UserID,
			ExpiresAt: grant.Session.ExpiresAt,
		}
	}
	return payload
}

func userToPayload(u user.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

func planToPayload(p plan.StudyPlan) planPayload {
	return planPayload{ID: p.ID, UserID: p.UserID, Title: p.Title, Subject: p.Subject, CreatedAt: p.CreatedAt}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrEmailNotConfirmed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserRegistered):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrEmptyEmail), errors.Is(err, user.ErrInvalidEmail), errors.Is(err, user.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, plan.ErrEmptyTitle), errors.Is(err, plan.ErrEmptyUserID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrInvalidToken), errors.Is(err, session.ErrExpired):
		writeError(w, http.StatusUnauthorized, "session not found")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		log.Printf("backend api error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
