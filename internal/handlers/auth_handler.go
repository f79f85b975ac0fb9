package handlers

import (
	"log"
	"net/http"

	"bytebabies/internal/service"
	"bytebabies/internal/session"
)

// AuthHandler handles sign-in, registration and sign-out
type AuthHandler struct {
	facade *service.Facade
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(facade *service.Facade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name         string `json:"name" validate:"notblank,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"max=30"`
	Password     string `json:"password" validate:"required,min=8"`
	ConsentMedia bool   `json:"consentMedia"`
}

type sessionResponse struct {
	Token    string       `json:"token,omitempty"`
	UID      string       `json:"uid"`
	Role     session.Role `json:"role"`
	ParentID string       `json:"parentId,omitempty"`
}

func newSessionResponse(sess session.Session) sessionResponse {
	return sessionResponse{
		Token:    sess.Token,
		UID:      sess.UID,
		Role:     sess.Role,
		ParentID: sess.ParentID,
	}
}

// Login exchanges credentials for a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidJSON)
		return
	}
	if msg := validateRequest(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	h.signIn(w, r, req.Email, req.Password, http.StatusOK)
}

// Register creates a parent account and signs the new parent in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidJSON)
		return
	}
	if msg := validateRequest(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.facade.RegisterParent(r.Context(), req.Name, req.Email, req.Phone, req.Password, req.ConsentMedia); err != nil {
		respondWithFacadeError(w, "Failed to register parent", err)
		return
	}

	h.signIn(w, r, req.Email, req.Password, http.StatusCreated)
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, email, password string, status int) {
	sess, err := h.facade.SignIn(r.Context(), email, password)
	if err != nil {
		respondWithFacadeError(w, "Failed to sign in", err)
		return
	}
	if sess.Role == session.RoleNone {
		if err := h.facade.SignOutToken(r.Context(), sess.Token); err != nil {
			log.Printf("Warning: failed to revoke token for %s: %v", sess.UID, err)
		}
		writeError(w, http.StatusForbidden, ErrNoRole)
		return
	}

	writeJSON(w, status, newSessionResponse(sess))
}

// Logout revokes the caller's token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if err := h.facade.SignOutToken(r.Context(), sess.Token); err != nil {
		respondWithFacadeError(w, "Failed to sign out", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me describes the caller's session
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	sess.Token = ""
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}
