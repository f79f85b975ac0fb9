package handlers

import (
	"net/http"

	"bytebabies/internal/models"
	"bytebabies/internal/service"
	"bytebabies/internal/session"
)

// ParentHandler serves the signed-in parent's own records
type ParentHandler struct {
	facade *service.Facade
}

// NewParentHandler creates a new parent handler
func NewParentHandler(facade *service.Facade) *ParentHandler {
	return &ParentHandler{facade: facade}
}

// Profile returns the caller's parent profile
func (h *ParentHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	parent, ok := h.facade.FetchParent(r.Context(), sess.ParentID)
	if !ok {
		writeError(w, http.StatusNotFound, ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, parent)
}

// Children lists the caller's children
func (h *ParentHandler) Children(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.facade.FetchChildrenOfParent(r.Context(), sess.ParentID))
}

// AbsentToday lists the caller's children marked absent today
func (h *ParentHandler) AbsentToday(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.facade.FetchAbsentTodayForParent(r.Context(), sess.ParentID))
}

// Attendance returns the attendance history of every child of the caller
func (h *ParentHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	records := []models.AttendanceRecord{}
	for _, child := range h.facade.FetchChildrenOfParent(r.Context(), sess.ParentID) {
		records = append(records, h.facade.FetchAttendanceForChild(r.Context(), child.ID)...)
	}
	writeJSON(w, http.StatusOK, records)
}

// Messages returns the caller's conversation with the office
func (h *ParentHandler) Messages(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.facade.FetchConversation(r.Context(), sess.ParentID))
}

// SendMessage posts a message to the office
func (h *ParentHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sess := GetSessionFromContext(r.Context())
	if err := h.facade.SendParentMessage(r.Context(), sess.ParentID, req.Content); err != nil {
		respondWithFacadeError(w, "Failed to send message", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// SharedHandler serves the routes open to both roles
type SharedHandler struct {
	facade *service.Facade
}

// NewSharedHandler creates a new shared handler
func NewSharedHandler(facade *service.Facade) *SharedHandler {
	return &SharedHandler{facade: facade}
}

// Events lists the calendar in date order
func (h *SharedHandler) Events(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.facade.FetchEvents(r.Context()))
}

// Announcements shows admins every announcement; parents see broadcasts plus the
// notices addressed to them
func (h *SharedHandler) Announcements(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess.Role == session.RoleAdmin {
		writeJSON(w, http.StatusOK, h.facade.FetchAnnouncements(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, h.facade.FetchAnnouncementsForParent(r.Context(), sess.ParentID))
}
