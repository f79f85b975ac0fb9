package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
	"bytebabies/internal/service"
)

// AdminHandler serves the office's record management
type AdminHandler struct {
	facade *service.Facade
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(facade *service.Facade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

type parentRequest struct {
	Name         string `json:"name" validate:"notblank,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"max=30"`
	ConsentMedia bool   `json:"consentMedia"`
}

type teacherRequest struct {
	Name          string `json:"name" validate:"notblank,max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"max=30"`
	AssignedClass string `json:"assignedClass" validate:"max=100"`
}

type childRequest struct {
	Name             string `json:"name" validate:"notblank,max=100"`
	ParentID         string `json:"parentId"`
	TeacherID        string `json:"teacherId"`
	Age              int    `json:"age" validate:"gte=0,lte=18"`
	EmergencyContact string `json:"emergencyContact"`
	Allergies        string `json:"allergies"`
	MedicalNotes     string `json:"medicalNotes"`
}

// childFieldRules mirrors childRequest's tags for partial updates. Every key except age
// holds a string.
var childFieldRules = map[string]string{
	"name":             "notblank,max=100",
	"parentId":         "",
	"teacherId":        "",
	"age":              "gte=0,lte=18",
	"emergencyContact": "",
	"allergies":        "",
	"medicalNotes":     "",
}

type eventRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Location    string `json:"location" validate:"max=200"`
}

type attendanceRequest struct {
	Present bool `json:"present"`
}

type attendanceBatchRequest struct {
	Marks map[string]bool `json:"marks" validate:"required,min=1"`
}

type messageRequest struct {
	Content string `json:"content" validate:"notblank,max=2000"`
}

type createdResponse struct {
	ID string `json:"id"`
}

// decodeAndValidate decodes the body into req and writes the 400 itself on failure
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := decodeJSON(r, req); err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidJSON)
		return false
	}
	if msg := validateRequest(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

// Parents

func (h *AdminHandler) ListParents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.facade.FetchParents(r.Context()))
}

func (h *AdminHandler) GetParent(w http.ResponseWriter, r *http.Request) {
	parent, ok := h.facade.FetchParent(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, parent)
}

func (h *AdminHandler) UpdateParent(w http.ResponseWriter, r *http.Request) {
	var req parentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	parent := models.Parent{
		ID:           chi.URLParam(r, "id"),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		ConsentMedia: req.ConsentMedia,
	}
	if err := h.facade.UpdateParent(r.Context(), parent); err != nil {
		respondWithFacadeError(w, "Failed to update parent", err)
		return
	}
	writeJSON(w, http.StatusOK, parent)
}

func (h *AdminHandler) DeleteParent(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeleteParent(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithFacadeError(w, "Failed to delete parent", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Teachers

func (h *AdminHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.facade.FetchTeachers(r.Context()))
}

func (h *AdminHandler) GetTeacher(w http.ResponseWriter, r *http.Request) {
	teacher, ok := h.facade.FetchTeacher(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (h *AdminHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req teacherRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.facade.CreateTeacher(r.Context(), req.toModel(""))
	if err != nil {
		respondWithFacadeError(w, "Failed to create teacher", err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *AdminHandler) UpdateTeacher(w http.ResponseWriter, r *http.Request) {
	var req teacherRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	teacher := req.toModel(chi.URLParam(r, "id"))
	if err := h.facade.UpdateTeacher(r.Context(), teacher); err != nil {
		respondWithFacadeError(w, "Failed to update teacher", err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (h *AdminHandler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeleteTeacher(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithFacadeError(w, "Failed to delete teacher", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req teacherRequest) toModel(id string) models.Teacher {
	return models.Teacher{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		AssignedClass: req.AssignedClass,
	}
}

// Children

func (h *AdminHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.facade.FetchChildren(r.Context()))
}

func (h *AdminHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	child, ok := h.facade.FetchChild(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (h *AdminHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	child := models.Child{
		Name:             req.Name,
		ParentID:         req.ParentID,
		TeacherID:        req.TeacherID,
		Age:              req.Age,
		EmergencyContact: req.EmergencyContact,
		Allergies:        req.Allergies,
		MedicalNotes:     req.MedicalNotes,
	}
	id, err := h.facade.CreateChild(r.Context(), child)
	if err != nil {
		respondWithFacadeError(w, "Failed to create child", err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// UpdateChild applies a partial update; only the keys present in the body change
func (h *AdminHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := decodeJSON(r, &fields); err != nil || len(fields) == 0 {
		writeError(w, http.StatusBadRequest, ErrInvalidJSON)
		return
	}
	if msg := validateChildFields(fields); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.facade.UpdateChild(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
		respondWithFacadeError(w, "Failed to update child", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateChildFields applies childFieldRules to the keys present. Unknown keys are left
// for the facade to reject.
func validateChildFields(fields map[string]interface{}) string {
	for key, value := range fields {
		rule, known := childFieldRules[key]
		if !known {
			continue
		}

		if key == "age" {
			age, ok := docstore.AsInt(value)
			if !ok {
				return "age must be a whole number"
			}
			if msg := validateField(key, age, rule); msg != "" {
				return msg
			}
			continue
		}

		text, ok := value.(string)
		if !ok {
			return key + " must be a string"
		}
		if rule != "" {
			if msg := validateField(key, text, rule); msg != "" {
				return msg
			}
		}
	}
	return ""
}

func (h *AdminHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeleteChild(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithFacadeError(w, "Failed to delete child", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Attendance

// ListAttendance returns the records for ?date=, defaulting to today
func (h *AdminHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.facade.Today()
	}
	if !models.ValidDate(date) {
		respondWithFacadeError(w, "", service.ErrInvalidDate)
		return
	}
	writeJSON(w, http.StatusOK, h.facade.FetchAttendanceForDate(r.Context(), date))
}

func (h *AdminHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.facade.MarkAttendance(r.Context(), chi.URLParam(r, "childId"), chi.URLParam(r, "date"), req.Present)
	if err != nil {
		respondWithFacadeError(w, "Failed to mark attendance", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) MarkAttendanceBatch(w http.ResponseWriter, r *http.Request) {
	var req attendanceBatchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.facade.MarkAttendanceBatch(r.Context(), chi.URLParam(r, "date"), req.Marks); err != nil {
		respondWithFacadeError(w, "Failed to mark attendance", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ChildAttendance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.facade.FetchAttendanceForChild(r.Context(), chi.URLParam(r, "id")))
}

// Events

func (h *AdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.facade.CreateEvent(r.Context(), req.toModel(""))
	if err != nil {
		respondWithFacadeError(w, "Failed to create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *AdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	event := req.toModel(chi.URLParam(r, "id"))
	if err := h.facade.UpdateEvent(r.Context(), event); err != nil {
		respondWithFacadeError(w, "Failed to update event", err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithFacadeError(w, "Failed to delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req eventRequest) toModel(id string) models.Event {
	return models.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	}
}

// Messaging

func (h *AdminHandler) PostAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.facade.PostAnnouncement(r.Context(), req.Content); err != nil {
		respondWithFacadeError(w, "Failed to post announcement", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ParentMessages lists every parent-to-office message
func (h *AdminHandler) ParentMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.facade.FetchParentMessages(r.Context()))
}

// Conversation merges one parent's messages with the notices addressed to them
func (h *AdminHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.facade.FetchConversation(r.Context(), chi.URLParam(r, "id")))
}
