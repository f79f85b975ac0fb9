package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bytebabies/internal/security"
	"bytebabies/internal/service"
)

// NewRouter wires every HTTP route. limiter guards the credential endpoints and may be nil.
func NewRouter(facade *service.Facade, limiter *security.RateLimiter) http.Handler {
	mw := NewMiddleware(facade, limiter)
	auth := NewAuthHandler(facade)
	admin := NewAdminHandler(facade)
	parent := NewParentHandler(facade)
	shared := NewSharedHandler(facade)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.With(mw.RateLimit).Post("/login", auth.Login)
		r.With(mw.RateLimit).Post("/register", auth.Register)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth)

			r.Post("/logout", auth.Logout)
			r.Get("/me", auth.Me)
			r.Get("/events", shared.Events)
			r.Get("/announcements", shared.Announcements)

			r.Route("/parent", func(r chi.Router) {
				r.Use(mw.RequireParent)
				r.Get("/", parent.Profile)
				r.Get("/children", parent.Children)
				r.Get("/absences", parent.AbsentToday)
				r.Get("/attendance", parent.Attendance)
				r.Get("/messages", parent.Messages)
				r.Post("/messages", parent.SendMessage)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(mw.RequireAdmin)

				r.Get("/parents", admin.ListParents)
				r.Get("/parents/{id}", admin.GetParent)
				r.Put("/parents/{id}", admin.UpdateParent)
				r.Delete("/parents/{id}", admin.DeleteParent)
				r.Get("/parents/{id}/messages", admin.Conversation)

				r.Get("/teachers", admin.ListTeachers)
				r.Post("/teachers", admin.CreateTeacher)
				r.Get("/teachers/{id}", admin.GetTeacher)
				r.Put("/teachers/{id}", admin.UpdateTeacher)
				r.Delete("/teachers/{id}", admin.DeleteTeacher)

				r.Get("/children", admin.ListChildren)
				r.Post("/children", admin.CreateChild)
				r.Get("/children/{id}", admin.GetChild)
				r.Patch("/children/{id}", admin.UpdateChild)
				r.Delete("/children/{id}", admin.DeleteChild)
				r.Get("/children/{id}/attendance", admin.ChildAttendance)

				r.Get("/attendance", admin.ListAttendance)
				r.Put("/attendance/{date}", admin.MarkAttendanceBatch)
				r.Put("/attendance/{date}/{childId}", admin.MarkAttendance)

				r.Post("/events", admin.CreateEvent)
				r.Put("/events/{id}", admin.UpdateEvent)
				r.Delete("/events/{id}", admin.DeleteEvent)

				r.Post("/announcements", admin.PostAnnouncement)
				r.Get("/messages", admin.ParentMessages)
			})
		})
	})

	return r
}
