// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/adapters/http/handlers"
)

// Handlers groups the inbound handlers mounted by NewRouter.
type Handlers struct {
	Accounts *handlers.AccountHandler
	Lists    *handlers.ListHandler
	Drag     *handlers.DragHandler
	Health   *handlers.HealthHandler
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given; session guards only the
// routes that act on a signed-in user's lists.
func NewRouter(h Handlers, session func(http.Handler) http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteStatusResponse(w, r, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteStatusResponse(w, r, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", h.Health.Liveness)
	r.Get("/health/ready", h.Health.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		// Account.
		r.Post("/signup", h.Accounts.SignUp)
		r.Post("/login", h.Accounts.LogIn)
		r.Post("/logout", h.Accounts.LogOut)
		r.Get("/me", h.Accounts.Me)

		// Pure computation; needs no session.
		r.Post("/drag/scroll", h.Drag.Scroll)

		r.Group(func(r chi.Router) {
			r.Use(session)

			r.Get("/lists", h.Lists.GetLists)
			r.Post("/lists", h.Lists.CreateList)
			r.Put("/lists/{listId}/draft", h.Lists.SetTaskInput)
			r.Post("/lists/{listId}/tasks", h.Lists.CreateTask)
			r.Patch("/lists/{listId}/tasks/{taskId}/priority", h.Lists.UpdatePriority)
			r.Delete("/lists/{listId}/tasks/{taskId}", h.Lists.DeleteTask)
			r.Post("/lists/{listId}/tasks/{taskId}/move", h.Lists.MoveTask)

			r.Post("/drag", h.Drag.BeginDrag)
			r.Delete("/drag", h.Drag.CancelDrag)
			r.Post("/drop", h.Drag.Drop)
		})
	})

	return r
}
