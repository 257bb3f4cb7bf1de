package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mergington/activities-api/internal/domain"
	"github.com/mergington/activities-api/internal/pkg/httputil"
)

// Handler handles HTTP requests for the roster module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new roster handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterPublicRoutes registers the unauthenticated listing route.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/activities", h.ListActivities)
}

// RegisterProtectedRoutes registers the mutating routes. Callers are
// expected to mount these behind auth and role middleware.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/activities/{name}/signup", h.Signup)
	r.Delete("/activities/{name}/unregister", h.Unregister)
}

// activityMap marshals activities as a JSON object keyed by name while
// preserving insertion order, which encoding/json's map type would lose.
type activityMap []*domain.Activity

func (m activityMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		detail, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		buf.Write(detail)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ListActivities handles GET /activities.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, activityMap(activities))
}

// Signup handles POST /activities/{name}/signup?email=.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	email := r.URL.Query().Get("email")

	if err := h.validator.Var(email, "required,email"); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid email parameter")
		return
	}

	actor := httputil.GetUser(r.Context())

	if err := h.service.Signup(r.Context(), name, email, actor); err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Signed up %s for %s", domain.NormalizeEmail(email), name),
	})
}

// Unregister handles DELETE /activities/{name}/unregister?email=.
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	email := r.URL.Query().Get("email")

	if err := h.validator.Var(email, "required,email"); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid email parameter")
		return
	}

	actor := httputil.GetUser(r.Context())

	if err := h.service.Unregister(r.Context(), name, email, actor); err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Unregistered %s from %s", domain.NormalizeEmail(email), name),
	})
}

func (h *Handler) handleServiceError(r *http.Request, w http.ResponseWriter, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrActivityNotFound, Status: http.StatusNotFound},
		{Error: ErrPermissionDenied, Status: http.StatusForbidden},
		{Error: ErrAlreadySignedUp, Status: http.StatusBadRequest},
		{Error: ErrActivityFull, Status: http.StatusBadRequest},
		{Error: ErrNotSignedUp, Status: http.StatusBadRequest},
	})
}
