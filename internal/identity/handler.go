package identity

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mergington/activities-api/internal/domain"
	"github.com/mergington/activities-api/internal/pkg/httputil"
)

// Handler handles HTTP requests for the identity module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new identity handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers public auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)
}

// RegisterRequest represents registration request body.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// RegisterResponse represents registration response.
type RegisterResponse struct {
	Message string      `json:"message"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), RegisterInput(req))
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, RegisterResponse{
		Message: "Registration successful",
		Email:   user.Email,
		Role:    user.Role,
	})
}

// LoginRequest represents login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents login response.
type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// UserInfo is the public view of a user.
type UserInfo struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	user, token, err := h.service.Login(r.Context(), LoginInput(req))
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    UserInfo{Email: user.Email, Role: user.Role},
	})
}

// Logout handles POST /auth/logout.
// Runs behind AuthMiddleware, so the token is known to be valid here.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r.Context())
	token := httputil.GetToken(r.Context())

	h.service.Logout(r.Context(), token)

	httputil.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Logged out %s", user.Email),
	})
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetUser(r.Context())

	httputil.JSON(w, http.StatusOK, UserInfo{
		Email: user.Email,
		Role:  user.Role,
	})
}

func (h *Handler) handleServiceError(r *http.Request, w http.ResponseWriter, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: domain.ErrInvalidRole, Status: http.StatusBadRequest},
		{Error: ErrRoleNotAllowed, Status: http.StatusForbidden},
		{Error: ErrEmailExists, Status: http.StatusBadRequest},
		{Error: ErrInvalidCredentials, Status: http.StatusUnauthorized},
	})
}
