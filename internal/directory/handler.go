package directory

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/abijith/user-directory/internal/pkg/httputil"
	"github.com/abijith/user-directory/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Default query parameters for the list operation.
const (
	DefaultPage   = 0
	DefaultSize   = 10
	DefaultSortBy = "email"
)

// Handler handles HTTP requests for the directory module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new directory handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers all HTTP routes for the directory module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/search", h.SearchUsers)
		r.Get("/email/{email}", h.GetUserByEmail)
		r.Get("/{id}", h.GetUserByID)
		r.Put("/{id}", h.UpdateUser)
		r.Patch("/{id}/deactivate", h.DeactivateUser)
		r.Patch("/{id}/reactivate", h.ReactivateUser)
	})
}

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Email            string         `json:"email" validate:"required,email"`
	FirstName        string         `json:"first_name" validate:"required,min=1"`
	LastName         string         `json:"last_name" validate:"required,min=1"`
	Phone            string         `json:"phone"`
	CustomAttributes map[string]any `json:"custom_attributes"`
}

// UpdateUserRequest represents the request body for updating a user.
// Email, roles, and the enabled flag cannot be changed through this request.
type UpdateUserRequest struct {
	FirstName        string         `json:"first_name" validate:"required,min=1"`
	LastName         string         `json:"last_name" validate:"required,min=1"`
	Phone            string         `json:"phone"`
	CustomAttributes map[string]any `json:"custom_attributes"`
}

// CreateUser handles POST /users. Responds 201 with a Location header
// pointing at the new profile; the body is empty.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, r, err)
		return
	}

	id, err := h.service.Create(r.Context(), CreateInput{
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		CustomAttributes: req.CustomAttributes,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	metrics.UsersCreated.Inc()

	w.Header().Set("Location", "/users/"+id)
	w.WriteHeader(http.StatusCreated)
}

// GetUserByID handles GET /users/{id}.
func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, profile)
}

// GetUserByEmail handles GET /users/email/{email}.
func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	profile, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, profile)
}

// UpdateUser handles PUT /users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, r, err)
		return
	}

	err := h.service.Update(r.Context(), id, UpdateInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		CustomAttributes: req.CustomAttributes,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeactivateUser handles PATCH /users/{id}/deactivate.
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReactivateUser handles PATCH /users/{id}/reactivate.
func (h *Handler) ReactivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Reactivate(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /users with page, size, and sortBy query parameters.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:   DefaultPage,
		Size:   DefaultSize,
		SortBy: DefaultSortBy,
	}

	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			httputil.Error(w, r, http.StatusBadRequest, "page must be an integer")
			return
		}
		params.Page = page
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			httputil.Error(w, r, http.StatusBadRequest, "size must be an integer")
			return
		}
		params.Size = size
	}
	if v := q.Get("sortBy"); v != "" {
		params.SortBy = v
	}

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, page)
}

// SearchUsers handles GET /users/search?query=. An empty query matches every
// enabled user.
func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("query")

	results, err := h.service.Search(r.Context(), term)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, results)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(w, r, err, []httputil.ErrorMapping{
		{Error: ErrUserNotFound, Status: http.StatusNotFound},
		{Error: ErrEmailExists, Status: http.StatusBadRequest},
		{Error: ErrInvalidPage, Status: http.StatusBadRequest},
		{Error: ErrInvalidPageSize, Status: http.StatusBadRequest},
		{Error: ErrInvalidSortBy, Status: http.StatusBadRequest},
	})
}
