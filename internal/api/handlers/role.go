package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/api/dto"
	"github.com/hugh/go-desk/internal/api/middleware"
	"github.com/hugh/go-desk/internal/authz"
	"github.com/hugh/go-desk/internal/database/models"
	"github.com/hugh/go-desk/internal/role"
)

type RoleHandler struct {
	roleService *role.Service
	resolver    *authz.Resolver
	logger      *slog.Logger
}

func NewRoleHandler(roleService *role.Service, resolver *authz.Resolver, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{roleService: roleService, resolver: resolver, logger: logger}
}

// membership resolves the caller's standing in the slug's company. Runs on
// every role request; results are never cached across requests.
func (h *RoleHandler) membership(r *http.Request) (*authz.MembershipContext, error) {
	userID := middleware.GetUserID(r.Context())
	slug := chi.URLParam(r, "slug")
	return h.resolver.Resolve(r.Context(), userID, slug)
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, h.logger, apperr.Validation(errs))
		return
	}

	mctx, err := h.membership(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.roleService.Create(r.Context(), mctx, role.CreateInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	}); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, nil)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, h.logger, apperr.Validation(errs))
		return
	}

	id, err := h.roleID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	mctx, err := h.membership(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.roleService.Update(r.Context(), mctx, id, role.UpdateInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	}); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, nil)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.roleID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	mctx, err := h.membership(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.roleService.Delete(r.Context(), mctx, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, nil)
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.roleID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	mctx, err := h.membership(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	found, err := h.roleService.Get(r.Context(), mctx, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RoleResponse{Role: roleDTO(found)})
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	mctx, err := h.membership(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	roles, err := h.roleService.List(r.Context(), mctx)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	out := make([]dto.RoleDTO, len(roles))
	for i := range roles {
		out[i] = roleDTO(&roles[i])
	}

	writeJSON(w, http.StatusOK, dto.RoleListResponse{Roles: out})
}

func (h *RoleHandler) roleID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("Role not found")
	}
	return id, nil
}

func roleDTO(m *models.Role) dto.RoleDTO {
	return dto.RoleDTO{
		ID:          m.ID.String(),
		Name:        m.Name,
		Status:      string(m.Status),
		Permissions: m.Permissions,
	}
}
