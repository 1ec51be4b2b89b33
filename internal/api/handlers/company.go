package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/api/dto"
	"github.com/hugh/go-desk/internal/api/middleware"
	"github.com/hugh/go-desk/internal/authz"
	"github.com/hugh/go-desk/internal/company"
)

type CompanyHandler struct {
	companyService *company.Service
	resolver       *authz.Resolver
	logger         *slog.Logger
}

func NewCompanyHandler(companyService *company.Service, resolver *authz.Resolver, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, resolver: resolver, logger: logger}
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, h.logger, apperr.Validation(errs))
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := h.companyService.Create(r.Context(), userID, company.CreateInput{
		Name: req.Name,
		Slug: req.Slug,
	}); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, nil)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	companies, err := h.companyService.ListByOwner(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CompanyListResponse{Companies: companies})
}

func (h *CompanyHandler) CreateDomain(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, h.logger, apperr.Validation(errs))
		return
	}

	userID := middleware.GetUserID(r.Context())
	slug := chi.URLParam(r, "slug")

	mctx, err := h.resolver.Resolve(r.Context(), userID, slug)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.companyService.CreateDomain(r.Context(), mctx, company.CreateDomainInput{
		Domain:    req.Domain,
		OnlyEmail: req.OnlyEmail,
	}); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, nil)
}
