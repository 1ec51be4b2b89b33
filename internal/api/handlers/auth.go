package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/api/dto"
	"github.com/hugh/go-desk/internal/api/middleware"
	"github.com/hugh/go-desk/internal/auth"
)

type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, h.logger, apperr.Validation(errs))
		return
	}

	if err := h.authService.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, h.logger, apperr.Validation(errs))
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Token: resp.Token,
		User: dto.UserDTO{
			ID:        resp.User.ID.String(),
			Email:     resp.User.Email,
			FullName:  resp.User.FullName,
			AvatarURL: resp.User.AvatarURL,
		},
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	owns := make([]dto.OwnedCompanyDTO, len(user.OwnsCompanies))
	for i, c := range user.OwnsCompanies {
		owns[i] = dto.OwnedCompanyDTO{ID: c.ID.String(), Name: c.Name}
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		FullName:      user.FullName,
		AvatarURL:     user.AvatarURL,
		OwnsCompanies: owns,
	})
}

func (h *AuthHandler) RecoverPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.RecoverPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, h.logger, apperr.Validation(errs))
		return
	}

	if err := h.authService.RequestPasswordRecover(r.Context(), req.Email); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, h.logger, apperr.Validation(errs))
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Code, req.Password); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
