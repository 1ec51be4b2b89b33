package dto

import (
	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/api/validation"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() []apperr.FieldError {
	var errs []apperr.FieldError

	if r.Name == "" {
		errs = append(errs, apperr.FieldError{Message: "Name is required", Path: "name"})
	}
	if !validation.IsValidEmail(r.Email) {
		errs = append(errs, apperr.FieldError{Message: "Invalid email", Path: "email"})
	}
	if ok, msg := validation.IsValidPassword(r.Password); !ok {
		errs = append(errs, apperr.FieldError{Message: msg, Path: "password"})
	}

	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []apperr.FieldError {
	var errs []apperr.FieldError

	if !validation.IsValidEmail(r.Email) {
		errs = append(errs, apperr.FieldError{Message: "Invalid email", Path: "email"})
	}
	if r.Password == "" {
		errs = append(errs, apperr.FieldError{Message: "Password is required", Path: "password"})
	}

	return errs
}

type RecoverPasswordRequest struct {
	Email string `json:"email"`
}

func (r RecoverPasswordRequest) Validate() []apperr.FieldError {
	if !validation.IsValidEmail(r.Email) {
		return []apperr.FieldError{{Message: "Invalid email", Path: "email"}}
	}
	return nil
}

type ResetPasswordRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (r ResetPasswordRequest) Validate() []apperr.FieldError {
	var errs []apperr.FieldError

	if r.Code == "" {
		errs = append(errs, apperr.FieldError{Message: "Code is required", Path: "code"})
	}
	if ok, msg := validation.IsValidPassword(r.Password); !ok {
		errs = append(errs, apperr.FieldError{Message: msg, Path: "password"})
	}

	return errs
}

type UserDTO struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type OwnedCompanyDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProfileResponse struct {
	ID            string            `json:"id"`
	Email         string            `json:"email"`
	FullName      string            `json:"full_name"`
	AvatarURL     *string           `json:"avatar_url"`
	OwnsCompanies []OwnedCompanyDTO `json:"ownsCompanies"`
}
