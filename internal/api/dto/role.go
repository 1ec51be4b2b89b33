package dto

import "github.com/hugh/go-desk/internal/apperr"

type RoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (r RoleRequest) Validate() []apperr.FieldError {
	var errs []apperr.FieldError

	if r.Name == "" {
		errs = append(errs, apperr.FieldError{Message: "Name is required", Path: "name"})
	}
	if r.Permissions == nil {
		errs = append(errs, apperr.FieldError{Message: "Permissions are required", Path: "permissions"})
	}

	return errs
}

type RoleDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Permissions []string `json:"permissions"`
}

type RoleResponse struct {
	Role RoleDTO `json:"role"`
}

type RoleListResponse struct {
	Roles []RoleDTO `json:"roles"`
}
