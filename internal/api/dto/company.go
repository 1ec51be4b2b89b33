package dto

import (
	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/api/validation"
	"github.com/hugh/go-desk/internal/company"
)

type CreateCompanyRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r CreateCompanyRequest) Validate() []apperr.FieldError {
	var errs []apperr.FieldError

	if r.Name == "" {
		errs = append(errs, apperr.FieldError{Message: "Name is required", Path: "name"})
	}
	if !validation.IsValidSlug(r.Slug) {
		errs = append(errs, apperr.FieldError{Message: "Slug must be at least 3 lowercase characters", Path: "slug"})
	}

	return errs
}

type CompanyListResponse struct {
	Companies []company.CompanySummary `json:"companies"`
}

type CreateDomainRequest struct {
	Domain    string `json:"domain"`
	OnlyEmail bool   `json:"onlyEmail"`
}

func (r CreateDomainRequest) Validate() []apperr.FieldError {
	if !validation.IsValidDomain(r.Domain) {
		return []apperr.FieldError{{Message: "Invalid domain", Path: "domain"}}
	}
	return nil
}
