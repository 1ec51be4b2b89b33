package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/database/models"
	"gorm.io/gorm"
)

// MembershipContext is the resolved (company, membership, role) triple for
// one request. Callers must not hold it across requests: membership and role
// assignments can change between requests and no staleness is tolerated.
type MembershipContext struct {
	Company    *models.Company
	Membership *models.Membership
	Role       *models.Role
}

// Resolver turns a verified user id plus a company slug into the caller's
// standing within that company.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve fails with the same unauthorized error whether the company does
// not exist or the user simply is not a member of it. This is the single
// gate preventing cross-tenant access.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, slug string) (*MembershipContext, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Role").
		Joins("JOIN companies ON companies.id = memberships.company_id").
		Where("memberships.user_id = ? AND companies.slug = ?", userID, slug).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("You're not a member of this company.")
		}
		return nil, err
	}

	return &MembershipContext{
		Company:    membership.Company,
		Membership: &membership,
		Role:       membership.Role,
	}, nil
}
