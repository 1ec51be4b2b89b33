// Package role implements company-scoped role management. Every operation
// re-verifies that the target role belongs to the company resolved from the
// request's slug, so guessing another tenant's role id yields the same
// not-found answer as a bogus id.
package role

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/authz"
	"github.com/hugh/go-desk/internal/database/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Name        string
	Permissions []string
}

func (s *Service) Create(ctx context.Context, mctx *authz.MembershipContext, input CreateInput) error {
	if err := authz.Can([]authz.Permission{authz.PermAll, authz.PermCreateRole}, mctx.Role.Permissions); err != nil {
		return err
	}

	var existing models.Role
	err := s.db.WithContext(ctx).
		Where("name = ? AND company_id = ?", input.Name, mctx.Company.ID).
		First(&existing).Error
	if err == nil {
		return apperr.BadRequest("Role already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.WithContext(ctx).Create(&models.Role{
		Name:        input.Name,
		CompanyID:   mctx.Company.ID,
		Permissions: models.StringArray(input.Permissions),
		Status:      models.RoleStatusActive,
		CreatedByID: mctx.Membership.UserID,
		UpdatedByID: mctx.Membership.UserID,
	}).Error
}

type UpdateInput struct {
	Name        string
	Permissions []string
}

func (s *Service) Update(ctx context.Context, mctx *authz.MembershipContext, id uuid.UUID, input UpdateInput) error {
	if err := authz.Can([]authz.Permission{authz.PermAll, authz.PermUpdateRole}, mctx.Role.Permissions); err != nil {
		return err
	}

	role, err := s.findInCompany(ctx, id, mctx.Company.ID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(role).
		Where("company_id = ?", mctx.Company.ID).
		Updates(map[string]interface{}{
			"name":          input.Name,
			"permissions":   models.StringArray(input.Permissions),
			"updated_by_id": mctx.Membership.UserID,
		}).Error
}

// Delete soft-deletes: the row is kept with a deleted status and timestamp.
func (s *Service) Delete(ctx context.Context, mctx *authz.MembershipContext, id uuid.UUID) error {
	if err := authz.Can([]authz.Permission{authz.PermAll, authz.PermDeleteRole}, mctx.Role.Permissions); err != nil {
		return err
	}

	role, err := s.findInCompany(ctx, id, mctx.Company.ID)
	if err != nil {
		return err
	}

	role.SoftDelete(time.Now())
	return s.db.WithContext(ctx).Model(&models.Role{}).
		Where("id = ? AND company_id = ?", role.ID, mctx.Company.ID).
		Updates(map[string]interface{}{
			"status":        role.Status,
			"deleted_at":    role.DeletedAt,
			"updated_by_id": mctx.Membership.UserID,
		}).Error
}

func (s *Service) Get(ctx context.Context, mctx *authz.MembershipContext, id uuid.UUID) (*models.Role, error) {
	if err := authz.Can([]authz.Permission{authz.PermAll, authz.PermGetRole}, mctx.Role.Permissions); err != nil {
		return nil, err
	}
	return s.findInCompany(ctx, id, mctx.Company.ID)
}

func (s *Service) List(ctx context.Context, mctx *authz.MembershipContext) ([]models.Role, error) {
	if err := authz.Can([]authz.Permission{authz.PermAll, authz.PermListFullRole}, mctx.Role.Permissions); err != nil {
		return nil, err
	}

	var roles []models.Role
	if err := s.db.WithContext(ctx).
		Where("company_id = ?", mctx.Company.ID).
		Order("created_at").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *Service) findInCompany(ctx context.Context, id, companyID uuid.UUID) (*models.Role, error) {
	var role models.Role
	err := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("Role not found")
		}
		return nil, err
	}
	return &role, nil
}
