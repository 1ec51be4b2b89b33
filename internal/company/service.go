package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/authz"
	"github.com/hugh/go-desk/internal/database/models"
	"gorm.io/gorm"
)

// Blocklist answers slug and domain blocklist lookups.
type Blocklist interface {
	IsReservedSlug(ctx context.Context, slug string) bool
	IsBlockedDomain(ctx context.Context, domain string) bool
}

type Service struct {
	db        *gorm.DB
	blocklist Blocklist
}

func NewService(db *gorm.DB, blocklist Blocklist) *Service {
	return &Service{db: db, blocklist: blocklist}
}

type CreateInput struct {
	Name string
	Slug string
}

// Create provisions a company for its owner: the company row, the
// Administrator role, the owner's membership and the per-company reference
// records all land in one transaction. A company never exists
// half-provisioned.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) error {
	if s.blocklist.IsReservedSlug(ctx, input.Slug) {
		return apperr.BadRequest("Slug is reserved")
	}

	var owned int64
	if err := s.db.WithContext(ctx).Model(&models.Company{}).
		Where("owner_id = ?", ownerID).
		Count(&owned).Error; err != nil {
		return err
	}
	if owned >= 1 {
		return apperr.BadRequest("You can't create more than 1 company")
	}

	var existing models.Company
	err := s.db.WithContext(ctx).Where("slug = ?", input.Slug).First(&existing).Error
	if err == nil {
		return apperr.BadRequest("Company with same slug already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// The unique indexes on owner_id and slug back these pre-checks: if two
	// creations race past them, the second insert fails instead of leaving
	// a duplicate.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company := models.Company{
			Name:         input.Name,
			Slug:         input.Slug,
			OwnerID:      ownerID,
			Status:       models.CompanyStatusActive,
			DomainsLimit: 3,
			UserLimit:    50,
			UserUsage:    1,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		adminRole := models.Role{
			Name:        "Administrator",
			CompanyID:   company.ID,
			Permissions: models.StringArray{string(authz.PermAll)},
			Status:      models.RoleStatusActive,
			CreatedByID: ownerID,
			UpdatedByID: ownerID,
		}
		if err := tx.Create(&adminRole).Error; err != nil {
			return err
		}

		membership := models.Membership{
			UserID:    ownerID,
			CompanyID: company.ID,
			RoleID:    adminRole.ID,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		return seedCompanyFixtures(tx, company.ID, ownerID)
	})
}

// CompanySummary is the listing shape (id, name, slug).
type CompanySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ListByOwner returns the companies the user owns.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]CompanySummary, error) {
	var companies []models.Company
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&companies).Error; err != nil {
		return nil, err
	}

	summaries := make([]CompanySummary, len(companies))
	for i, c := range companies {
		summaries[i] = CompanySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return summaries, nil
}

type CreateDomainInput struct {
	Domain    string
	OnlyEmail bool
}

// CreateDomain registers a custom domain for the caller's company. Requires
// the superuser grant; the first domain becomes primary. The guarded counter
// update decides the limit race: the domain row is inserted iff the counter
// moved, in the same transaction, so domains_usage never overshoots
// domains_limit.
func (s *Service) CreateDomain(ctx context.Context, mctx *authz.MembershipContext, input CreateDomainInput) error {
	if s.blocklist.IsBlockedDomain(ctx, input.Domain) {
		return apperr.BadRequest("Unable to complete registration")
	}

	if !mctx.Role.Permissions.Contains(string(authz.PermAll)) {
		return apperr.BadRequest("You're not allowed to create a domain")
	}

	var existing models.CustomDomain
	err := s.db.WithContext(ctx).Where("domain = ?", input.Domain).First(&existing).Error
	if err == nil {
		return apperr.BadRequest("Domain already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Company{}).
			Where("id = ? AND domains_usage < domains_limit", mctx.Company.ID).
			Update("domains_usage", gorm.Expr("domains_usage + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.BadRequest("You've reached the limit of domains")
		}

		var registered int64
		if err := tx.Model(&models.CustomDomain{}).
			Where("company_id = ?", mctx.Company.ID).
			Count(&registered).Error; err != nil {
			return err
		}

		return tx.Create(&models.CustomDomain{
			Domain:    input.Domain,
			CompanyID: mctx.Company.ID,
			OnlyEmail: input.OnlyEmail,
			Primary:   registered == 0,
		}).Error
	})
}
