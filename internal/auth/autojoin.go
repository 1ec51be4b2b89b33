package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/database/models"
	"gorm.io/gorm"
)

// AutoJoinTarget names the company and role a registering user is attached
// to when their email domain matches a registered custom domain.
type AutoJoinTarget struct {
	CompanyID uuid.UUID
	RoleID    uuid.UUID
}

// evaluateAutoJoin finds a company with domain auto-join enabled that owns a
// custom domain exactly matching the email's domain. Eligibility also
// requires free capacity and a configured default role. The capacity read
// here is advisory; the guarded counter update inside the registration
// transaction has the final say.
func (s *Service) evaluateAutoJoin(ctx context.Context, email string) (*AutoJoinTarget, error) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return nil, nil
	}
	domain := email[at+1:]

	var company models.Company
	err := s.db.WithContext(ctx).
		Joins("JOIN custom_domains ON custom_domains.company_id = companies.id").
		Where("companies.auto_join_by_domain = ? AND custom_domains.domain = ?", true, domain).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if company.DefaultRoleID == nil || company.UserUsage >= company.UserLimit {
		return nil, nil
	}

	return &AutoJoinTarget{CompanyID: company.ID, RoleID: *company.DefaultRoleID}, nil
}
