package company_test

import (
	"context"
	"testing"

	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/authz"
	"github.com/hugh/go-desk/internal/company"
	"github.com/hugh/go-desk/internal/database/models"
	"github.com/hugh/go-desk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubBlocklist struct {
	slugs   map[string]bool
	domains map[string]bool
}

func (b *stubBlocklist) IsReservedSlug(ctx context.Context, slug string) bool {
	return b.slugs[slug]
}

func (b *stubBlocklist) IsBlockedDomain(ctx context.Context, domain string) bool {
	return b.domains[domain]
}

func newCompanyService(db *gorm.DB) *company.Service {
	return company.NewService(db, &stubBlocklist{
		slugs:   map[string]bool{"admin": true, "api": true},
		domains: map[string]bool{"example.com": true},
	})
}

func membershipContext(t *testing.T, ts *testutil.TestSetup) *authz.MembershipContext {
	t.Helper()
	mctx, err := authz.NewResolver(ts.DB).Resolve(context.Background(), ts.User.ID, ts.Company.Slug)
	require.NoError(t, err)
	return mctx
}

func TestService_Create(t *testing.T) {
	t.Run("provisions company, admin role, membership and reference records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newCompanyService(db)

		owner := testutil.CreateTestUser(t, db)
		err := svc.Create(context.Background(), owner.ID, company.CreateInput{
			Name: "Acme Desk",
			Slug: "acme-desk",
		})
		require.NoError(t, err)

		var created models.Company
		require.NoError(t, db.Where("slug = ?", "acme-desk").First(&created).Error)
		assert.Equal(t, owner.ID, created.OwnerID)
		assert.Equal(t, models.CompanyStatusActive, created.Status)
		assert.Equal(t, 1, created.UserUsage)
		assert.Equal(t, 3, created.DomainsLimit)
		assert.Equal(t, 50, created.UserLimit)

		var adminRole models.Role
		require.NoError(t, db.Where("company_id = ? AND name = ?", created.ID, "Administrator").
			First(&adminRole).Error)
		assert.True(t, adminRole.Permissions.Contains("ALL_ADM"))

		var membership models.Membership
		require.NoError(t, db.Where("user_id = ? AND company_id = ?", owner.ID, created.ID).
			First(&membership).Error)
		assert.Equal(t, adminRole.ID, membership.RoleID)

		var docTypes, forms, ticketTypes, stages, statuses int64
		require.NoError(t, db.Model(&models.DocumentType{}).Where("company_id = ?", created.ID).Count(&docTypes).Error)
		require.NoError(t, db.Model(&models.ServiceForm{}).Where("company_id = ?", created.ID).Count(&forms).Error)
		require.NoError(t, db.Model(&models.TicketType{}).Where("company_id = ?", created.ID).Count(&ticketTypes).Error)
		require.NoError(t, db.Model(&models.TicketStage{}).Where("company_id = ?", created.ID).Count(&stages).Error)
		require.NoError(t, db.Model(&models.TicketStatus{}).Where("company_id = ?", created.ID).Count(&statuses).Error)
		assert.Equal(t, int64(4), docTypes)
		assert.Equal(t, int64(3), forms)
		assert.Equal(t, int64(4), ticketTypes)
		assert.Equal(t, int64(4), stages)
		assert.Equal(t, int64(3), statuses)
	})

	t.Run("rejects reserved slug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newCompanyService(db)

		owner := testutil.CreateTestUser(t, db)
		err := svc.Create(context.Background(), owner.ID, company.CreateInput{
			Name: "Admin Co",
			Slug: "admin",
		})
		require.Error(t, err)
		assert.Equal(t, "Slug is reserved", err.Error())
	})

	t.Run("rejects second company for the same owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newCompanyService(db)

		owner := testutil.CreateTestUser(t, db)
		require.NoError(t, svc.Create(context.Background(), owner.ID, company.CreateInput{
			Name: "First", Slug: "first-co",
		}))

		err := svc.Create(context.Background(), owner.ID, company.CreateInput{
			Name: "Second", Slug: "second-co",
		})
		require.Error(t, err)
		assert.Equal(t, "You can't create more than 1 company", err.Error())
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newCompanyService(db)

		first := testutil.CreateTestUser(t, db)
		second := testutil.CreateTestUser(t, db)
		require.NoError(t, svc.Create(context.Background(), first.ID, company.CreateInput{
			Name: "First", Slug: "shared-slug",
		}))

		err := svc.Create(context.Background(), second.ID, company.CreateInput{
			Name: "Second", Slug: "shared-slug",
		})
		require.Error(t, err)
		assert.Equal(t, "Company with same slug already exists", err.Error())
	})
}

func TestService_ListByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newCompanyService(db)

	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	testutil.CreateTestCompany(t, db, owner)
	testutil.CreateTestCompany(t, db, other)

	summaries, err := svc.ListByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.NotEmpty(t, summaries[0].Slug)
}

func TestService_CreateDomain(t *testing.T) {
	t.Run("first domain becomes primary and moves the counter", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		defer ts.Cleanup()
		svc := newCompanyService(ts.DB)
		mctx := membershipContext(t, ts)

		err := svc.CreateDomain(context.Background(), mctx, company.CreateDomainInput{
			Domain: "corp.example.io",
		})
		require.NoError(t, err)

		var domain models.CustomDomain
		require.NoError(t, ts.DB.Where("domain = ?", "corp.example.io").First(&domain).Error)
		assert.True(t, domain.Primary)
		assert.False(t, domain.Verified)

		var refreshed models.Company
		require.NoError(t, ts.DB.First(&refreshed, ts.Company.ID).Error)
		assert.Equal(t, 1, refreshed.DomainsUsage)
	})

	t.Run("second domain is not primary", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		defer ts.Cleanup()
		svc := newCompanyService(ts.DB)
		mctx := membershipContext(t, ts)

		require.NoError(t, svc.CreateDomain(context.Background(), mctx, company.CreateDomainInput{
			Domain: "one.example.io",
		}))
		require.NoError(t, svc.CreateDomain(context.Background(), mctx, company.CreateDomainInput{
			Domain: "two.example.io",
		}))

		var second models.CustomDomain
		require.NoError(t, ts.DB.Where("domain = ?", "two.example.io").First(&second).Error)
		assert.False(t, second.Primary)
	})

	t.Run("rejects blocked domain", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		defer ts.Cleanup()
		svc := newCompanyService(ts.DB)
		mctx := membershipContext(t, ts)

		err := svc.CreateDomain(context.Background(), mctx, company.CreateDomainInput{
			Domain: "example.com",
		})
		require.Error(t, err)
		assert.Equal(t, "Unable to complete registration", err.Error())
	})

	t.Run("rejects caller without the superuser grant", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		defer ts.Cleanup()
		svc := newCompanyService(ts.DB)

		member := testutil.CreateTestUser(t, ts.DB)
		role := testutil.CreateTestRole(t, ts.DB, ts.Company, "Member", authz.PermGetRole)
		testutil.CreateTestMembership(t, ts.DB, member, ts.Company, role)

		mctx, err := authz.NewResolver(ts.DB).Resolve(context.Background(), member.ID, ts.Company.Slug)
		require.NoError(t, err)

		err = svc.CreateDomain(context.Background(), mctx, company.CreateDomainInput{
			Domain: "member.example.io",
		})
		require.Error(t, err)
		assert.Equal(t, "You're not allowed to create a domain", err.Error())
	})

	t.Run("rejects duplicate domain even across companies", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		defer ts.Cleanup()
		svc := newCompanyService(ts.DB)
		mctx := membershipContext(t, ts)

		require.NoError(t, svc.CreateDomain(context.Background(), mctx, company.CreateDomainInput{
			Domain: "taken.example.io",
		}))

		otherOwner := testutil.CreateTestUser(t, ts.DB)
		otherCompany := testutil.CreateTestCompany(t, ts.DB, otherOwner)
		otherRole := testutil.CreateTestRole(t, ts.DB, otherCompany, "Administrator", authz.PermAll)
		testutil.CreateTestMembership(t, ts.DB, otherOwner, otherCompany, otherRole)
		otherCtx, err := authz.NewResolver(ts.DB).Resolve(context.Background(), otherOwner.ID, otherCompany.Slug)
		require.NoError(t, err)

		err = svc.CreateDomain(context.Background(), otherCtx, company.CreateDomainInput{
			Domain: "taken.example.io",
		})
		require.Error(t, err)
		assert.Equal(t, "Domain already exists", err.Error())
	})

	t.Run("enforces the domain limit", func(t *testing.T) {
		ts := testutil.NewTestContext(t)
		defer ts.Cleanup()
		svc := newCompanyService(ts.DB)
		mctx := membershipContext(t, ts)

		require.NoError(t, ts.DB.Model(ts.Company).Update("domains_limit", 1).Error)
		mctx = membershipContext(t, ts)

		require.NoError(t, svc.CreateDomain(context.Background(), mctx, company.CreateDomainInput{
			Domain: "only.example.io",
		}))

		err := svc.CreateDomain(context.Background(), mctx, company.CreateDomainInput{
			Domain: "over.example.io",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		assert.Equal(t, "You've reached the limit of domains", err.Error())
	})
}
