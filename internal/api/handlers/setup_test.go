package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hugh/go-desk/internal/api"
	"github.com/hugh/go-desk/internal/auth"
	"github.com/hugh/go-desk/internal/company"
	"github.com/hugh/go-desk/internal/role"
	"github.com/hugh/go-desk/internal/testutil"
)

// stubBlocklist blocks a fixed slug, domain and email so the rejection
// paths are reachable without Redis.
type stubBlocklist struct{}

func (stubBlocklist) IsReservedSlug(ctx context.Context, slug string) bool {
	return slug == "admin"
}

func (stubBlocklist) IsBlockedDomain(ctx context.Context, domain string) bool {
	return domain == "blocked.test"
}

func (stubBlocklist) IsBlockedEmail(ctx context.Context, email string) bool {
	return email == "blocked@blocked.test"
}

func setupTestRouter(t *testing.T) (*api.Router, *testutil.TestSetup) {
	t.Helper()

	tc := testutil.NewTestContext(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	lists := stubBlocklist{}
	authService := auth.NewService(tc.DB, tc.JWTService, lists, nil)
	companyService := company.NewService(tc.DB, lists)
	roleService := role.NewService(tc.DB)

	router := api.NewRouter(api.RouterConfig{
		DB:             tc.DB,
		Logger:         logger,
		JWTService:     tc.JWTService,
		AuthService:    authService,
		CompanyService: companyService,
		RoleService:    roleService,
	})

	return router, tc
}
