package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/auth"
	"github.com/hugh/go-desk/internal/authz"
	"github.com/hugh/go-desk/internal/database/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Company{},
		&models.CustomDomain{},
		&models.Membership{},
		&models.Role{},
		&models.RecoveryToken{},
		&models.DocumentType{},
		&models.ServiceForm{},
		&models.TicketType{},
		&models.TicketStage{},
		&models.TicketStatus{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB closes the test database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("warning: failed to get sql.DB: %v", err)
		return
	}
	sqlDB.Close()
}

// CreateTestUser creates an active user with a known password
// ("testpassword123")
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Base: models.Base{
			ID: uuid.New(),
		},
		Email:        "test-" + uuid.New().String()[:8] + "@acme.dev",
		PasswordHash: &hash,
		FullName:     "Test User",
		FirstName:    "Test",
		LastName:     "User",
		IsActive:     true,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestCompany creates a company owned by the given user
func CreateTestCompany(t *testing.T, db *gorm.DB, owner *models.User) *models.Company {
	t.Helper()

	company := &models.Company{
		Base: models.Base{
			ID: uuid.New(),
		},
		Name:         "Test Company",
		Slug:         "test-co-" + uuid.New().String()[:8],
		OwnerID:      owner.ID,
		Status:       models.CompanyStatusActive,
		DomainsLimit: 3,
		UserLimit:    50,
		UserUsage:    1,
	}

	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}

	return company
}

// CreateTestRole creates a company-scoped role with the given permissions
func CreateTestRole(t *testing.T, db *gorm.DB, company *models.Company, name string, perms ...authz.Permission) *models.Role {
	t.Helper()

	values := make(models.StringArray, len(perms))
	for i, p := range perms {
		values[i] = string(p)
	}

	role := &models.Role{
		Base: models.Base{
			ID: uuid.New(),
		},
		Name:        name,
		CompanyID:   company.ID,
		Permissions: values,
		Status:      models.RoleStatusActive,
		CreatedByID: company.OwnerID,
		UpdatedByID: company.OwnerID,
	}

	if err := db.Create(role).Error; err != nil {
		t.Fatalf("failed to create test role: %v", err)
	}

	return role
}

// CreateTestMembership attaches the user to the company under the role
func CreateTestMembership(t *testing.T, db *gorm.DB, user *models.User, company *models.Company, role *models.Role) *models.Membership {
	t.Helper()

	membership := &models.Membership{
		Base: models.Base{
			ID: uuid.New(),
		},
		UserID:    user.ID,
		CompanyID: company.ID,
		RoleID:    role.ID,
	}

	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("failed to create test membership: %v", err)
	}

	return membership
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestSetup holds the common test dependencies: a tenant with its owner
// attached through an all-permission role.
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	User       *models.User
	Company    *models.Company
	AdminRole  *models.Role
	Membership *models.Membership
	Token      string
}

// NewTestContext creates a complete test setup with DB, user, company,
// membership and token
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	user := CreateTestUser(t, db)
	company := CreateTestCompany(t, db, user)
	adminRole := CreateTestRole(t, db, company, "Administrator", authz.PermAll)
	membership := CreateTestMembership(t, db, user, company, adminRole)
	token := GenerateTestToken(t, jwtService, user)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		User:       user,
		Company:    company,
		AdminRole:  adminRole,
		Membership: membership,
		Token:      token,
	}
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		sqlDB, err := ts.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
