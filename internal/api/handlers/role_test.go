package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/api/dto"
	"github.com/hugh/go-desk/internal/authz"
	"github.com/hugh/go-desk/internal/database/models"
	"github.com/hugh/go-desk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleHandler_Create(t *testing.T) {
	router, tc := setupTestRouter(t)
	defer tc.Cleanup()

	t.Run("successful creation", func(t *testing.T) {
		body := map[string]interface{}{
			"name":        "Support",
			"permissions": []string{"GET_ROLE", "LIST_FULL_ROLE"},
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/"+tc.Company.Slug+"/roles", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var created models.Role
		require.NoError(t, tc.DB.Where("name = ? AND company_id = ?", "Support", tc.Company.ID).
			First(&created).Error)
		assert.True(t, created.Permissions.Contains("GET_ROLE"))
	})

	t.Run("caller without grant is denied", func(t *testing.T) {
		member := testutil.CreateTestUser(t, tc.DB)
		memberRole := testutil.CreateTestRole(t, tc.DB, tc.Company, "Viewer", authz.PermGetRole)
		testutil.CreateTestMembership(t, tc.DB, member, tc.Company, memberRole)
		token := testutil.GenerateTestToken(t, tc.JWTService, member)

		body := map[string]interface{}{
			"name":        "Denied",
			"permissions": []string{"GET_ROLE"},
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/"+tc.Company.Slug+"/roles", body, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "You're not allowed to access this route", resp.Message)
	})

	t.Run("missing permissions field fails validation", func(t *testing.T) {
		body := map[string]interface{}{"name": "No Perms"}
		req := testutil.AuthenticatedRequest(t, "POST", "/"+tc.Company.Slug+"/roles", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Validation error", resp.Message)
	})
}

func TestRoleHandler_UpdateAndDelete(t *testing.T) {
	router, tc := setupTestRouter(t)
	defer tc.Cleanup()

	t.Run("update answers 201", func(t *testing.T) {
		target := testutil.CreateTestRole(t, tc.DB, tc.Company, "Old", authz.PermGetRole)

		body := map[string]interface{}{
			"name":        "Renamed",
			"permissions": []string{"GET_ROLE", "CREATE_ROLE"},
		}
		req := testutil.AuthenticatedRequest(t, "PUT", "/"+tc.Company.Slug+"/role/"+target.ID.String(), body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var updated models.Role
		require.NoError(t, tc.DB.First(&updated, target.ID).Error)
		assert.Equal(t, "Renamed", updated.Name)
	})

	t.Run("delete answers 201 and keeps the row", func(t *testing.T) {
		target := testutil.CreateTestRole(t, tc.DB, tc.Company, "Doomed", authz.PermGetRole)

		req := testutil.AuthenticatedRequest(t, "DELETE", "/"+tc.Company.Slug+"/role/"+target.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var deleted models.Role
		require.NoError(t, tc.DB.First(&deleted, target.ID).Error)
		assert.Equal(t, models.RoleStatusDeleted, deleted.Status)
		assert.NotNil(t, deleted.DeletedAt)
	})

	t.Run("non-uuid role id reads as not found", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/"+tc.Company.Slug+"/role/not-a-uuid", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Role not found", resp.Message)
	})
}

func TestRoleHandler_GetAndList(t *testing.T) {
	router, tc := setupTestRouter(t)
	defer tc.Cleanup()

	t.Run("get returns the role", func(t *testing.T) {
		target := testutil.CreateTestRole(t, tc.DB, tc.Company, "Visible", authz.PermGetRole)

		req := testutil.AuthenticatedRequest(t, "GET", "/"+tc.Company.Slug+"/role/"+target.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.RoleResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Visible", resp.Role.Name)
		assert.Equal(t, target.ID.String(), resp.Role.ID)
	})

	t.Run("another tenant's role id reads as not found", func(t *testing.T) {
		otherOwner := testutil.CreateTestUser(t, tc.DB)
		otherCompany := testutil.CreateTestCompany(t, tc.DB, otherOwner)
		foreign := testutil.CreateTestRole(t, tc.DB, otherCompany, "Foreign", authz.PermGetRole)

		req := testutil.AuthenticatedRequest(t, "GET", "/"+tc.Company.Slug+"/role/"+foreign.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Role not found", resp.Message)
	})

	t.Run("unknown role id reads the same", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/"+tc.Company.Slug+"/role/"+uuid.New().String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list returns the company's roles", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/"+tc.Company.Slug+"/roles", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.RoleListResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.NotEmpty(t, resp.Roles)
	})

	t.Run("non-member cannot list roles", func(t *testing.T) {
		outsider := testutil.CreateTestUser(t, tc.DB)
		token := testutil.GenerateTestToken(t, tc.JWTService, outsider)

		req := testutil.AuthenticatedRequest(t, "GET", "/"+tc.Company.Slug+"/roles", nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
