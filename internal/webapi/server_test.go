package webapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vroomify/vroom/config"
	"github.com/vroomify/vroom/internal/app"
	"github.com/vroomify/vroom/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	cfg := *config.DefaultAppConfig
	application := app.NewApplication(&cfg)
	application.OverrideDB(db)

	server := NewServer(application)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return server
}

func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, s *Server, username string) string {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMeReturnsProfile(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data domain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "alice", resp.Data.Username)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"title":    "Vintage Lamp",
		"price":    "45.50",
		"hashtags": []string{"#Vintage", "lamps"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var createResp struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createResp))
	require.ElementsMatch(t, []string{"vintage", "lamps"}, createResp.Data.Hashtags)

	// public listing sees it without a token
	rec = doJSON(t, s, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Vintage Lamp")

	productPath := fmt.Sprintf("/api/v1/products/%d", createResp.Data.ID)
	rec = doJSON(t, s, http.MethodDelete, productPath, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodGet, productPath, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductForbiddenForNonOwner(t *testing.T) {
	s := newTestServer(t)
	owner := registerAndLogin(t, s, "alice")
	other := registerAndLogin(t, s, "bob")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/products", owner, map[string]interface{}{
		"title": "Lamp",
		"price": "10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var createResp struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createResp))

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", createResp.Data.ID), other, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCartFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	seller := registerAndLogin(t, s, "seller")
	buyer := registerAndLogin(t, s, "buyer")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/products", seller, map[string]interface{}{
		"title": "Lamp",
		"price": "10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var createResp struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createResp))
	productID := fmt.Sprintf("%d", createResp.Data.ID)

	// adding the same product twice folds into one row
	for i := 0; i < 2; i++ {
		rec = doJSON(t, s, http.MethodPost, "/api/v1/cart", buyer, map[string]interface{}{
			"product_id": productID,
			"quantity":   2,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/cart", buyer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cartResp struct {
		Data []struct {
			Quantity int `json:"quantity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	require.Len(t, cartResp.Data, 1)
	require.Equal(t, 4, cartResp.Data[0].Quantity)
}

func TestAdminRoutesRestrictedToSuperAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := registerAndLogin(t, s, "admin")
	regular := registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/admin/stats", regular, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"users":2`)
}

func TestAdminUpdatesSettings(t *testing.T) {
	s := newTestServer(t)
	admin := registerAndLogin(t, s, "admin")

	rec := doJSON(t, s, http.MethodPut, "/api/v1/admin/settings", admin, map[string]string{
		"category": "site",
		"name":     "trending_limit",
		"value":    "25",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodGet, "/api/v1/admin/settings", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "trending_limit")
}

func TestAdminDisablesUserLogin(t *testing.T) {
	s := newTestServer(t)
	admin := registerAndLogin(t, s, "admin")
	registerAndLogin(t, s, "alice")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/users/search?q=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var searchResp struct {
		Data []domain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &searchResp))
	require.Len(t, searchResp.Data, 1)
	aliceID := fmt.Sprintf("%d", searchResp.Data[0].ID)

	rec = doJSON(t, s, http.MethodPut, "/api/v1/admin/users/"+aliceID+"/status", admin, map[string]string{
		"status": "disabled",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFollowUserOverHTTP(t *testing.T) {
	s := newTestServer(t)
	alice := registerAndLogin(t, s, "alice")
	registerAndLogin(t, s, "bob")

	// look bob up through the public search endpoint
	rec := doJSON(t, s, http.MethodGet, "/api/v1/users/search?q=bob", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var searchResp struct {
		Data []domain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &searchResp))
	require.Len(t, searchResp.Data, 1)
	bobID := fmt.Sprintf("%d", searchResp.Data[0].ID)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/users/"+bobID+"/follow", alice, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodGet, "/api/v1/users/"+bobID+"/follow", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"following":true`)
}
