package webapi

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
)

type settingPayload struct {
	Category string `json:"category" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Value    string `json:"value"`
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

// registerAdminRoutes wires the operator surface: settings, moderation and
// maintenance. Everything here requires the super admin account.
func (s *Server) registerAdminRoutes(g *echo.Group) {
	admin := g.Group("/admin", s.requireAdmin)
	admin.GET("/settings", s.listSettings)
	admin.PUT("/settings", s.updateSetting)
	admin.GET("/stats", s.adminStats)
	admin.GET("/users", s.listUsers)
	admin.POST("/audit/counters", s.runCounterAudit)
	admin.PUT("/users/:id/status", s.updateUserStatus)
	admin.DELETE("/products/:id", s.adminDeleteProduct)
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentUsername(c) != "admin" {
			return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin access required", nil)
		}
		return next(c)
	}
}

func (s *Server) listSettings(c echo.Context) error {
	var rows []domain.SysConfig
	err := s.app.DB().WithContext(c.Request().Context()).
		Order("sort, type, name").Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	return ok(c, rows)
}

func (s *Server) updateSetting(c echo.Context) error {
	var payload settingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse setting", nil)
	}
	payload.Category = strings.TrimSpace(payload.Category)
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Category == "" || payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Category and name are required", nil)
	}
	if err := s.app.Settings().Set(payload.Category, payload.Name, payload.Value); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save setting", err.Error())
	}
	return noContent(c)
}

func (s *Server) adminStats(c echo.Context) error {
	db := s.app.DB().WithContext(c.Request().Context())
	stats := echo.Map{}
	for name, model := range map[string]interface{}{
		"users":    &domain.User{},
		"products": &domain.Product{},
		"vrooms":   &domain.Vroom{},
		"orders":   &domain.Order{},
		"messages": &domain.Message{},
	} {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query stats", err.Error())
		}
		stats[name] = n
	}
	return ok(c, stats)
}

// runCounterAudit triggers the reconciliation sweep on demand, outside its
// cron schedule.
func (s *Server) runCounterAudit(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := s.store.ReconcileProductCounters(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Product counter audit failed", err.Error())
	}
	vrooms, err := s.store.ReconcileVroomCounters(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Vroom counter audit failed", err.Error())
	}
	return ok(c, echo.Map{
		"products_fixed": products,
		"vrooms_fixed":   vrooms,
	})
}

// listUsers pages through all accounts for moderation, newest first.
func (s *Server) listUsers(c echo.Context) error {
	page, pageSize := parsePagination(c)
	db := s.app.DB().WithContext(c.Request().Context())

	var total int64
	if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count users", err.Error())
	}
	var users []domain.User
	err := db.Order("created_at DESC, id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&users).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}
	return paged(c, users, total, page, pageSize)
}

func (s *Server) updateUserStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}
	if payload.Status != common.ENABLED && payload.Status != common.DISABLED {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Status must be enabled or disabled", nil)
	}
	if err := s.store.UpdateUser(c.Request().Context(), id, map[string]interface{}{"status": payload.Status}); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user status", err.Error())
	}
	return noContent(c)
}

// adminDeleteProduct removes a listing regardless of ownership.
func (s *Server) adminDeleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := s.store.DeleteProduct(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return noContent(c)
}

func currentUsername(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	name, _ := claims["username"].(string)
	return name
}
