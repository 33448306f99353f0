package webapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vroomify/vroom/internal/domain"
	"gorm.io/gorm"
)

type vroomPayload struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	Banner      string `json:"banner"`
	Active      *bool  `json:"active"`
}

func (s *Server) registerVroomRoutes(g *echo.Group) {
	g.POST("/vrooms", s.createVroom)
	g.PUT("/vrooms/:id", s.updateVroom)
	g.POST("/vrooms/:id/follow", s.followVroom)
	g.DELETE("/vrooms/:id/follow", s.unfollowVroom)
	g.GET("/vrooms/:id/follow", s.vroomFollowStatus)
	g.GET("/me/vroom", s.getMyVroom)
	g.GET("/me/vrooms/followed", s.listFollowedVrooms)
}

func (s *Server) createVroom(c echo.Context) error {
	var payload vroomPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse vroom", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	uid := currentUserID(c)
	ctx := c.Request().Context()
	if _, err := s.store.GetUserVroom(ctx, uid); err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_VROOM", "User already owns a vroom", nil)
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	vroom := domain.Vroom{
		UserID:      uid,
		Name:        payload.Name,
		Description: payload.Description,
		Banner:      strings.TrimSpace(payload.Banner),
		Active:      active,
	}
	if err := s.store.CreateVroom(ctx, &vroom); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create vroom", err.Error())
	}
	return created(c, vroom)
}

func (s *Server) updateVroom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vroom ID", nil)
	}
	ctx := c.Request().Context()
	vroom, err := s.store.GetVroom(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Vroom not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query vroom", err.Error())
	}
	if vroom.UserID != currentUserID(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Not the vroom owner", nil)
	}

	var payload vroomPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse vroom", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	updates := map[string]interface{}{
		"name":        payload.Name,
		"description": payload.Description,
		"banner":      strings.TrimSpace(payload.Banner),
	}
	if payload.Active != nil {
		updates["active"] = *payload.Active
	}
	if err := s.store.UpdateVroom(ctx, id, updates); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update vroom", err.Error())
	}
	updated, err := s.store.GetVroom(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reload vroom", err.Error())
	}
	return ok(c, updated)
}

func (s *Server) followVroom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vroom ID", nil)
	}
	uid := currentUserID(c)
	ctx := c.Request().Context()
	if _, err := s.store.GetVroom(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Vroom not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query vroom", err.Error())
	}
	following, err := s.store.IsFollowingVroom(ctx, uid, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query follow status", err.Error())
	}
	if following {
		return noContent(c)
	}
	if err := s.store.FollowVroom(ctx, uid, id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to follow vroom", err.Error())
	}
	return noContent(c)
}

func (s *Server) unfollowVroom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vroom ID", nil)
	}
	if err := s.store.UnfollowVroom(c.Request().Context(), currentUserID(c), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to unfollow vroom", err.Error())
	}
	return noContent(c)
}

func (s *Server) vroomFollowStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vroom ID", nil)
	}
	following, err := s.store.IsFollowingVroom(c.Request().Context(), currentUserID(c), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query follow status", err.Error())
	}
	return ok(c, echo.Map{"following": following})
}

func (s *Server) getMyVroom(c echo.Context) error {
	vroom, err := s.store.GetUserVroom(c.Request().Context(), currentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "No vroom for this user", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query vroom", err.Error())
	}
	return ok(c, vroom)
}

func (s *Server) listFollowedVrooms(c echo.Context) error {
	page, pageSize := parsePagination(c)
	vrooms, err := s.store.GetFollowedVrooms(c.Request().Context(), currentUserID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query followed vrooms", err.Error())
	}
	return ok(c, vrooms)
}
