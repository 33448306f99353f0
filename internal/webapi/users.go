package webapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type profilePayload struct {
	Realname string `json:"realname"`
	Bio      string `json:"bio" validate:"omitempty,max=512"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Avatar   string `json:"avatar"`
}

func (s *Server) registerUserRoutes(g *echo.Group) {
	g.GET("/me", s.getMe)
	g.PUT("/me", s.updateMe)
	g.DELETE("/me", s.deleteMe)
	g.POST("/users/:id/follow", s.followUser)
	g.DELETE("/users/:id/follow", s.unfollowUser)
	g.GET("/users/:id/follow", s.followStatus)
}

func (s *Server) getMe(c echo.Context) error {
	user, err := s.store.GetUser(c.Request().Context(), currentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	return ok(c, user)
}

func (s *Server) updateMe(c echo.Context) error {
	var payload profilePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile", nil)
	}
	uid := currentUserID(c)
	ctx := c.Request().Context()
	err := s.store.UpdateUser(ctx, uid, map[string]interface{}{
		"realname": strings.TrimSpace(payload.Realname),
		"bio":      payload.Bio,
		"location": strings.TrimSpace(payload.Location),
		"website":  strings.TrimSpace(payload.Website),
		"avatar":   strings.TrimSpace(payload.Avatar),
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update profile", err.Error())
	}
	user, err := s.store.GetUser(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reload user", err.Error())
	}
	return ok(c, user)
}

func (s *Server) deleteMe(c echo.Context) error {
	if err := s.store.DeleteUser(c.Request().Context(), currentUserID(c)); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete account", err.Error())
	}
	return noContent(c)
}

func (s *Server) followUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	uid := currentUserID(c)
	if uid == id {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot follow yourself", nil)
	}
	ctx := c.Request().Context()
	if _, err := s.store.GetUser(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	// duplicate edges are rejected by the unique index; check first
	following, err := s.store.IsFollowingUser(ctx, uid, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query follow status", err.Error())
	}
	if following {
		return noContent(c)
	}
	if err := s.store.FollowUser(ctx, uid, id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to follow user", err.Error())
	}
	return noContent(c)
}

func (s *Server) unfollowUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	if err := s.store.UnfollowUser(c.Request().Context(), currentUserID(c), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to unfollow user", err.Error())
	}
	return noContent(c)
}

func (s *Server) followStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	following, err := s.store.IsFollowingUser(c.Request().Context(), currentUserID(c), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query follow status", err.Error())
	}
	return ok(c, echo.Map{"following": following})
}
