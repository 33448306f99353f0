package webapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
	"gorm.io/gorm"
)

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Realname string `json:"realname"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) registerAuthRoutes(g *echo.Group) {
	g.POST("/auth/register", s.register)
	g.POST("/auth/login", s.login)
}

func (s *Server) register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}
	payload.Username = strings.TrimSpace(payload.Username)
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Username == "" || payload.Email == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and email are required", nil)
	}
	if len(payload.Password) < 6 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Password must be at least 6 characters", nil)
	}

	ctx := c.Request().Context()
	if _, err := s.store.GetUserByUsername(ctx, payload.Username); err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_USERNAME", "Username already taken", nil)
	}
	if _, err := s.store.GetUserByEmail(ctx, payload.Email); err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_EMAIL", "Email already registered", nil)
	}

	hashed, err := common.HashPassword(payload.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process password", nil)
	}
	user := domain.User{
		Username: payload.Username,
		Email:    payload.Email,
		Password: hashed,
		Realname: strings.TrimSpace(payload.Realname),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}
	return created(c, user)
}

func (s *Server) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}

	ctx := c.Request().Context()
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(payload.Username))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !common.CheckPassword(user.Password, payload.Password)) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	if user.Status != common.ENABLED {
		return fail(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled", nil)
	}

	ttl := time.Duration(s.app.GetSettingsInt64Value("auth", "session_ttl_hours")) * time.Hour
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	expires := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"uid":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"exp":      expires.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.app.Config().Web.JwtSecret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign token", nil)
	}

	if err := s.store.CreateSession(ctx, &domain.Session{
		UserID:    user.ID,
		Token:     common.RandomToken(32),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: expires,
	}); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create session", err.Error())
	}
	_ = s.store.UpdateUser(ctx, user.ID, map[string]interface{}{"last_login": time.Now()})

	return ok(c, echo.Map{
		"token":      token,
		"expires_at": expires,
		"user":       user,
	})
}
