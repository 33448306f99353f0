package webapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// registerPublicRoutes wires the read-only endpoints that need no identity:
// catalog browsing, search, trending and public profiles.
func (s *Server) registerPublicRoutes(g *echo.Group) {
	g.GET("/products", s.listProducts)
	g.GET("/products/search", s.searchProducts)
	g.GET("/products/trending", s.trendingProducts)
	g.GET("/products/:id", s.getProduct)
	g.GET("/products/:id/comments", s.listProductComments)
	g.GET("/hashtags/trending", s.trendingHashtags)

	g.GET("/vrooms", s.listVrooms)
	g.GET("/vrooms/:id", s.getVroom)
	g.GET("/vrooms/:id/products", s.listVroomProducts)

	g.GET("/users/:id", s.getUserProfile)
	g.GET("/users/:id/products", s.listUserProducts)
	g.GET("/users/:id/followers", s.listFollowers)
	g.GET("/users/:id/following", s.listFollowing)
	g.GET("/users/search", s.searchUsers)
}

func (s *Server) listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	products, err := s.store.GetProducts(c.Request().Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

func (s *Server) searchProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := strings.TrimSpace(c.QueryParam("q"))
	var hashtags []string
	if raw := strings.TrimSpace(c.QueryParam("hashtags")); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				hashtags = append(hashtags, tag)
			}
		}
	}
	products, err := s.store.SearchProducts(c.Request().Context(), query, hashtags, pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to search products", err.Error())
	}
	return ok(c, products)
}

func (s *Server) trendingProducts(c echo.Context) error {
	limit := int(s.app.GetSettingsInt64Value("site", "trending_limit"))
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	products, err := s.store.GetTrendingProducts(c.Request().Context(), limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query trending products", err.Error())
	}
	return ok(c, products)
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	ctx := c.Request().Context()
	product, err := s.store.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	// every read counts as a view
	_ = s.store.IncrementProductViews(ctx, id)
	return ok(c, product)
}

func (s *Server) listProductComments(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	page, pageSize := parsePagination(c)
	comments, err := s.store.GetProductComments(c.Request().Context(), id, pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query comments", err.Error())
	}
	return ok(c, comments)
}

func (s *Server) trendingHashtags(c echo.Context) error {
	limit := 10
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	tags, err := s.store.GetTrendingHashtags(c.Request().Context(), limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query hashtags", err.Error())
	}
	return ok(c, tags)
}

func (s *Server) listVrooms(c echo.Context) error {
	page, pageSize := parsePagination(c)
	vrooms, err := s.store.GetVrooms(c.Request().Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query vrooms", err.Error())
	}
	return ok(c, vrooms)
}

func (s *Server) getVroom(c echo.Context) error {
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
	_ = s.store.IncrementVroomViews(ctx, id)
	return ok(c, vroom)
}

func (s *Server) listVroomProducts(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vroom ID", nil)
	}
	page, pageSize := parsePagination(c)
	products, err := s.store.GetVroomProducts(c.Request().Context(), id, pageSize, (page-1)*pageSize)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Vroom not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query vroom products", err.Error())
	}
	return ok(c, products)
}

func (s *Server) getUserProfile(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	user, err := s.store.GetUser(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	return ok(c, user)
}

func (s *Server) listUserProducts(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	page, pageSize := parsePagination(c)
	products, err := s.store.GetUserProducts(c.Request().Context(), id, pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

func (s *Server) listFollowers(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	page, pageSize := parsePagination(c)
	users, err := s.store.GetFollowers(c.Request().Context(), id, pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query followers", err.Error())
	}
	return ok(c, users)
}

func (s *Server) listFollowing(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	page, pageSize := parsePagination(c)
	users, err := s.store.GetFollowing(c.Request().Context(), id, pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query following", err.Error())
	}
	return ok(c, users)
}

func (s *Server) searchUsers(c echo.Context) error {
	page, pageSize := parsePagination(c)
	users, err := s.store.SearchUsers(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to search users", err.Error())
	}
	return ok(c, users)
}
