package webapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/vroomify/vroom/internal/domain"
	"gorm.io/gorm"
)

type productPayload struct {
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Hashtags    []string        `json:"hashtags"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Available   *bool           `json:"available"`
}

func (s *Server) registerProductRoutes(g *echo.Group) {
	g.POST("/products", s.createProduct)
	g.PUT("/products/:id", s.updateProduct)
	g.DELETE("/products/:id", s.deleteProduct)
	g.POST("/products/:id/share", s.shareProduct)
	g.GET("/me/products", s.listMyProducts)
	g.GET("/me/recommendations", s.listRecommendations)
}

func (s *Server) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Title is required", nil)
	}
	if payload.Price.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}
	if payload.Stock < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Stock must not be negative", nil)
	}

	available := true
	if payload.Available != nil {
		available = *payload.Available
	}
	product := domain.Product{
		UserID:      currentUserID(c),
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		Image:       strings.TrimSpace(payload.Image),
		Images:      payload.Images,
		Hashtags:    normalizeHashtags(payload.Hashtags),
		Category:    strings.TrimSpace(payload.Category),
		Stock:       payload.Stock,
		Available:   available,
	}
	if err := s.store.CreateProduct(c.Request().Context(), &product); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return created(c, product)
}

func (s *Server) updateProduct(c echo.Context) error {
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
	if product.UserID != currentUserID(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Not the product owner", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Title is required", nil)
	}
	if payload.Price.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}

	updates := map[string]interface{}{
		"title":       payload.Title,
		"description": payload.Description,
		"price":       payload.Price,
		"image":       strings.TrimSpace(payload.Image),
		"images":      payload.Images,
		"hashtags":    normalizeHashtags(payload.Hashtags),
		"category":    strings.TrimSpace(payload.Category),
		"stock":       payload.Stock,
	}
	if payload.Available != nil {
		updates["available"] = *payload.Available
	}
	if err := s.store.UpdateProduct(ctx, id, updates); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	updated, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reload product", err.Error())
	}
	return ok(c, updated)
}

func (s *Server) deleteProduct(c echo.Context) error {
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
	if product.UserID != currentUserID(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Not the product owner", nil)
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return noContent(c)
}

func (s *Server) shareProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := s.store.IncrementProductShares(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record share", err.Error())
	}
	return noContent(c)
}

func (s *Server) listMyProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	products, err := s.store.GetUserProducts(c.Request().Context(), currentUserID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

func (s *Server) listRecommendations(c echo.Context) error {
	_, pageSize := parsePagination(c)
	products, err := s.store.GetRecommendedProducts(c.Request().Context(), currentUserID(c), pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query recommendations", err.Error())
	}
	return ok(c, products)
}

func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
		if tag != "" && !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
