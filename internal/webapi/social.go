package webapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vroomify/vroom/internal/domain"
	"gorm.io/gorm"
)

type commentPayload struct {
	Content  string `json:"content" validate:"required,min=1,max=2048"`
	ParentID string `json:"parent_id"`
}

func (s *Server) registerSocialRoutes(g *echo.Group) {
	g.POST("/products/:id/like", s.likeProduct)
	g.DELETE("/products/:id/like", s.unlikeProduct)
	g.POST("/products/:id/bookmark", s.bookmarkProduct)
	g.DELETE("/products/:id/bookmark", s.unbookmarkProduct)
	g.GET("/products/:id/status", s.productStatus)
	g.POST("/products/:id/comments", s.createComment)
	g.DELETE("/comments/:id", s.deleteComment)
	g.GET("/me/likes", s.listLikedProducts)
	g.GET("/me/bookmarks", s.listBookmarkedProducts)
}

func (s *Server) likeProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	uid := currentUserID(c)
	ctx := c.Request().Context()
	if _, err := s.store.GetProduct(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	liked, err := s.store.IsProductLiked(ctx, uid, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query like status", err.Error())
	}
	if liked {
		return noContent(c)
	}
	if err := s.store.LikeProduct(ctx, uid, id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to like product", err.Error())
	}
	return noContent(c)
}

func (s *Server) unlikeProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := s.store.UnlikeProduct(c.Request().Context(), currentUserID(c), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to unlike product", err.Error())
	}
	return noContent(c)
}

func (s *Server) bookmarkProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	uid := currentUserID(c)
	ctx := c.Request().Context()
	bookmarked, err := s.store.IsProductBookmarked(ctx, uid, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookmark status", err.Error())
	}
	if bookmarked {
		return noContent(c)
	}
	if err := s.store.BookmarkProduct(ctx, uid, id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to bookmark product", err.Error())
	}
	return noContent(c)
}

func (s *Server) unbookmarkProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := s.store.UnbookmarkProduct(c.Request().Context(), currentUserID(c), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove bookmark", err.Error())
	}
	return noContent(c)
}

// productStatus reports the acting user's like/bookmark state for a product.
func (s *Server) productStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	uid := currentUserID(c)
	ctx := c.Request().Context()
	liked, err := s.store.IsProductLiked(ctx, uid, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query like status", err.Error())
	}
	bookmarked, err := s.store.IsProductBookmarked(ctx, uid, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookmark status", err.Error())
	}
	return ok(c, echo.Map{"liked": liked, "bookmarked": bookmarked})
}

func (s *Server) createComment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload commentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse comment", nil)
	}
	payload.Content = strings.TrimSpace(payload.Content)
	if payload.Content == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Content is required", nil)
	}

	ctx := c.Request().Context()
	if _, err := s.store.GetProduct(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	comment := domain.Comment{
		ProductID: id,
		UserID:    currentUserID(c),
		Content:   payload.Content,
	}
	if payload.ParentID != "" {
		parentID, err := strconv.ParseInt(payload.ParentID, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid parent comment ID", nil)
		}
		comment.ParentID = &parentID
	}
	if err := s.store.CreateComment(ctx, &comment); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create comment", err.Error())
	}
	return created(c, comment)
}

func (s *Server) deleteComment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID", nil)
	}
	err = s.store.DeleteComment(c.Request().Context(), currentUserID(c), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Comment not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete comment", err.Error())
	}
	return noContent(c)
}

func (s *Server) listLikedProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	products, err := s.store.GetLikedProducts(c.Request().Context(), currentUserID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query liked products", err.Error())
	}
	return ok(c, products)
}

func (s *Server) listBookmarkedProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	products, err := s.store.GetBookmarkedProducts(c.Request().Context(), currentUserID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookmarks", err.Error())
	}
	return ok(c, products)
}
