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

type messagePayload struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=1,max=4096"`
	OrderID    string `json:"order_id"`
}

func (s *Server) registerMessageRoutes(g *echo.Group) {
	g.POST("/messages", s.sendMessage)
	g.GET("/messages/unread", s.unreadCount)
	g.GET("/messages/:peer", s.listMessages)
	g.POST("/messages/:peer/read", s.markRead)
	g.GET("/conversations", s.listConversations)
}

func (s *Server) sendMessage(c echo.Context) error {
	var payload messagePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", nil)
	}
	receiverID, err := strconv.ParseInt(payload.ReceiverID, 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid receiver ID", nil)
	}
	payload.Content = strings.TrimSpace(payload.Content)
	if payload.Content == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Content is required", nil)
	}
	uid := currentUserID(c)
	if receiverID == uid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot message yourself", nil)
	}

	ctx := c.Request().Context()
	if _, err := s.store.GetUser(ctx, receiverID); errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Receiver not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query receiver", err.Error())
	}

	msg := domain.Message{
		SenderID:   uid,
		ReceiverID: receiverID,
		Content:    payload.Content,
	}
	if payload.OrderID != "" {
		orderID, err := strconv.ParseInt(payload.OrderID, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order ID", nil)
		}
		msg.OrderID = &orderID
	}
	if err := s.store.SendMessage(ctx, &msg); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to send message", err.Error())
	}
	return created(c, msg)
}

func (s *Server) listMessages(c echo.Context) error {
	peer, err := parseIDParam(c, "peer")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid peer ID", nil)
	}
	page, pageSize := parsePagination(c)
	messages, err := s.store.GetMessages(c.Request().Context(), currentUserID(c), peer, pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages", err.Error())
	}
	return ok(c, messages)
}

func (s *Server) markRead(c echo.Context) error {
	peer, err := parseIDParam(c, "peer")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid peer ID", nil)
	}
	if err := s.store.MarkMessagesRead(c.Request().Context(), currentUserID(c), peer); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to mark messages read", err.Error())
	}
	return noContent(c)
}

func (s *Server) listConversations(c echo.Context) error {
	conversations, err := s.store.GetUserConversations(c.Request().Context(), currentUserID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query conversations", err.Error())
	}
	return ok(c, conversations)
}

func (s *Server) unreadCount(c echo.Context) error {
	count, err := s.store.UnreadMessageCount(c.Request().Context(), currentUserID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query unread count", err.Error())
	}
	return ok(c, echo.Map{"unread": count})
}
