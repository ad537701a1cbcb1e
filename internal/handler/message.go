package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
)

func SetupMessageRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/messages", authMiddleware)
	g.POST("", SendMessage(storage))
	g.GET("", ListConversations(storage))
	g.GET("/:userId", GetConversation(storage))
	g.DELETE("/:messageId", DeleteMessage(storage))
}

// SendMessage godoc
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body domain.SendMessageRequest true "Receiver and content"
// @Success 201 {object} domain.Message
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /messages [post]
func SendMessage(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.SendMessageRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "receiverId and content are required."})
		}

		sender, err := currentUser(c, storage)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized."})
		}

		message, err := storage.SendMessage(c.Request().Context(), sender, &req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, message)
	}
}

// ListConversations godoc
// @Summary List the caller's conversations
// @Description One row per counterpart with the latest message and unread count
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Conversation
// @Router /messages [get]
func ListConversations(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerID, _ := c.Get("user_id").(string)
		conversations, err := storage.Conversations(c.Request().Context(), callerID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"conversations": conversations})
	}
}

// GetConversation godoc
// @Summary Message history with one user
// @Description Oldest first; fetching marks the counterpart's messages as read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Counterpart user id"
// @Success 200 {array} domain.Message
// @Router /messages/{userId} [get]
func GetConversation(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerID, _ := c.Get("user_id").(string)
		messages, err := storage.Conversation(c.Request().Context(), callerID, c.Param("userId"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"messages": messages})
	}
}

// DeleteMessage godoc
// @Summary Delete a message for the caller
// @Description The message disappears for the caller only; the counterpart keeps it
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param messageId path string true "Message id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /messages/{messageId} [delete]
func DeleteMessage(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerID, _ := c.Get("user_id").(string)
		if err := storage.DeleteMessage(c.Request().Context(), c.Param("messageId"), callerID); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Message deleted successfully."})
	}
}
