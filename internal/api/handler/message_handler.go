package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/metrics"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// MessageHandler serves the message center.
type MessageHandler struct {
	messaging ports.MessagingService
}

func NewMessageHandler(messaging ports.MessagingService) *MessageHandler {
	return &MessageHandler{messaging: messaging}
}

// Compose opens a new chat with a first message. A new chat is created on
// every call, even between the same two users.
//
// @Summary      Compose message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      composeRequest  true  "Receiver and first message"
// @Success      201   {object}  domain.Chat
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /messages [post]
func (h *MessageHandler) Compose(c echo.Context) error {
	var req composeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	chat, err := h.messaging.Compose(c.Request().Context(), actorFrom(c), req.ReceiverID, req.Body)
	if err != nil {
		return err
	}
	metrics.MessagesTotal.WithLabelValues("compose").Inc()
	return c.JSON(http.StatusCreated, chat)
}

// ListChats returns the chats the caller takes part in.
//
// @Summary      My chats
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Chat
// @Router       /chats [get]
func (h *MessageHandler) ListChats(c echo.Context) error {
	chats, err := h.messaging.ListMyChats(c.Request().Context(), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chats)
}

// GetChat returns one chat with its messages in order.
//
// @Summary      Chat detail
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Chat ID"
// @Success      200  {object}  domain.Chat
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /chats/{id} [get]
func (h *MessageHandler) GetChat(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	chat, err := h.messaging.GetChat(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// Append adds a reply to an existing chat.
//
// @Summary      Reply in chat
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Chat ID"
// @Param        body  body      appendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /chats/{id}/messages [post]
func (h *MessageHandler) Append(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req appendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.messaging.AppendMessage(c.Request().Context(), actorFrom(c), id, req.Body)
	if err != nil {
		return err
	}
	metrics.MessagesTotal.WithLabelValues("reply").Inc()
	return c.JSON(http.StatusCreated, msg)
}
