package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/internal/service"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

func (h *HttpAPIHandler) SetupChat(base *echo.Group) {
	v1 := base.Group("/v1/chat")
	{
		v1.POST("/start", h.StartChat)
		v1.POST("/message", h.SendChatMessage)
		v1.POST("/reset", h.ResetChat)
	}
}

// StartChat opens a conversation: welcome fetch, fresh conversation id,
// rendered log. A failed welcome still succeeds here, the widget gets the
// offline greeting and a connected=false flag.
func (h *HttpAPIHandler) StartChat(c echo.Context) error {
	var req dto.ChatStartRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	ctx := c.Request().Context()
	conversationID, session, err := h.service.ChatService.StartConversation(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to start conversation", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "could not start conversation", nil))
	}

	view, err := h.conversationViewFor(conversationID, session, h.rendererFor(req.View))
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to render conversation", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "could not render conversation", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("conversation started", view))
}

func (h *HttpAPIHandler) SendChatMessage(c echo.Context) error {
	var req dto.ChatMessageRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	ctx := c.Request().Context()
	if _, err := h.service.ChatService.Submit(ctx, req.ConversationID, req.Message); err != nil {
		return h.chatError(c, err)
	}

	session, err := h.service.ChatService.Session(req.ConversationID)
	if err != nil {
		return h.chatError(c, err)
	}

	view, err := h.conversationViewFor(req.ConversationID, session, h.rendererFor(req.View))
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to render conversation", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "could not render conversation", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("message processed", view))
}

func (h *HttpAPIHandler) ResetChat(c echo.Context) error {
	var req dto.ChatResetRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	ctx := c.Request().Context()
	session, err := h.service.ChatService.Reset(ctx, req.ConversationID)
	if err != nil {
		return h.chatError(c, err)
	}

	view, err := h.conversationViewFor(req.ConversationID, session, h.rendererFor(req.View))
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to render conversation", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "could not render conversation", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("conversation reset", view))
}

// chatError maps session-layer errors onto widget API statuses. Transport
// failures never reach here, they already degraded to log entries.
func (h *HttpAPIHandler) chatError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrConversationNotFound):
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "conversation not found or expired", nil))
	case errors.Is(err, service.ErrBusy):
		return c.JSON(http.StatusConflict, dto.NewBaseResponse(http.StatusConflict, "a message is already being processed", nil))
	default:
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
}
