package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/middleware"
	ws "b2bmarket/internal/infrastructure/websocket"
	"b2bmarket/internal/usecase"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
	"b2bmarket/pkg/response"
)

type WebSocketHandler struct {
	wsManager   *ws.Manager
	feedUseCase *usecase.FeedUseCase
}

func NewWebSocketHandler(wsManager *ws.Manager, feedUseCase *usecase.FeedUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		feedUseCase: feedUseCase,
	}
}

// HandleWebSocket upgrades an authenticated request. Each feed the client
// subscribes to is opened for the session that made the upgrade.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	open := func(ctx context.Context, name string, push func(v interface{})) (ws.Feed, error) {
		return h.feedUseCase.Open(ctx, session, name, func(u usecase.FeedUpdate) { push(u) })
	}

	// Upgrade has already written the HTTP error on failure.
	if err := h.wsManager.Serve(c.Response(), c.Request(), session.UID, open); err != nil {
		logger.Warn("WebSocket upgrade failed for %s: %v", session.UID, err)
	}
	return nil
}
