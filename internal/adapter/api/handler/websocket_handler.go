package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"freestuff/internal/domain/entity"
	ws "freestuff/internal/infrastructure/websocket"
	"freestuff/internal/usecase"
	"freestuff/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	manager     *ws.Manager
	itemUseCase *usecase.ItemUseCase
	chatUseCase *usecase.ChatUseCase
}

func NewWebSocketHandler(manager *ws.Manager, itemUseCase *usecase.ItemUseCase, chatUseCase *usecase.ChatUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		manager:     manager,
		itemUseCase: itemUseCase,
		chatUseCase: chatUseCase,
	}
}

type subscribeRequest struct {
	Subscribe string `json:"subscribe"` // "feed" or "chat"
	ChatID    string `json:"chat_id,omitempty"`
}

type feedEvent struct {
	Type  string         `json:"type"`
	Items []*entity.Item `json:"items"`
}

type chatEvent struct {
	Type     string            `json:"type"`
	ChatID   string            `json:"chat_id"`
	Messages []*entity.Message `json:"messages"`
}

// Subscribe upgrades the connection and streams listener snapshots for the
// topics the client asks for. Cancellation is caller-driven: closing the
// socket stops every subscription, and has no effect on in-flight writes.
func (h *WebSocketHandler) Subscribe(c echo.Context) error {
	userID := c.Get("uid").(string)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &ws.Client{UserID: userID, Conn: conn, Send: make(chan []byte, 16)}
	h.manager.Register(client)
	go client.WritePump()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	defer h.manager.Unregister(client)

	for {
		var req subscribeRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("WebSocket read error for %s: %v", userID, err)
			}
			return nil
		}

		switch req.Subscribe {
		case "feed":
			err = h.itemUseCase.WatchAvailable(ctx, func(items []*entity.Item) {
				h.manager.Push(client, feedEvent{Type: "feed", Items: items})
			})
		case "chat":
			chatID := req.ChatID
			err = h.chatUseCase.WatchMessages(ctx, userID, chatID, func(messages []*entity.Message) {
				h.manager.Push(client, chatEvent{Type: "chat", ChatID: chatID, Messages: messages})
			})
		default:
			continue
		}
		if err != nil {
			logger.Warn("Subscription failed for %s: %v", userID, err)
			return nil
		}
	}
}
