package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/workspace-service/internal/auth"
	"github.com/spec-kit/workspace-service/internal/service"
)

// CloseAuthExpired is the reserved close status sent when the cached access
// claims of a connection lapse mid-session.
const CloseAuthExpired = 4001

const sessionKey = "channel_session"

type inbound struct {
	Body string `json:"body"`
}

// ChatHandler serves the persistent chat channel. The handshake runs the
// full authentication gate once; afterwards each inbound message only gets
// a liveness check against the cached access expiry, because the channel
// has no way to rewrite the client's cookies mid-connection.
type ChatHandler struct {
	bridge *auth.ChannelBridge
	chat   *service.ChatService
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

// NewChatHandler constructs the handler.
func NewChatHandler(bridge *auth.ChannelBridge, chat *service.ChatService, hub *Hub, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{bridge: bridge, chat: chat, hub: hub, logger: logger, now: time.Now}
}

// Upgrade authenticates the handshake and admits the websocket upgrade.
func (h *ChatHandler) Upgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		session, err := h.bridge.Handshake(c.Get(fiber.HeaderCookie))
		if err != nil {
			return fiber.ErrForbidden
		}
		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// Serve returns the websocket handler for the chat room.
func (h *ChatHandler) Serve() fiber.Handler {
	return websocket.New(h.serve)
}

func (h *ChatHandler) serve(conn *websocket.Conn) {
	session, ok := conn.Locals(sessionKey).(*auth.ChannelSession)
	if !ok {
		_ = conn.Close()
		return
	}
	h.run(conn, session)
}

func (h *ChatHandler) run(conn channelConn, session *auth.ChannelSession) {
	client := h.hub.Register(conn)
	defer h.hub.Unregister(client)

	ctx := context.Background()
	h.replayHistory(ctx, client)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		if !session.Live(h.now()) {
			_ = client.Send(Envelope{Type: "auth-expired"})
			client.close(CloseAuthExpired, "auth-expired")
			return
		}

		var frame inbound
		if err := json.Unmarshal(data, &frame); err != nil {
			_ = client.Send(Envelope{Type: "error", Body: "malformed frame"})
			continue
		}

		message, err := h.chat.Post(ctx, session.UserID, frame.Body)
		if err != nil {
			_ = client.Send(Envelope{Type: "error", Body: "message rejected"})
			continue
		}
		h.hub.Publish(ctx, MessageEnvelope(message))
	}
}

func (h *ChatHandler) replayHistory(ctx context.Context, client *Client) {
	history, err := h.chat.History(ctx)
	if err != nil {
		h.logger.Warn("chat history unavailable", zap.Error(err))
		return
	}
	for i := range history {
		if err := client.Send(MessageEnvelope(&history[i])); err != nil {
			return
		}
	}
}
