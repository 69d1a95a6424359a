package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/workspace-service/internal/domain"
)

// Envelope is the wire format for channel frames in both directions.
type Envelope struct {
	Type      string     `json:"type"`
	ID        string     `json:"id,omitempty"`
	UserID    *int64     `json:"userId,omitempty"`
	Username  string     `json:"username,omitempty"`
	Body      string     `json:"body,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// MessageEnvelope wraps a stored chat message for transport.
func MessageEnvelope(message *domain.Message) Envelope {
	created := message.CreatedAt
	return Envelope{
		Type:      "message",
		ID:        message.ID,
		UserID:    message.UserID,
		Username:  message.Username,
		Body:      message.Body,
		CreatedAt: &created,
	}
}

// channelConn is the connection surface the room uses; the concrete type is
// the fiber websocket connection.
type channelConn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one registered websocket connection. Writes are serialized by a
// per-connection lock since the underlying connection is not write-safe.
type Client struct {
	conn channelConn
	mu   sync.Mutex
}

// Send writes one envelope to the peer.
func (c *Client) Send(envelope Envelope) error {
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) close(code int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
	_ = c.conn.Close()
}

// Hub fans chat frames out to every local connection and relays them through
// a Redis channel so multiple service instances share one room.
type Hub struct {
	redis   *redis.Client
	channel string
	logger  *zap.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
}

// NewHub builds a hub publishing on the given Redis channel.
func NewHub(client *redis.Client, channel string, logger *zap.Logger) *Hub {
	return &Hub{
		redis:   client,
		channel: channel,
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

// Register adds a connection and returns its client handle.
func (h *Hub) Register(conn channelConn) *Client {
	client := &Client{conn: conn}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	return client
}

// Unregister drops the client from the fan-out set.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
}

// Publish relays an envelope to every instance through Redis. When Redis is
// unreachable the frame is still delivered to local connections.
func (h *Hub) Publish(ctx context.Context, envelope Envelope) {
	data, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("marshal chat envelope", zap.Error(err))
		return
	}
	if h.redis != nil {
		err := h.redis.Publish(ctx, h.channel, data).Err()
		if err == nil {
			return
		}
		h.logger.Warn("redis publish failed; broadcasting locally", zap.Error(err))
	}
	h.broadcast(data)
}

// Run consumes the Redis channel and broadcasts each frame to local
// connections until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		return
	}
	pubsub := h.redis.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.mu.Lock()
		err := client.conn.WriteMessage(websocket.TextMessage, data)
		client.mu.Unlock()
		if err != nil {
			h.Unregister(client)
		}
	}
}
