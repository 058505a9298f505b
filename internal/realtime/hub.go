package realtime

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"Go-Recipe-Chat/internal/utils/logger"
)

// OutboundBuffer is how many frames may queue for a slow client before
// further frames to it are dropped.
const OutboundBuffer = 16

type Client struct {
	ID       uuid.UUID
	UserID   uint
	Channels map[string]bool
	Outbound chan Envelope
	done     chan struct{}
	closed   bool
}

// Done is closed when the hub closes the client.
func (c *Client) Done() <-chan struct{} { return c.done }

// Hub tracks which connected clients are subscribed to which channels on
// this instance and delivers envelopes to them.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
	users         map[uint]int
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "Hub"),
		subscriptions: make(map[string]map[*Client]bool),
		users:         make(map[uint]int),
	}
}

// NewClient registers a connection for userID. The returned count is the
// number of open connections the user now has.
func (hub *Hub) NewClient(userID uint) (*Client, int) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	hub.users[userID]++
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Channels: make(map[string]bool),
		Outbound: make(chan Envelope, OutboundBuffer),
		done:     make(chan struct{}),
	}, hub.users[userID]
}

func (hub *Hub) Subscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	client.Channels[channel] = true
	clients, ok := hub.subscriptions[channel]
	if !ok {
		clients = make(map[*Client]bool)
		hub.subscriptions[channel] = clients
	}
	clients[client] = true

	hub.log.Debug("client subscribed", "clientId", client.ID, "channel", channel)
}

func (hub *Hub) Unsubscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	delete(client.Channels, channel)
	hub.detach(client, channel)
	hub.log.Debug("client unsubscribed", "clientId", client.ID, "channel", channel)
}

func (hub *Hub) detach(client *Client, channel string) {
	if clients, ok := hub.subscriptions[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(hub.subscriptions, channel)
		}
	}
}

// Subscribers returns how many local clients listen on channel.
func (hub *Hub) Subscribers(channel string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.subscriptions[channel])
}

// Broadcast queues env for every subscriber of its channel except the
// origin client. A subscriber whose queue is full misses the envelope.
func (hub *Hub) Broadcast(env Envelope) {
	if env.Channel == "" {
		return
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for c := range hub.subscriptions[env.Channel] {
		if env.Origin != "" && c.ID.String() == env.Origin {
			continue
		}
		select {
		case c.Outbound <- env:
		default:
			hub.log.Warn("dropping frame; outbound buffer full", "clientId", c.ID, "event", env.Event)
		}
	}
}

// Send queues env for one client, dropping it when the queue is full.
func (hub *Hub) Send(client *Client, env Envelope) bool {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if client.closed {
		return false
	}
	select {
	case client.Outbound <- env:
		return true
	default:
		hub.log.Warn("dropping frame; outbound buffer full", "clientId", client.ID, "event", env.Event)
		return false
	}
}

// CloseClient unsubscribes the client everywhere and closes its queue. The
// returned count is the number of connections the user still has open.
func (hub *Hub) CloseClient(client *Client) int {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if client.closed {
		return hub.users[client.UserID]
	}
	client.closed = true
	for ch := range client.Channels {
		hub.detach(client, ch)
	}
	client.Channels = make(map[string]bool)
	close(client.done)
	close(client.Outbound)

	hub.users[client.UserID]--
	remaining := hub.users[client.UserID]
	if remaining <= 0 {
		delete(hub.users, client.UserID)
		remaining = 0
	}
	hub.log.Debug("client closed", "clientId", client.ID, "userId", client.UserID)
	return remaining
}
