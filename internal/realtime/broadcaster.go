package realtime

import (
	"context"
	"encoding/json"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/utils"
	"Go-Recipe-Chat/internal/utils/logger"
)

type (
	// MessagePoster is the part of the chat service the broadcaster needs.
	MessagePoster interface {
		GetChat(ctx context.Context, id uint) (*entities.Chat, error)
		SendMessage(ctx context.Context, req domain.SendMessageRequest) (*entities.Message, error)
	}

	PresenceUpdater interface {
		UpdatePresence(ctx context.Context, id uint, online bool) (*entities.User, error)
	}
)

// Broadcaster turns inbound socket frames into chat operations and fans
// the results out through the bus.
type Broadcaster struct {
	hub      *Hub
	bus      Bus
	chats    MessagePoster
	presence PresenceUpdater
	log      *logger.Logger
}

func NewBroadcaster(hub *Hub, bus Bus, chats MessagePoster, presence PresenceUpdater, log *logger.Logger) *Broadcaster {
	utils.InitValidator()
	return &Broadcaster{
		hub:      hub,
		bus:      bus,
		chats:    chats,
		presence: presence,
		log:      log.With("component", "Broadcaster"),
	}
}

func (b *Broadcaster) Hub() *Hub { return b.hub }

// Start forwards everything published on the bus into the local hub until
// ctx is done.
func (b *Broadcaster) Start(ctx context.Context) error {
	return b.bus.StartForwarder(ctx, b.hub.Broadcast)
}

// PublishMessage announces a persisted message to every subscriber of its
// chat, the sender included.
func (b *Broadcaster) PublishMessage(ctx context.Context, message *entities.Message) error {
	env, err := NewEnvelope(ChatChannel(message.ChatID), EventNewMessage, message)
	if err != nil {
		return err
	}
	return b.bus.Publish(ctx, env)
}

// HandleFrame processes one inbound frame from client. Failures are
// reported back to that client only.
func (b *Broadcaster) HandleFrame(ctx context.Context, client *Client, raw []byte) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		b.sendError(client, domain.MessageFailedBodyRequest, err)
		return
	}

	switch frame.Event {
	case EventJoin:
		var ref ChatRef
		if !b.decode(client, frame.Data, &ref) {
			return
		}
		if _, err := b.chats.GetChat(ctx, ref.ChatID); err != nil {
			b.sendError(client, domain.MessageFailedGetChat, err)
			return
		}
		b.hub.Subscribe(client, ChatChannel(ref.ChatID))

	case EventLeave:
		var ref ChatRef
		if !b.decode(client, frame.Data, &ref) {
			return
		}
		b.hub.Unsubscribe(client, ChatChannel(ref.ChatID))

	case EventSendMessage:
		var req domain.SendMessageRequest
		if !b.decode(client, frame.Data, &req) {
			return
		}
		message, err := b.chats.SendMessage(ctx, req)
		if err != nil {
			b.sendError(client, domain.MessageFailedSendMessage, err)
			return
		}
		if err := b.PublishMessage(ctx, message); err != nil {
			b.log.Error("publish message", "chatId", message.ChatID, "messageId", message.ID, "error", err)
		}

	case EventTyping, EventStopTyping:
		var typing TypingPayload
		if !b.decode(client, frame.Data, &typing) {
			return
		}
		env, err := NewEnvelope(ChatChannel(typing.ChatID), frame.Event, typing)
		if err != nil {
			b.log.Error("encode typing event", "error", err)
			return
		}
		env.Origin = client.ID.String()
		if err := b.bus.Publish(ctx, env); err != nil {
			b.log.Warn("publish typing event", "chatId", typing.ChatID, "error", err)
		}

	default:
		b.sendError(client, "unknown event", nil)
	}
}

func (b *Broadcaster) decode(client *Client, data json.RawMessage, v any) bool {
	if len(data) == 0 {
		b.sendError(client, domain.MessageFailedBodyRequest, nil)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		b.sendError(client, domain.MessageFailedBodyRequest, err)
		return false
	}
	if err := utils.Validate.Struct(v); err != nil {
		b.sendError(client, domain.MessageFailedBodyRequest, err)
		return false
	}
	return true
}

func (b *Broadcaster) sendError(client *Client, message string, err error) {
	payload := ErrorPayload{Message: message}
	if err != nil {
		payload.Error = err.Error()
	}
	env, encErr := NewEnvelope("", EventError, payload)
	if encErr != nil {
		return
	}
	b.hub.Send(client, env)
}

func (b *Broadcaster) setPresence(ctx context.Context, userID uint, online bool) {
	if b.presence == nil {
		return
	}
	if _, err := b.presence.UpdatePresence(ctx, userID, online); err != nil {
		b.log.Warn("update presence", "userId", userID, "online", online, "error", err)
	}
}
