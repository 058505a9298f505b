package realtime

import (
	"encoding/json"
	"fmt"
)

type Event string

const (
	// client to server
	EventJoin        Event = "join"
	EventLeave       Event = "leave"
	EventSendMessage Event = "send-message"

	// both directions; fanned out to everyone in the chat but the sender
	EventTyping     Event = "typing"
	EventStopTyping Event = "stop-typing"

	// server to client
	EventNewMessage Event = "new-message"
	EventError      Event = "error"
)

// Frame is the JSON shape of every socket message in both directions.
type Frame struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Envelope is a frame addressed to a channel. It is what travels over the
// bus between instances. Origin holds the id of the client that caused the
// event when that client must not receive it.
type Envelope struct {
	Channel string          `json:"channel"`
	Event   Event           `json:"event"`
	Data    json.RawMessage `json:"data,omitempty"`
	Origin  string          `json:"origin,omitempty"`
}

func NewEnvelope(channel string, event Event, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Channel: channel, Event: event, Data: raw}, nil
}

func (e Envelope) Frame() Frame {
	return Frame{Event: e.Event, Data: e.Data}
}

// ChatChannel names the channel a chat's events are published on.
func ChatChannel(chatID uint) string {
	return fmt.Sprintf("chat:%d", chatID)
}

type (
	ChatRef struct {
		ChatID uint `json:"chatId" validate:"required"`
	}

	TypingPayload struct {
		ChatID   uint   `json:"chatId" validate:"required"`
		UserID   string `json:"userId" validate:"required"`
		UserName string `json:"userName"`
	}

	ErrorPayload struct {
		Message string `json:"message"`
		Error   string `json:"error,omitempty"`
	}
)
