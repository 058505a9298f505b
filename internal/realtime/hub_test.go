package realtime

import (
	"testing"
	"time"

	"Go-Recipe-Chat/internal/utils/logger"
)

func recvEnvelope(t *testing.T, ch <-chan Envelope, timeout time.Duration) Envelope {
	t.Helper()
	select {
	case env := <-ch:
		return env
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for envelope")
	}
	return Envelope{}
}

func expectNothing(t *testing.T, ch <-chan Envelope) {
	t.Helper()
	select {
	case env, ok := <-ch:
		if ok {
			t.Fatalf("unexpected envelope: %s", env.Event)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func mustEnvelope(t *testing.T, channel string, event Event, data any) Envelope {
	t.Helper()
	env, err := NewEnvelope(channel, event, data)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	return env
}

func TestHubDeliversOnlyToChannelSubscribers(t *testing.T) {
	hub := NewHub(logger.Nop())
	a, _ := hub.NewClient(1)
	b, _ := hub.NewClient(2)
	hub.Subscribe(a, ChatChannel(1))
	hub.Subscribe(b, ChatChannel(2))

	hub.Broadcast(mustEnvelope(t, ChatChannel(1), EventNewMessage, map[string]any{"text": "hi"}))

	if got := recvEnvelope(t, a.Outbound, time.Second); got.Event != EventNewMessage {
		t.Fatalf("event: want=%s got=%s", EventNewMessage, got.Event)
	}
	expectNothing(t, b.Outbound)
}

func TestHubSkipsOrigin(t *testing.T) {
	hub := NewHub(logger.Nop())
	a, _ := hub.NewClient(1)
	b, _ := hub.NewClient(2)
	hub.Subscribe(a, ChatChannel(1))
	hub.Subscribe(b, ChatChannel(1))

	env := mustEnvelope(t, ChatChannel(1), EventTyping, TypingPayload{ChatID: 1, UserID: "a"})
	env.Origin = a.ID.String()
	hub.Broadcast(env)

	if got := recvEnvelope(t, b.Outbound, time.Second); got.Event != EventTyping {
		t.Fatalf("event: want=%s got=%s", EventTyping, got.Event)
	}
	expectNothing(t, a.Outbound)
}

func TestHubDropsWhenOutboundFull(t *testing.T) {
	hub := NewHub(logger.Nop())
	c, _ := hub.NewClient(1)
	hub.Subscribe(c, ChatChannel(1))

	for i := 0; i < OutboundBuffer+5; i++ {
		hub.Broadcast(mustEnvelope(t, ChatChannel(1), EventNewMessage, map[string]int{"seq": i}))
	}
	if len(c.Outbound) != OutboundBuffer {
		t.Fatalf("outbound: want=%d got=%d", OutboundBuffer, len(c.Outbound))
	}
}

func TestHubCloseClient(t *testing.T) {
	hub := NewHub(logger.Nop())
	first, open := hub.NewClient(7)
	if open != 1 {
		t.Fatalf("open: want=1 got=%d", open)
	}
	second, open := hub.NewClient(7)
	if open != 2 {
		t.Fatalf("open: want=2 got=%d", open)
	}
	hub.Subscribe(first, ChatChannel(1))

	if remaining := hub.CloseClient(first); remaining != 1 {
		t.Fatalf("remaining: want=1 got=%d", remaining)
	}
	if n := hub.Subscribers(ChatChannel(1)); n != 0 {
		t.Fatalf("subscribers: want=0 got=%d", n)
	}
	if _, ok := <-first.Outbound; ok {
		t.Fatalf("outbound should be closed")
	}
	if hub.Send(first, mustEnvelope(t, "", EventError, ErrorPayload{Message: "x"})) {
		t.Fatalf("send to closed client should fail")
	}
	// closing twice is harmless
	hub.CloseClient(first)

	if remaining := hub.CloseClient(second); remaining != 0 {
		t.Fatalf("remaining: want=0 got=%d", remaining)
	}
}
