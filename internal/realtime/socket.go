package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const pingPeriod = 30 * time.Second

// Conn is the subset of *websocket.Conn used by Serve.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Serve runs one socket connection for userID until the peer goes away.
// The user is marked online while at least one of their sockets is open.
func (b *Broadcaster) Serve(ctx context.Context, conn Conn, userID uint) {
	client, open := b.hub.NewClient(userID)
	log := b.log.With("clientId", client.ID, "userId", userID)
	if open == 1 {
		b.setPresence(ctx, userID, true)
	}
	log.Debug("socket connected")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		b.writeLoop(conn, client)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Debug("socket read ended", "error", err)
			break
		}
		b.HandleFrame(ctx, client, raw)
	}

	if remaining := b.hub.CloseClient(client); remaining == 0 {
		b.setPresence(ctx, userID, false)
	}
	<-writerDone
	_ = conn.Close()
	log.Debug("socket disconnected")
}

func (b *Broadcaster) writeLoop(conn Conn, client *Client) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-client.Done():
			return
		case <-ping.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case env, ok := <-client.Outbound:
			if !ok {
				return
			}
			raw, err := json.Marshal(env.Frame())
			if err != nil {
				b.log.Warn("encode frame", "error", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				// unblock the reader
				_ = conn.Close()
				return
			}
		}
	}
}
