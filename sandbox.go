package openrealm

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

// SandboxMessage is one JSON-RPC-shaped message exchanged with a scene's
// script sandbox (the process hosting a scene's own code, out of this
// module's scope to implement but whose wire channel the runtime must
// still speak).
type SandboxMessage struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Channel is the transport a running scene's sandbox uses to exchange
// messages with the runtime. The sandbox process itself, and anything it
// does with the messages, is out of scope; openrealm only needs to get
// bytes to and from it.
type Channel interface {
	Send(ctx context.Context, msg SandboxMessage) error
	Receive(ctx context.Context) (SandboxMessage, error)
	Close() error
}

// wsChannel is the default Channel implementation, a websocket
// connection to a locally-hosted sandbox process.
type wsChannel struct {
	conn *websocket.Conn
}

// DialSandbox connects to a scene sandbox's websocket endpoint.
func DialSandbox(ctx context.Context, url string) (Channel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, NewRealmError(ErrRemoteTransient, "dial scene sandbox", err)
	}
	return &wsChannel{conn: conn}, nil
}

func (c *wsChannel) Send(ctx context.Context, msg SandboxMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return NewRealmError(ErrInvariantViolation, "marshal sandbox message", err)
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsChannel) Receive(ctx context.Context) (SandboxMessage, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return SandboxMessage{}, NewRealmError(ErrRemoteTransient, "read sandbox message", err)
	}
	var msg SandboxMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return SandboxMessage{}, NewRealmError(ErrDecodeError, "decode sandbox message", err)
	}
	return msg, nil
}

func (c *wsChannel) Close() error {
	return c.conn.Close()
}
