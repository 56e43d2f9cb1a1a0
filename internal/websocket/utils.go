package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// ReadWait bounds the silence allowed between client messages.
	ReadWait = 5 * time.Minute
)

// Conn serialises writes on a gorilla connection, which allows at most one
// concurrent writer.
type Conn struct {
	*websocket.Conn
	mu sync.Mutex
}

// Wrap returns a Conn around c.
func Wrap(c *websocket.Conn) *Conn {
	return &Conn{Conn: c}
}

// WriteTyped sends v as JSON.
func (c *Conn) WriteTyped(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteJSON(v)
}

// WriteResults sends a results event with an already-encoded view.
func (c *Conn) WriteResults(view []byte) error {
	return c.WriteTyped(ResultsEvent{Event: EventResults, Data: view})
}

// WriteError sends an error event.
func (c *Conn) WriteError(msg string) error {
	return c.WriteTyped(ErrorResponse{Event: EventError, Error: msg})
}

// ReadJSON reads one message into v, extending the read deadline first.
func (c *Conn) ReadJSON(v any) error {
	_ = c.SetReadDeadline(time.Now().Add(ReadWait))
	return c.Conn.ReadJSON(v)
}
