package transport

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// maxFrameSize bounds a single wire.Request/wire.Reply payload. Brick
// payloads are the largest frames trinity ever sends; this comfortably
// covers the biggest bricks any dataset configuration produces.
const maxFrameSize = 64 << 20

// Channel is one length-prefixed byte-stream connection. Send/Receive are
// safe to call from different goroutines (one reader, one writer), matching
// a session's accept-then-serve loop.
type Channel struct {
	conn net.Conn

	writeMu sync.Mutex
	readMu  sync.Mutex
}

// NewChannel wraps an already-established connection.
func NewChannel(conn net.Conn) *Channel {
	return &Channel{conn: conn}
}

// Dial connects to ep and returns a Channel over the new connection.
func Dial(ep Endpoint, timeout time.Duration) (*Channel, error) {
	conn, err := net.DialTimeout(ep.network(), ep.Address(), timeout)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", ep, err)
	}
	return NewChannel(conn), nil
}

// Send frames payload as a 4-byte big-endian length prefix followed by the
// bytes.
func (c *Channel) Send(payload []byte) error {
	if len(payload) > maxFrameSize {
		return fmt.Errorf("transport: send: frame of %d bytes exceeds limit %d", len(payload), maxFrameSize)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := c.conn.Write(header[:]); err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	if _, err := c.conn.Write(payload); err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	return nil
}

// Receive blocks for one frame, honoring timeout (zero means no deadline).
// io.EOF is returned verbatim so callers can distinguish a clean peer close
// from a network error.
func (c *Channel) Receive(timeout time.Duration) ([]byte, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(timeout))
		defer c.conn.SetReadDeadline(time.Time{})
	}

	var header [4]byte
	if _, err := io.ReadFull(c.conn, header[:]); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("transport: receive: %w", err)
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("transport: receive: frame of %d bytes exceeds limit %d", n, maxFrameSize)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return nil, fmt.Errorf("transport: receive: %w", err)
	}
	return payload, nil
}

// Close closes the underlying connection.
func (c *Channel) Close() error { return c.conn.Close() }

// RemoteAddr reports the peer address, for logging.
func (c *Channel) RemoteAddr() string { return c.conn.RemoteAddr().String() }
