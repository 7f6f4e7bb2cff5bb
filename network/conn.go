// Package network carries the tic-tac-toe wire codec over a TCP stream.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/drake/tictac/protocol"
)

// DialTimeout bounds connection setup. Protocol reads never time out.
const DialTimeout = 10 * time.Second

// Stats holds connection statistics for diagnostics.
type Stats struct {
	BytesRead    uint64
	BytesWritten uint64
	TagsRead     uint64
	DigitsRead   uint64
	DigitsSent   uint64
	LastReadTime time.Time
}

// Conn is the client's end of a game session. It speaks the wire codec
// directly on the stream: no bytes are buffered between calls.
type Conn struct {
	rwc    io.ReadWriteCloser
	logger *zap.Logger

	closeOnce sync.Once
	closeErr  error

	bytesRead    atomic.Uint64
	bytesWritten atomic.Uint64
	tagsRead     atomic.Uint64
	digitsRead   atomic.Uint64
	digitsSent   atomic.Uint64
	lastReadTime atomic.Int64 // Unix nano
}

// NewConn wraps an established stream. A nil logger discards diagnostics.
func NewConn(rwc io.ReadWriteCloser, logger *zap.Logger) *Conn {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Conn{rwc: rwc, logger: logger}
}

// Dial connects to a game server at address (host:port).
func Dial(ctx context.Context, address string, logger *zap.Logger) (*Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, DialTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, &ConnectionSetupError{Address: address, Err: err}
	}

	// Keepalive lets a vanished peer surface as a read error.
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
		tcpConn.SetKeepAlivePeriod(30 * time.Second)
	}

	c := NewConn(conn, logger)
	c.logger.Debug("connected to server", zap.String("address", address))
	return c, nil
}

// ReadTag reads one three byte tag.
// Bytes outside the tag set yield a *protocol.UnknownMessageError.
func (c *Conn) ReadTag() (protocol.Tag, error) {
	var buf [protocol.TagSize]byte
	if err := c.readFull("read tag", buf[:]); err != nil {
		return 0, err
	}
	c.tagsRead.Add(1)

	tag, err := protocol.ParseTag(buf[:])
	if err != nil {
		c.logger.Debug("received unknown message", zap.ByteString("raw", buf[:]))
		return 0, err
	}
	c.logger.Debug("received message", zap.Stringer("tag", tag))
	return tag, nil
}

// ReadDigit reads one ASCII digit. The value is not range checked.
func (c *Conn) ReadDigit() (int, error) {
	var buf [1]byte
	if err := c.readFull("read int", buf[:]); err != nil {
		return 0, err
	}
	c.digitsRead.Add(1)

	v := protocol.DecodeDigit(buf[0])
	c.logger.Debug("received int", zap.Int("value", v))
	return v, nil
}

// WriteDigit sends v (0-9) as one ASCII digit.
func (c *Conn) WriteDigit(v int) error {
	b, err := protocol.EncodeDigit(v)
	if err != nil {
		return &ProtocolIOError{Op: "write int", Err: err}
	}

	n, err := c.rwc.Write([]byte{b})
	c.bytesWritten.Add(uint64(n))
	if err == nil && n != 1 {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &ProtocolIOError{Op: "write int", Err: err}
	}
	c.digitsSent.Add(1)

	c.logger.Debug("wrote int to server", zap.Int("value", v))
	return nil
}

// readFull fills buf or fails. A stream that ends part way through a unit
// is an error; partial data is never handed to the caller.
func (c *Conn) readFull(op string, buf []byte) error {
	n, err := io.ReadFull(c.rwc, buf)
	c.bytesRead.Add(uint64(n))
	if n > 0 {
		c.lastReadTime.Store(time.Now().UnixNano())
	}
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("short read: got %d of %d bytes: %w", n, len(buf), err)
		}
		return &ProtocolIOError{Op: op, Err: err}
	}
	return nil
}

// Close closes the stream. Only the first call reaches the stream; later
// calls return the same result.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.rwc.Close()
		c.logger.Debug("connection closed")
	})
	return c.closeErr
}

// Stats returns current connection statistics.
func (c *Conn) Stats() Stats {
	var lastRead time.Time
	if ns := c.lastReadTime.Load(); ns != 0 {
		lastRead = time.Unix(0, ns)
	}
	return Stats{
		BytesRead:    c.bytesRead.Load(),
		BytesWritten: c.bytesWritten.Load(),
		TagsRead:     c.tagsRead.Load(),
		DigitsRead:   c.digitsRead.Load(),
		DigitsSent:   c.digitsSent.Load(),
		LastReadTime: lastRead,
	}
}
