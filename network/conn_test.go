package network

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/tictac/protocol"
)

func TestDigitRoundTripOverLoopback(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	client := NewConn(clientSide, nil)
	server := NewConn(serverSide, nil)
	defer client.Close()
	defer server.Close()

	errc := make(chan error, 1)
	go func() {
		for v := 0; v <= 9; v++ {
			if err := client.WriteDigit(v); err != nil {
				errc <- err
				return
			}
		}
		errc <- nil
	}()

	for v := 0; v <= 9; v++ {
		got, err := server.ReadDigit()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	require.NoError(t, <-errc)
}

func TestReadTag(t *testing.T) {
	c := NewConn(NewMockStream("HLDSRTWIN"), nil)
	for _, want := range []protocol.Tag{protocol.TagHold, protocol.TagStart, protocol.TagWin} {
		tag, err := c.ReadTag()
		require.NoError(t, err)
		assert.Equal(t, want, tag)
	}
}

// A tag split across several reads is reassembled.
func TestReadTagFragmented(t *testing.T) {
	c := NewConn(NewMockStream("UPD14").WithChunk(1), nil)

	tag, err := c.ReadTag()
	require.NoError(t, err)
	assert.Equal(t, protocol.TagUpdate, tag)

	id, err := c.ReadDigit()
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	pos, err := c.ReadDigit()
	require.NoError(t, err)
	assert.Equal(t, 4, pos)
}

func TestReadTagShortRead(t *testing.T) {
	for _, script := range []string{"", "H", "HL"} {
		c := NewConn(NewMockStream(script), nil)
		_, err := c.ReadTag()

		var ioErr *ProtocolIOError
		require.True(t, errors.As(err, &ioErr), "script %q: got %v", script, err)
		assert.Equal(t, "read tag", ioErr.Op)
		if script == "" {
			assert.ErrorIs(t, err, io.EOF)
		} else {
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		}
	}
}

func TestReadTagUnknown(t *testing.T) {
	c := NewConn(NewMockStream("ABC"), nil)
	_, err := c.ReadTag()

	var unknown *protocol.UnknownMessageError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ABC", unknown.Raw)
}

func TestReadDigitShortRead(t *testing.T) {
	c := NewConn(NewMockStream(""), nil)
	_, err := c.ReadDigit()

	var ioErr *ProtocolIOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read int", ioErr.Op)
}

func TestReadDigitIsNotRangeChecked(t *testing.T) {
	c := NewConn(NewMockStream("Z"), nil)
	v, err := c.ReadDigit()
	require.NoError(t, err)
	assert.Equal(t, int('Z'-'0'), v)
}

func TestWriteDigit(t *testing.T) {
	stream := NewMockStream("")
	c := NewConn(stream, nil)

	require.NoError(t, c.WriteDigit(4))
	require.NoError(t, c.WriteDigit(9))
	assert.Equal(t, "49", stream.Written())

	var ioErr *ProtocolIOError
	assert.True(t, errors.As(c.WriteDigit(10), &ioErr))
	assert.True(t, errors.As(c.WriteDigit(-1), &ioErr))
	assert.Equal(t, "49", stream.Written())
}

func TestWriteDigitAfterClose(t *testing.T) {
	stream := NewMockStream("")
	c := NewConn(stream, nil)
	require.NoError(t, c.Close())

	err := c.WriteDigit(3)
	var ioErr *ProtocolIOError
	require.True(t, errors.As(err, &ioErr))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestCloseOnce(t *testing.T) {
	stream := NewMockStream("")
	c := NewConn(stream, nil)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, stream.Closes())
}

func TestStats(t *testing.T) {
	c := NewConn(NewMockStream("CNT2"), nil)
	assert.True(t, c.Stats().LastReadTime.IsZero())

	_, err := c.ReadTag()
	require.NoError(t, err)
	_, err = c.ReadDigit()
	require.NoError(t, err)
	require.NoError(t, c.WriteDigit(9))

	s := c.Stats()
	assert.Equal(t, uint64(4), s.BytesRead)
	assert.Equal(t, uint64(1), s.BytesWritten)
	assert.Equal(t, uint64(1), s.TagsRead)
	assert.Equal(t, uint64(1), s.DigitsRead)
	assert.Equal(t, uint64(1), s.DigitsSent)
	assert.False(t, s.LastReadTime.IsZero())
}

func TestDial(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		conn.Write([]byte("1"))
		accepted <- conn
	}()

	c, err := Dial(context.Background(), ln.Addr().String(), nil)
	require.NoError(t, err)
	defer c.Close()

	id, err := c.ReadDigit()
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	if conn, ok := <-accepted; ok {
		conn.Close()
	}
}

func TestDialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = Dial(context.Background(), addr, nil)
	var setupErr *ConnectionSetupError
	require.True(t, errors.As(err, &setupErr))
	assert.Equal(t, addr, setupErr.Address)
	assert.False(t, setupErr.NoSuchHost())
}
