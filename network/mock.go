package network

import (
	"bytes"
	"io"
	"sync"
)

// MockStream is an in-memory server for tests. Reads replay a scripted
// server transcript; writes are captured for inspection.
type MockStream struct {
	mu      sync.Mutex
	script  *bytes.Reader
	chunk   int
	written bytes.Buffer
	closes  int
}

// NewMockStream replays script to the reader. The stream reports EOF once
// the script is exhausted, as if the server hung up.
func NewMockStream(script string) *MockStream {
	return &MockStream{script: bytes.NewReader([]byte(script))}
}

// WithChunk limits every Read to at most n bytes to mimic a stream that
// delivers data in fragments.
func (m *MockStream) WithChunk(n int) *MockStream {
	m.chunk = n
	return m
}

func (m *MockStream) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chunk > 0 && len(p) > m.chunk {
		p = p[:m.chunk]
	}
	return m.script.Read(p)
}

func (m *MockStream) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closes > 0 {
		return 0, io.ErrClosedPipe
	}
	return m.written.Write(p)
}

func (m *MockStream) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// Written returns everything the client sent.
func (m *MockStream) Written() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.written.String()
}

// Closes returns how many times Close reached the stream.
func (m *MockStream) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
