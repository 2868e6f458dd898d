package service_test

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/uzih05/DOMO/internal/core/service"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

// fakeConn records everything sent to it. Setting fail makes every Send
// report a broken pipe, which is how the dispatcher's eviction paths are
// exercised.
type fakeConn struct {
	id string

	mu     sync.Mutex
	sent   [][]byte
	fail   bool
	closed bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	c.sent = append(c.sent, cp)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) setFail(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = fail
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) payloads() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	for i, p := range c.sent {
		out[i] = string(p)
	}
	return out
}

// newVoiceStack wires a fresh voice universe for one test.
func newVoiceStack() (*service.Registry, *service.ParticipantIndex, *service.Dispatcher, *service.Voice) {
	registry := service.NewRegistry()
	index := service.NewParticipantIndex()
	dispatch := service.NewDispatcher(registry, index, nopLogger())
	voice := service.NewVoice(registry, index, dispatch, nopLogger())
	return registry, index, dispatch, voice
}
