package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu     sync.Mutex
	got    []client.Event
	fail   bool
	closed bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.got = append(c.got, v.(client.Event))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) events() []client.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]client.Event(nil), c.got...)
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func TestHubDeliversToOrganization(t *testing.T) {
	h := runHub(t)
	orgA, orgB := uuid.New(), uuid.New()
	a, b, invoicesOnly := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Register(&Subscriber{OrgID: orgA, Conn: a})
	h.Register(&Subscriber{OrgID: orgB, Conn: b})
	h.Register(&Subscriber{OrgID: orgA, Models: map[string]bool{"Invoice": true}, Conn: invoicesOnly})

	emit := h.Listener()
	emit(context.Background(), client.Event{Model: "Student", Action: client.ActionCreate, OrgID: &orgA, Count: 1})
	emit(context.Background(), client.Event{Model: "Invoice", Action: client.ActionUpdate, OrgID: &orgA, Count: 1})
	emit(context.Background(), client.Event{Model: "Room", Action: client.ActionDelete, Count: 1})

	assert.Eventually(t, func() bool { return len(a.events()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return len(invoicesOnly.events()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Invoice", invoicesOnly.events()[0].Model)
	assert.Empty(t, b.events())
}

func TestHubDropsBrokenSubscriber(t *testing.T) {
	h := runHub(t)
	org := uuid.New()
	broken := &fakeConn{fail: true}
	s := &Subscriber{OrgID: org, Conn: broken}
	h.Register(s)
	assert.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 5*time.Millisecond)

	h.Listener()(context.Background(), client.Event{Model: "Teacher", Action: client.ActionCreate, OrgID: &org})
	assert.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 5*time.Millisecond)
	broken.mu.Lock()
	assert.True(t, broken.closed)
	broken.mu.Unlock()
}

func TestHubUnregister(t *testing.T) {
	h := runHub(t)
	s := &Subscriber{OrgID: uuid.New(), Conn: &fakeConn{}}
	h.Register(s)
	h.Unregister(s)
	assert.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubStopped(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	kept := &fakeConn{}
	h.Register(&Subscriber{OrgID: uuid.New(), Conn: kept})
	cancel()
	<-stopped

	late := &fakeConn{}
	s := &Subscriber{OrgID: uuid.New(), Conn: late}
	returned := make(chan struct{})
	go func() {
		h.Register(s)
		h.Unregister(s)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Register blocked after Run returned")
	}
	assert.Zero(t, h.Len())
	late.mu.Lock()
	assert.True(t, late.closed)
	late.mu.Unlock()
	kept.mu.Lock()
	assert.True(t, kept.closed)
	kept.mu.Unlock()
}

func TestParseModels(t *testing.T) {
	assert.Nil(t, parseModels(""))
	assert.Equal(t, map[string]bool{"Invoice": true, "Student": true}, parseModels("Invoice, Student,,"))
}
