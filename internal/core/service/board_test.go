package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/service"
)

func newBoard() (*service.Registry, *service.Board) {
	registry := service.NewRegistry()
	dispatch := service.NewDispatcher(registry, nil, nopLogger())
	return registry, service.NewBoard(registry, dispatch, nopLogger())
}

func TestBoard_PublishReachesAllSubscribers(t *testing.T) {
	_, board := newBoard()
	project := domain.ProjectID(3)

	a := newFakeConn("a")
	b := newFakeConn("b")
	other := newFakeConn("other")
	board.Subscribe(project, a)
	board.Subscribe(project, b)
	board.Subscribe(4, other)

	board.Publish(project, domain.Event{Type: "card_created", Data: []byte(`{"id":10}`)})

	want := `{"type":"card_created","data":{"id":10}}`
	assert.Equal(t, []string{want}, a.payloads())
	assert.Equal(t, []string{want}, b.payloads())
	assert.Empty(t, other.payloads(), "events stay inside their project room")
}

func TestBoard_DeadSubscriberIsDropped(t *testing.T) {
	registry, board := newBoard()
	project := domain.ProjectID(3)

	dead := newFakeConn("dead")
	live := newFakeConn("live")
	board.Subscribe(project, dead)
	board.Subscribe(project, live)
	dead.setFail(true)

	board.Publish(project, domain.Event{Type: "column_updated"})

	assert.Equal(t, 1, registry.Count(project))
	assert.True(t, dead.isClosed())
	assert.Len(t, live.payloads(), 1)

	// Publishing to a room with no subscribers is a no-op.
	board.Unsubscribe(project, live)
	board.Publish(project, domain.Event{Type: "column_updated"})
	assert.Equal(t, 0, board.Subscribers(project))
}

func TestBoard_UnsubscribeTwice(t *testing.T) {
	registry, board := newBoard()
	project := domain.ProjectID(3)

	a := newFakeConn("a")
	board.Subscribe(project, a)
	board.Unsubscribe(project, a)
	board.Unsubscribe(project, a)

	assert.Equal(t, 0, registry.Count(project))
	assert.True(t, a.isClosed())
}
