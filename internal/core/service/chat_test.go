package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzih05/DOMO/internal/adapter/driven/persistence/memory"
	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/service"
)

func TestChat_Post(t *testing.T) {
	repo := memory.NewMessageRepository()
	chat := service.NewChat(repo, 5*time.Millisecond, nopLogger())

	msg, err := chat.Post(context.Background(), 7, 1, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
	assert.Equal(t, domain.UserID(1), msg.UserID)

	_, err = chat.Post(context.Background(), 7, 1, "")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestChat_StreamDeliversNewMessagesOnly(t *testing.T) {
	repo := memory.NewMessageRepository()
	chat := service.NewChat(repo, 5*time.Millisecond, nopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// History from before the stream connects stays invisible.
	_, err := chat.Post(ctx, 7, 1, "old news")
	require.NoError(t, err)

	var mu sync.Mutex
	var got []domain.ChatMessage
	done := make(chan error, 1)
	go func() {
		done <- chat.Stream(ctx, 7, func(msg domain.ChatMessage) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, msg)
			return nil
		})
	}()

	// Give the stream a moment to take its cursor.
	time.Sleep(20 * time.Millisecond)

	_, err = chat.Post(ctx, 7, 2, "first")
	require.NoError(t, err)
	_, err = chat.Post(ctx, 9, 2, "other project")
	require.NoError(t, err)
	_, err = chat.Post(ctx, 7, 3, "second")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.Less(t, got[0].ID, got[1].ID)
	mu.Unlock()

	cancel()
	assert.NoError(t, <-done)
}

func TestChat_StreamStopsWhenSendFails(t *testing.T) {
	repo := memory.NewMessageRepository()
	chat := service.NewChat(repo, 5*time.Millisecond, nopLogger())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- chat.Stream(ctx, 7, func(domain.ChatMessage) error {
			return assert.AnError
		})
	}()

	time.Sleep(20 * time.Millisecond)
	_, err := chat.Post(ctx, 7, 1, "hi")
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, assert.AnError)
	case <-time.After(time.Second):
		t.Fatal("stream did not stop after send failure")
	}
}
