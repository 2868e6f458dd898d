package service

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/uzih05/DOMO/internal/core/domain"
	"github.com/uzih05/DOMO/internal/core/port"
)

const defaultPresencePoll = 5 * time.Second

// Presence streams the set of online workspace members. Liveness comes from
// the presence store; a viewer of the stream counts as online itself and is
// refreshed on every poll tick.
type Presence struct {
	store port.PresenceStore
	poll  time.Duration
	log   zerolog.Logger
}

// NewPresence builds the presence service. poll <= 0 selects the default
// interval of five seconds.
func NewPresence(store port.PresenceStore, poll time.Duration, log zerolog.Logger) *Presence {
	if poll <= 0 {
		poll = defaultPresencePoll
	}
	return &Presence{
		store: store,
		poll:  poll,
		log:   log,
	}
}

// Touch refreshes a member's liveness.
func (p *Presence) Touch(ctx context.Context, workspace domain.WorkspaceID, user domain.UserID) error {
	return p.store.Touch(ctx, workspace, user)
}

// StreamOnline emits the online-member snapshot through send: once on
// connect, then whenever it changes, until the context ends or send fails.
func (p *Presence) StreamOnline(ctx context.Context, workspace domain.WorkspaceID, viewer domain.UserID, send func([]domain.UserID) error) error {
	emit := func(prev []domain.UserID, first bool) ([]domain.UserID, error) {
		if err := p.store.Touch(ctx, workspace, viewer); err != nil {
			return prev, err
		}
		online, err := p.store.Online(ctx, workspace)
		if err != nil {
			return prev, err
		}
		slices.Sort(online)
		if !first && slices.Equal(online, prev) {
			return prev, nil
		}
		if err := send(online); err != nil {
			return prev, err
		}
		return online, nil
	}

	prev, err := emit(nil, true)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if prev, err = emit(prev, false); err != nil {
				return err
			}
		}
	}
}
