package port

import (
	"context"
	"errors"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// ErrNoSession is returned when a token resolves to no active session.
var ErrNoSession = errors.New("no active session")

// SessionStore resolves a session token to the authenticated user. A
// rejection here prevents room registration on every real-time channel.
type SessionStore interface {
	Resolve(ctx context.Context, token string) (domain.UserID, error)
}
