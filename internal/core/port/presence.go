package port

import (
	"context"

	"github.com/uzih05/DOMO/internal/core/domain"
)

// PresenceStore tracks which workspace members are currently online. Touch
// refreshes a member's liveness; entries expire on their own after the
// store's TTL.
type PresenceStore interface {
	Touch(ctx context.Context, workspace domain.WorkspaceID, user domain.UserID) error
	Online(ctx context.Context, workspace domain.WorkspaceID) ([]domain.UserID, error)
}
