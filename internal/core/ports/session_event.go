package ports

import (
	"context"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

// SessionEventRepository persists the session audit trail.
type SessionEventRepository interface {
	InsertEvent(ctx context.Context, change domain.SessionChange) error
}
