package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// SessionRepository persists interview session snapshots
type SessionRepository interface {
	// Save inserts or replaces the snapshot of a session
	Save(ctx context.Context, snapshot entities.SessionSnapshot) error

	// FindByID finds a session snapshot by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.SessionSnapshot, error)

	// DeleteCompletedBefore removes completed sessions older than the given time
	DeleteCompletedBefore(ctx context.Context, before time.Time) (int64, error)
}
