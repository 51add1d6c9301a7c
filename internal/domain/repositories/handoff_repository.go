package repositories

import (
	"context"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// HandoffRepository persists handoff tickets
type HandoffRepository interface {
	// Create stores a new ticket
	Create(ctx context.Context, ticket *entities.HandoffTicket, candidate entities.CandidateProfile) error

	// MarkResolved records the resolution of a ticket
	MarkResolved(ctx context.Context, ticket *entities.HandoffTicket) error

	// ListPending lists tickets still waiting for a human, oldest first
	ListPending(ctx context.Context, limit int) ([]entities.PendingHandoff, error)
}
