package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	appErrors "github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
	"github.com/johnquangdev/interview-assistant/internal/usecase/handoff"
)

type handoffRecord struct {
	ID               uuid.UUID                                `gorm:"type:uuid;primaryKey"`
	SessionID        uuid.UUID                                `gorm:"type:uuid;not null;index"`
	CandidateName    string                                   `gorm:"not null"`
	CandidateEmail   string                                   `gorm:"not null"`
	Reason           string                                   `gorm:"not null"`
	Status           string                                   `gorm:"not null"`
	TriggeringAnswer datatypes.JSONType[entities.AnswerRecord] `gorm:"type:jsonb;not null"`
	CreatedAt        time.Time                                `gorm:"not null"`
	ResolvedAt       *time.Time
}

func (handoffRecord) TableName() string { return "handoff_tickets" }

func (r *handoffRecord) toPending() entities.PendingHandoff {
	return entities.PendingHandoff{
		Ticket: entities.HandoffTicket{
			ID:               r.ID,
			SessionID:        r.SessionID,
			Reason:           r.Reason,
			TriggeringAnswer: r.TriggeringAnswer.Data(),
			Status:           entities.HandoffStatus(r.Status),
			CreatedAt:        r.CreatedAt,
			ResolvedAt:       r.ResolvedAt,
		},
		Candidate: entities.CandidateProfile{
			Name:  r.CandidateName,
			Email: r.CandidateEmail,
		},
	}
}

// HandoffRepository stores handoff tickets in PostgreSQL. It doubles as a
// handoff.Recorder so tickets are written as the supervisor opens them.
type HandoffRepository struct {
	db *gorm.DB
}

var (
	_ repositories.HandoffRepository = (*HandoffRepository)(nil)
	_ handoff.Recorder               = (*HandoffRepository)(nil)
	_ handoff.PendingLister          = (*HandoffRepository)(nil)
)

// NewHandoffRepository creates a new handoff repository
func NewHandoffRepository(db *gorm.DB) *HandoffRepository {
	return &HandoffRepository{db: db}
}

// Create stores a new ticket
func (r *HandoffRepository) Create(ctx context.Context, ticket *entities.HandoffTicket, candidate entities.CandidateProfile) error {
	rec := &handoffRecord{
		ID:               ticket.ID,
		SessionID:        ticket.SessionID,
		CandidateName:    candidate.Name,
		CandidateEmail:   candidate.Email,
		Reason:           ticket.Reason,
		Status:           string(ticket.Status),
		TriggeringAnswer: datatypes.NewJSONType(ticket.TriggeringAnswer),
		CreatedAt:        ticket.CreatedAt,
		ResolvedAt:       ticket.ResolvedAt,
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create handoff ticket: %w", err)
	}
	return nil
}

// MarkResolved records the resolution of a ticket
func (r *HandoffRepository) MarkResolved(ctx context.Context, ticket *entities.HandoffTicket) error {
	result := r.db.WithContext(ctx).
		Model(&handoffRecord{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"status":      string(entities.HandoffStatusResolved),
			"resolved_at": ticket.ResolvedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to resolve handoff ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("handoff ticket %s not found", ticket.ID)
	}
	return nil
}

// ListPending lists tickets still waiting for a human, oldest first
func (r *HandoffRepository) ListPending(ctx context.Context, limit int) ([]entities.PendingHandoff, error) {
	var recs []handoffRecord
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.HandoffStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, appErrors.ErrDBQueryFailed("list pending handoffs", err)
	}

	pending := make([]entities.PendingHandoff, 0, len(recs))
	for i := range recs {
		pending = append(pending, recs[i].toPending())
	}
	return pending, nil
}

// Opened implements handoff.Recorder
func (r *HandoffRepository) Opened(ctx context.Context, ticket *entities.HandoffTicket, candidate entities.CandidateProfile) error {
	return r.Create(ctx, ticket, candidate)
}

// Resolved implements handoff.Recorder
func (r *HandoffRepository) Resolved(ctx context.Context, ticket *entities.HandoffTicket) error {
	return r.MarkResolved(ctx, ticket)
}
