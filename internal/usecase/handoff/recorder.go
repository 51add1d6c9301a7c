package handoff

import (
	"context"
	stdErrors "errors"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Recorder receives handoff tickets as they are opened and resolved
type Recorder interface {
	Opened(ctx context.Context, ticket *entities.HandoffTicket, candidate entities.CandidateProfile) error
	Resolved(ctx context.Context, ticket *entities.HandoffTicket) error
}

// PendingLister lists tickets still waiting for a human, oldest first
type PendingLister interface {
	ListPending(ctx context.Context, limit int) ([]entities.PendingHandoff, error)
}

// LogRecorder writes tickets to the structured log
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder creates a recorder backed by the given logger
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

// Opened implements Recorder
func (r *LogRecorder) Opened(_ context.Context, ticket *entities.HandoffTicket, candidate entities.CandidateProfile) error {
	r.logger.Info("handoff.requested",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("session_id", ticket.SessionID.String()),
		zap.String("candidate_name", candidate.Name),
		zap.String("candidate_email", candidate.Email),
		zap.String("reason", ticket.Reason),
		zap.String("question_id", ticket.TriggeringAnswer.QuestionID),
		zap.String("sentiment", string(ticket.TriggeringAnswer.Sentiment)),
	)
	return nil
}

// Resolved implements Recorder
func (r *LogRecorder) Resolved(_ context.Context, ticket *entities.HandoffTicket) error {
	r.logger.Info("handoff.resolved",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("session_id", ticket.SessionID.String()),
	)
	return nil
}

// MultiRecorder fans a ticket out to every recorder and joins their errors
type MultiRecorder []Recorder

// Opened implements Recorder
func (m MultiRecorder) Opened(ctx context.Context, ticket *entities.HandoffTicket, candidate entities.CandidateProfile) error {
	var errs []error
	for _, r := range m {
		if err := r.Opened(ctx, ticket, candidate); err != nil {
			errs = append(errs, err)
		}
	}
	return stdErrors.Join(errs...)
}

// Resolved implements Recorder
func (m MultiRecorder) Resolved(ctx context.Context, ticket *entities.HandoffTicket) error {
	var errs []error
	for _, r := range m {
		if err := r.Resolved(ctx, ticket); err != nil {
			errs = append(errs, err)
		}
	}
	return stdErrors.Join(errs...)
}
