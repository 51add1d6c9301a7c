package entities

import (
	"time"

	"github.com/google/uuid"
)

// HandoffStatus represents the lifecycle of a handoff ticket
type HandoffStatus string

const (
	HandoffStatusPending  HandoffStatus = "pending"
	HandoffStatusResolved HandoffStatus = "resolved"
)

// HandoffTicket flags a session for human review
type HandoffTicket struct {
	ID               uuid.UUID     `json:"id"`
	SessionID        uuid.UUID     `json:"session_id"`
	Reason           string        `json:"reason"`
	TriggeringAnswer AnswerRecord  `json:"triggering_answer"`
	Status           HandoffStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	ResolvedAt       *time.Time    `json:"resolved_at,omitempty"`
}

// NewHandoffTicket creates a pending ticket
func NewHandoffTicket(sessionID uuid.UUID, reason string, answer AnswerRecord, now time.Time) *HandoffTicket {
	return &HandoffTicket{
		ID:               uuid.New(),
		SessionID:        sessionID,
		Reason:           reason,
		TriggeringAnswer: answer,
		Status:           HandoffStatusPending,
		CreatedAt:        now,
	}
}

// IsPending checks if the ticket still waits for a human
func (t *HandoffTicket) IsPending() bool {
	return t != nil && t.Status == HandoffStatusPending
}

// Resolve marks the ticket as resolved
func (t *HandoffTicket) Resolve(now time.Time) {
	t.Status = HandoffStatusResolved
	t.ResolvedAt = &now
}

// PendingHandoff is a ticket waiting for a reviewer, with the candidate to follow up with
type PendingHandoff struct {
	Ticket    HandoffTicket    `json:"ticket"`
	Candidate CandidateProfile `json:"candidate"`
}
