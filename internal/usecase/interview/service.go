package interview

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Service defines the interface for interview use case
type Service interface {
	// StartSession validates the candidate, loads questions and starts the interview
	StartSession(ctx context.Context, input StartSessionInput) (*entities.SessionSnapshot, error)

	// GetSession returns the current snapshot of a session
	GetSession(ctx context.Context, sessionID uuid.UUID) (*entities.SessionSnapshot, error)

	// SubmitAnswer scores the answer to the current question and advances the session
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (*Outcome, error)

	// ResolveHandoff resumes a session paused for a human
	ResolveHandoff(ctx context.Context, sessionID uuid.UUID) (*Outcome, error)

	// Summary returns the final report of a completed session
	Summary(ctx context.Context, sessionID uuid.UUID) (*entities.Summary, error)

	// Analytics returns aggregate metrics
	Analytics() entities.AnalyticsSnapshot
}

// Broadcaster delivers events to the observers of a room
type Broadcaster interface {
	BroadcastRoom(room string, event entities.Event) int
}

// SummaryCache keeps summaries of completed sessions
type SummaryCache interface {
	SetSummary(ctx context.Context, summary entities.Summary, ttl time.Duration) error
	GetSummary(ctx context.Context, sessionID uuid.UUID) (*entities.Summary, error)
}

// TranscriptArchive stores the transcript of a completed session and returns its location
type TranscriptArchive interface {
	ArchiveTranscript(ctx context.Context, snapshot entities.SessionSnapshot) (string, error)
}

// StartSessionInput represents input for starting an interview
type StartSessionInput struct {
	Candidate entities.CandidateProfile
	// Questions overrides the configured question source when not empty
	Questions []entities.Question
}

// Outcome is the result of a session mutation
type Outcome struct {
	SessionID       uuid.UUID               `json:"session_id"`
	State           entities.SessionState   `json:"state"`
	Cursor          int                     `json:"cursor"`
	Total           int                     `json:"total"`
	Record          *entities.AnswerRecord  `json:"record,omitempty"`
	Handoff         *entities.HandoffTicket `json:"handoff,omitempty"`
	HandoffReason   string                  `json:"handoff_reason,omitempty"`
	AlreadyResolved bool                    `json:"already_resolved,omitempty"`
}

// RoomFor names the observer room of a session
func RoomFor(sessionID uuid.UUID) string {
	return "interview_" + sessionID.String()
}

// AnalyticsRoom receives analytics_update events
const AnalyticsRoom = "analytics"
