package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names the payload carried by an Event
type EventType string

const (
	EventTypeInterviewUpdate EventType = "interview_update"
	EventTypeAnalyticsUpdate EventType = "analytics_update"
	EventTypeHeartbeat       EventType = "heartbeat"
)

// Payload is implemented only by the payload types of this package, so consumers
// can switch over them exhaustively.
type Payload interface {
	EventType() EventType
	isPayload()
}

// UpdateType tells observers what caused an InterviewUpdate
type UpdateType string

const (
	UpdateTypeSessionStarted   UpdateType = "session_started"
	UpdateTypeAnswerSubmitted  UpdateType = "answer_submitted"
	UpdateTypeHandoffRequested UpdateType = "handoff_requested"
	UpdateTypeHandoffResolved  UpdateType = "handoff_resolved"
)

// InterviewUpdate reports a session transition
type InterviewUpdate struct {
	SessionID       uuid.UUID      `json:"session_id"`
	UpdateType      UpdateType     `json:"update_type"`
	State           SessionState   `json:"state"`
	Cursor          int            `json:"cursor"`
	Total           int            `json:"total"`
	Record          *AnswerRecord  `json:"record,omitempty"`
	Handoff         *HandoffTicket `json:"handoff,omitempty"`
	AlreadyResolved bool           `json:"already_resolved,omitempty"`
}

// AnalyticsUpdate carries aggregate interview metrics
type AnalyticsUpdate struct {
	Metrics AnalyticsSnapshot `json:"metrics"`
}

// Heartbeat keeps idle observer connections alive
type Heartbeat struct{}

func (InterviewUpdate) EventType() EventType { return EventTypeInterviewUpdate }
func (AnalyticsUpdate) EventType() EventType { return EventTypeAnalyticsUpdate }
func (Heartbeat) EventType() EventType       { return EventTypeHeartbeat }

func (InterviewUpdate) isPayload() {}
func (AnalyticsUpdate) isPayload() {}
func (Heartbeat) isPayload()       {}

// Event is the envelope pushed to observers
type Event struct {
	Type      EventType
	Data      Payload
	Timestamp time.Time
}

// NewEvent wraps a payload in an envelope stamped with now
func NewEvent(data Payload, now time.Time) Event {
	return Event{
		Type:      data.EventType(),
		Data:      data,
		Timestamp: now.UTC(),
	}
}

type wireEvent struct {
	Type      EventType `json:"type"`
	Data      Payload   `json:"data"`
	Timestamp string    `json:"timestamp"`
}

// MarshalJSON encodes the envelope as {type, data, timestamp} with an ISO-8601 timestamp
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEvent{
		Type:      e.Type,
		Data:      e.Data,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
	})
}
