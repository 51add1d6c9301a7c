package interview

import "time"

// QuestionResponse is a question as shown to the candidate
type QuestionResponse struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// AnswerResponse is one scored answer
type AnswerResponse struct {
	QuestionID    string    `json:"question_id"`
	CandidateText string    `json:"candidate_text"`
	Score         float64   `json:"score"`
	Feedback      string    `json:"feedback"`
	Sentiment     string    `json:"sentiment"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// HandoffResponse describes a handoff ticket
type HandoffResponse struct {
	ID         string     `json:"id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// SessionResponse represents an interview session
type SessionResponse struct {
	ID              string            `json:"id"`
	CandidateID     string            `json:"candidate_id"`
	CandidateName   string            `json:"candidate_name"`
	State           string            `json:"state"`
	Cursor          int               `json:"cursor"`
	Total           int               `json:"total"`
	CurrentQuestion *QuestionResponse `json:"current_question,omitempty"`
	Transcript      []AnswerResponse  `json:"transcript"`
	Handoff         *HandoffResponse  `json:"handoff,omitempty"`
	Room            string            `json:"room"`
	StartedAt       time.Time         `json:"started_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

// OutcomeResponse is the result of submitting an answer or resolving a handoff
type OutcomeResponse struct {
	SessionID       string           `json:"session_id"`
	State           string           `json:"state"`
	Cursor          int              `json:"cursor"`
	Total           int              `json:"total"`
	Record          *AnswerResponse  `json:"record,omitempty"`
	Handoff         *HandoffResponse `json:"handoff,omitempty"`
	HandoffReason   string           `json:"handoff_reason,omitempty"`
	AlreadyResolved bool             `json:"already_resolved,omitempty"`
}

// SummaryResponse is the final report of a completed interview
type SummaryResponse struct {
	SessionID       string    `json:"session_id"`
	CandidateID     string    `json:"candidate_id"`
	CandidateName   string    `json:"candidate_name"`
	TotalScore      float64   `json:"total_score"`
	AverageScore    float64   `json:"average_score"`
	AnswerCount     int       `json:"answer_count"`
	StartedAt       time.Time `json:"started_at"`
	CompletedAt     time.Time `json:"completed_at"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// PendingHandoffResponse is a ticket waiting for a reviewer
type PendingHandoffResponse struct {
	SessionID        string          `json:"session_id"`
	CandidateName    string          `json:"candidate_name"`
	CandidateEmail   string          `json:"candidate_email"`
	Handoff          HandoffResponse `json:"handoff"`
	TriggeringAnswer AnswerResponse  `json:"triggering_answer"`
}

// PendingHandoffListResponse lists tickets waiting for a reviewer, oldest first
type PendingHandoffListResponse struct {
	Handoffs []PendingHandoffResponse `json:"handoffs"`
	Count    int                      `json:"count"`
}

// TranscriptResponse is a time-limited download link for an archived transcript
type TranscriptResponse struct {
	SessionID string    `json:"session_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TranscriptListResponse lists sessions with an archived transcript
type TranscriptListResponse struct {
	SessionIDs []string `json:"session_ids"`
	Count      int      `json:"count"`
}
