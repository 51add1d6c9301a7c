package entities

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionState represents where an interview is in its lifecycle
type SessionState string

const (
	SessionStateIntake          SessionState = "intake"
	SessionStateInProgress      SessionState = "in_progress"
	SessionStateAwaitingHandoff SessionState = "awaiting_handoff"
	SessionStateComplete        SessionState = "complete"
)

// InterviewSession is one candidate's interview. Every mutating method expects the
// caller to hold the session lock (Lock/TryLock).
//
// Outside of a mutation cursor == len(Transcript), except while a handoff is pending:
// the triggering answer is already recorded but the cursor has not moved past it.
type InterviewSession struct {
	ID          uuid.UUID
	Candidate   CandidateProfile
	Questions   []Question
	Cursor      int
	Transcript  []AnswerRecord
	State       SessionState
	Ticket      *HandoffTicket
	StartedAt   time.Time
	CompletedAt *time.Time

	mu sync.Mutex
}

// NewInterviewSession creates a session in the Intake state
func NewInterviewSession(candidate CandidateProfile, now time.Time) *InterviewSession {
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	return &InterviewSession{
		ID:        uuid.New(),
		Candidate: candidate,
		State:     SessionStateIntake,
		StartedAt: now,
	}
}

// Lock acquires exclusive access to the session
func (s *InterviewSession) Lock() { s.mu.Lock() }

// TryLock acquires exclusive access without blocking
func (s *InterviewSession) TryLock() bool { return s.mu.TryLock() }

// Unlock releases exclusive access
func (s *InterviewSession) Unlock() { s.mu.Unlock() }

// LoadQuestions moves the session from Intake to InProgress. An empty question set
// leaves the session in Intake for good.
func (s *InterviewSession) LoadQuestions(questions []Question) error {
	if s.State != SessionStateIntake {
		return fmt.Errorf("load questions in %s: %w", s.State, ErrInvalidState)
	}
	if len(questions) == 0 {
		return ErrNoQuestionsAvailable
	}

	loaded := make([]Question, len(questions))
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.ID) == "" {
			q.ID = fmt.Sprintf("q-%d", i+1)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%s: %w", q.ID, ErrDuplicateQuestion)
		}
		seen[q.ID] = struct{}{}
		loaded[i] = q
	}

	s.Questions = loaded
	s.Cursor = 0
	s.Transcript = make([]AnswerRecord, 0, len(loaded))
	s.State = SessionStateInProgress
	return nil
}

// CurrentQuestion returns the question at the cursor
func (s *InterviewSession) CurrentQuestion() (Question, error) {
	if s.State != SessionStateInProgress {
		return Question{}, fmt.Errorf("current question in %s: %w", s.State, ErrInvalidState)
	}
	return s.Questions[s.Cursor], nil
}

// RecordAnswer appends a record for the question at the cursor
func (s *InterviewSession) RecordAnswer(record AnswerRecord) error {
	current, err := s.CurrentQuestion()
	if err != nil {
		return err
	}
	if record.QuestionID != current.ID {
		return fmt.Errorf("record for %q while cursor is on %q: %w", record.QuestionID, current.ID, ErrInvalidState)
	}
	if s.hasAnswer(record.QuestionID) {
		return fmt.Errorf("%s: %w", record.QuestionID, ErrAlreadyAnswered)
	}
	s.Transcript = append(s.Transcript, record)
	return nil
}

// Advance moves the cursor past the recorded answer and completes the session
// after the last question.
func (s *InterviewSession) Advance(now time.Time) error {
	if s.State != SessionStateInProgress {
		return fmt.Errorf("advance in %s: %w", s.State, ErrInvalidState)
	}
	if len(s.Transcript) != s.Cursor+1 {
		return fmt.Errorf("advance without recorded answer: %w", ErrInvalidState)
	}
	s.step(now)
	return nil
}

// OpenHandoff pauses the session on the answer just recorded
func (s *InterviewSession) OpenHandoff(ticket *HandoffTicket) error {
	if s.State != SessionStateInProgress {
		return fmt.Errorf("open handoff in %s: %w", s.State, ErrInvalidState)
	}
	if s.Ticket.IsPending() {
		return fmt.Errorf("handoff already pending: %w", ErrInvalidState)
	}
	if len(s.Transcript) != s.Cursor+1 {
		return fmt.Errorf("open handoff without recorded answer: %w", ErrInvalidState)
	}
	s.Ticket = ticket
	s.State = SessionStateAwaitingHandoff
	return nil
}

// ResolveHandoff resumes the session past the triggering answer. Resolving a ticket
// that was already resolved is reported through alreadyResolved and changes nothing.
func (s *InterviewSession) ResolveHandoff(now time.Time) (ticket *HandoffTicket, alreadyResolved bool, err error) {
	if s.State != SessionStateAwaitingHandoff {
		if s.Ticket != nil && !s.Ticket.IsPending() {
			return s.Ticket, true, nil
		}
		return nil, false, fmt.Errorf("resolve handoff in %s: %w", s.State, ErrInvalidState)
	}

	s.Ticket.Resolve(now)
	s.State = SessionStateInProgress
	s.step(now)
	return s.Ticket, false, nil
}

// Summary reports the scores of a completed session
func (s *InterviewSession) Summary() (Summary, error) {
	if s.State != SessionStateComplete {
		return Summary{}, fmt.Errorf("summary in %s: %w", s.State, ErrInvalidState)
	}
	return summarize(s.ID, s.Candidate, s.Transcript, s.StartedAt, *s.CompletedAt), nil
}

// Snapshot returns a copy that is safe to read after the lock is released
func (s *InterviewSession) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		ID:          s.ID,
		Candidate:   s.Candidate,
		State:       s.State,
		Cursor:      s.Cursor,
		Total:       len(s.Questions),
		Questions:   append([]Question(nil), s.Questions...),
		Transcript:  append([]AnswerRecord(nil), s.Transcript...),
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
	}
	if s.State == SessionStateInProgress {
		q := s.Questions[s.Cursor]
		snap.CurrentQuestion = &q
	}
	if s.Ticket != nil {
		t := *s.Ticket
		snap.Ticket = &t
	}
	return snap
}

func (s *InterviewSession) step(now time.Time) {
	s.Cursor++
	if s.Cursor == len(s.Questions) {
		s.State = SessionStateComplete
		s.CompletedAt = &now
	}
}

func summarize(id uuid.UUID, candidate CandidateProfile, transcript []AnswerRecord, startedAt, completedAt time.Time) Summary {
	summary := Summary{
		SessionID:     id,
		CandidateID:   candidate.ID,
		CandidateName: candidate.Name,
		AnswerCount:   len(transcript),
		StartedAt:     startedAt,
		CompletedAt:   completedAt,
		Duration:      completedAt.Sub(startedAt),
	}
	summary.DurationSeconds = summary.Duration.Seconds()
	for _, r := range transcript {
		summary.TotalScore += r.Score
	}
	if summary.AnswerCount > 0 {
		summary.AverageScore = summary.TotalScore / float64(summary.AnswerCount)
	}
	return summary
}

func (s *InterviewSession) hasAnswer(questionID string) bool {
	for _, r := range s.Transcript {
		if r.QuestionID == questionID {
			return true
		}
	}
	return false
}

// SessionSnapshot is an immutable copy of a session
type SessionSnapshot struct {
	ID              uuid.UUID        `json:"id"`
	Candidate       CandidateProfile `json:"candidate"`
	State           SessionState     `json:"state"`
	Cursor          int              `json:"cursor"`
	Total           int              `json:"total"`
	Questions       []Question       `json:"questions"`
	CurrentQuestion *Question        `json:"current_question,omitempty"`
	Transcript      []AnswerRecord   `json:"transcript"`
	Ticket          *HandoffTicket   `json:"handoff,omitempty"`
	StartedAt       time.Time        `json:"started_at"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
}

// Summary reports the scores of a completed snapshot, for sessions no longer held in memory
func (s SessionSnapshot) Summary() (Summary, error) {
	if s.State != SessionStateComplete || s.CompletedAt == nil {
		return Summary{}, fmt.Errorf("summary in %s: %w", s.State, ErrInvalidState)
	}
	return summarize(s.ID, s.Candidate, s.Transcript, s.StartedAt, *s.CompletedAt), nil
}

// Summary is the final report of a completed session. Duration is measured from
// StartedAt to CompletedAt, not to the time of the read, so every read of the
// same session reports the same value.
type Summary struct {
	SessionID     uuid.UUID     `json:"session_id"`
	CandidateID   uuid.UUID     `json:"candidate_id"`
	CandidateName string        `json:"candidate_name"`
	TotalScore    float64       `json:"total_score"`
	AverageScore  float64       `json:"average_score"`
	AnswerCount   int           `json:"answer_count"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   time.Time     `json:"completed_at"`
	Duration      time.Duration `json:"-"`
	// DurationSeconds mirrors Duration on the wire
	DurationSeconds float64 `json:"duration_seconds"`
}
