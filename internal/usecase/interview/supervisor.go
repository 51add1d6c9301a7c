package interview

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
	"github.com/johnquangdev/interview-assistant/internal/usecase/analytics"
	"github.com/johnquangdev/interview-assistant/internal/usecase/handoff"
	"github.com/johnquangdev/interview-assistant/pkg/config"
	"github.com/johnquangdev/interview-assistant/pkg/nlp"
)

const sideEffectTimeout = 10 * time.Second

// Dependencies wires a Supervisor. Cache, Archive and Sessions are optional.
type Dependencies struct {
	Store       *Store
	Questions   QuestionSource
	Scorer      nlp.Scorer
	Sentiment   nlp.SentimentAnalyzer
	Policy      *handoff.Policy
	Recorder    handoff.Recorder
	Broadcaster Broadcaster
	Tracker     *analytics.Tracker
	Validator   interface{ Validate(i interface{}) error }

	Cache    SummaryCache
	Archive  TranscriptArchive
	Sessions repositories.SessionRepository

	Config config.InterviewConfig
	Logger *zap.Logger
	Now    func() time.Time
}

// Supervisor drives interview sessions. Each mutation runs under the session's
// own lock; different sessions proceed in parallel.
type Supervisor struct {
	deps Dependencies
	now  func() time.Time
}

var (
	_ Service               = (*Supervisor)(nil)
	_ handoff.PendingLister = (*Supervisor)(nil)
)

// NewSupervisor creates a new interview supervisor
func NewSupervisor(deps Dependencies) *Supervisor {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	if deps.Policy == nil {
		deps.Policy = handoff.NewPolicy(nil)
	}
	if deps.Recorder == nil {
		deps.Recorder = handoff.NewLogRecorder(deps.Logger)
	}
	if deps.Tracker == nil {
		deps.Tracker = analytics.NewTracker()
	}
	return &Supervisor{deps: deps, now: now}
}

// StartSession creates a session and moves it to InProgress. A session without
// questions is never stored.
func (s *Supervisor) StartSession(ctx context.Context, input StartSessionInput) (*entities.SessionSnapshot, error) {
	candidate := input.Candidate
	candidate.Name = strings.TrimSpace(candidate.Name)
	candidate.Email = strings.TrimSpace(candidate.Email)
	if s.deps.Validator != nil {
		if err := s.deps.Validator.Validate(candidate); err != nil {
			return nil, fmt.Errorf("%w: %w", entities.ErrInvalidCandidate, err)
		}
	}

	questions := input.Questions
	if len(questions) == 0 {
		loaded, err := s.deps.Questions.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load questions: %w", err)
		}
		questions = loaded
	}

	session := entities.NewInterviewSession(candidate, s.now())
	session.Lock()
	if err := session.LoadQuestions(questions); err != nil {
		session.Unlock()
		return nil, err
	}
	s.deps.Store.Put(session)
	s.deps.Tracker.SessionStarted(session.State)
	s.publish(session, entities.UpdateTypeSessionStarted, nil, nil, false)
	snap := session.Snapshot()
	session.Unlock()

	s.deps.Logger.Info("interview.session.started",
		zap.String("session_id", snap.ID.String()),
		zap.String("candidate_id", snap.Candidate.ID.String()),
		zap.Int("questions", snap.Total),
	)
	s.persist(ctx, snap)
	return &snap, nil
}

// GetSession returns the live session or, once evicted, its persisted snapshot
func (s *Supervisor) GetSession(ctx context.Context, sessionID uuid.UUID) (*entities.SessionSnapshot, error) {
	if session, ok := s.deps.Store.Get(sessionID); ok {
		session.Lock()
		snap := session.Snapshot()
		session.Unlock()
		return &snap, nil
	}
	if s.deps.Sessions != nil {
		snap, err := s.deps.Sessions.FindByID(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			return snap, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", sessionID, entities.ErrSessionNotFound)
}

// SubmitAnswer scores the answer to the current question, records it and then
// either advances the session or pauses it for a human.
func (s *Supervisor) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (*Outcome, error) {
	session, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	outcome, ticket, completed, err := s.submitLocked(ctx, session, answer)
	candidate := session.Candidate
	session.Unlock()
	if err != nil {
		return nil, err
	}

	if ticket != nil {
		recordCtx, cancel := s.sideEffectContext(ctx)
		if err := s.deps.Recorder.Opened(recordCtx, ticket, candidate); err != nil {
			s.deps.Logger.Warn("handoff.record.failed", zap.String("session_id", sessionID.String()), zap.Error(err))
		}
		cancel()
	}
	s.afterMutation(ctx, completed)
	return outcome, nil
}

func (s *Supervisor) submitLocked(ctx context.Context, session *entities.InterviewSession, answer string) (*Outcome, *entities.HandoffTicket, *entities.SessionSnapshot, error) {
	question, err := session.CurrentQuestion()
	if err != nil {
		return nil, nil, nil, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, nil, nil, entities.ErrEmptyAnswer
	}

	score, feedback, err := nlp.ScoreAnswer(ctx, s.deps.Scorer, answer, question.ReferenceAnswer)
	if err != nil {
		return nil, nil, nil, err
	}
	sentiment := nlp.AnalyzeSentiment(s.deps.Sentiment, answer)

	now := s.now()
	record := entities.AnswerRecord{
		QuestionID:    question.ID,
		CandidateText: answer,
		Score:         score,
		Feedback:      feedback,
		Sentiment:     sentiment.Label,
		SubmittedAt:   now,
	}
	if err := session.RecordAnswer(record); err != nil {
		return nil, nil, nil, err
	}
	s.deps.Tracker.AnswerRecorded(question, record)

	from := session.State
	var ticket *entities.HandoffTicket
	reason, fired := s.deps.Policy.Evaluate(answer, sentiment.Label)
	if fired {
		ticket = entities.NewHandoffTicket(session.ID, reason, record, now)
		if err := session.OpenHandoff(ticket); err != nil {
			return nil, nil, nil, err
		}
	} else if err := session.Advance(now); err != nil {
		return nil, nil, nil, err
	}
	s.deps.Tracker.Transition(from, session.State, s.durationOf(session))

	update := entities.UpdateTypeAnswerSubmitted
	if fired {
		update = entities.UpdateTypeHandoffRequested
	}
	s.publish(session, update, &record, ticket, false)

	s.deps.Logger.Info("interview.answer.submitted",
		zap.String("session_id", session.ID.String()),
		zap.String("question_id", question.ID),
		zap.Float64("score", score),
		zap.String("sentiment", string(sentiment.Label)),
		zap.String("state", string(session.State)),
		zap.Bool("handoff", fired),
	)

	outcome := s.outcome(session, &record, ticket, false)
	outcome.HandoffReason = reason
	return outcome, ticket, s.completedSnapshot(session), nil
}

// ResolveHandoff resumes a paused session past the triggering answer. Resolving
// a ticket that is already resolved is reported through AlreadyResolved.
func (s *Supervisor) ResolveHandoff(ctx context.Context, sessionID uuid.UUID) (*Outcome, error) {
	session, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}

	from := session.State
	ticket, already, err := session.ResolveHandoff(s.now())
	if err != nil {
		session.Unlock()
		return nil, err
	}
	if already {
		outcome := s.outcome(session, nil, ticket, true)
		session.Unlock()
		s.deps.Logger.Info("handoff.already_resolved", zap.String("session_id", sessionID.String()))
		return outcome, nil
	}

	s.deps.Tracker.Transition(from, session.State, s.durationOf(session))
	s.publish(session, entities.UpdateTypeHandoffResolved, nil, ticket, false)
	outcome := s.outcome(session, nil, ticket, false)
	completed := s.completedSnapshot(session)
	resolved := *ticket
	session.Unlock()

	s.deps.Logger.Info("handoff.resolved",
		zap.String("session_id", sessionID.String()),
		zap.String("state", string(outcome.State)),
		zap.Int("cursor", outcome.Cursor),
	)
	recordCtx, cancel := s.sideEffectContext(ctx)
	if err := s.deps.Recorder.Resolved(recordCtx, &resolved); err != nil {
		s.deps.Logger.Warn("handoff.record.failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}
	cancel()
	s.afterMutation(ctx, completed)
	return outcome, nil
}

// Summary returns the report of a completed session
func (s *Supervisor) Summary(ctx context.Context, sessionID uuid.UUID) (*entities.Summary, error) {
	if s.deps.Cache != nil {
		cached, err := s.deps.Cache.GetSummary(ctx, sessionID)
		if err != nil {
			s.deps.Logger.Warn("interview.summary.cache_failed", zap.String("session_id", sessionID.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	if session, ok := s.deps.Store.Get(sessionID); ok {
		session.Lock()
		summary, err := session.Summary()
		session.Unlock()
		if err != nil {
			return nil, err
		}
		return &summary, nil
	}

	snap, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary, err := snap.Summary()
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Analytics returns aggregate metrics
func (s *Supervisor) Analytics() entities.AnalyticsSnapshot {
	return s.deps.Tracker.Snapshot()
}

// ListPending lists the open tickets of sessions held in memory, oldest first
func (s *Supervisor) ListPending(_ context.Context, limit int) ([]entities.PendingHandoff, error) {
	var pending []entities.PendingHandoff
	for _, session := range s.deps.Store.All() {
		session.Lock()
		if session.State == entities.SessionStateAwaitingHandoff && session.Ticket.IsPending() {
			pending = append(pending, entities.PendingHandoff{Ticket: *session.Ticket, Candidate: session.Candidate})
		}
		session.Unlock()
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Ticket.CreatedAt.Before(pending[j].Ticket.CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// RunJanitor runs a cleanup pass every interval until ctx is cancelled. Completed
// sessions leave memory after Config.Retention and, when sessions are persisted,
// the database after Config.PersistRetention. A zero retention disables that part.
func (s *Supervisor) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Supervisor) sweep(ctx context.Context) {
	now := s.now()
	if retention := s.deps.Config.Retention; retention > 0 {
		if n := s.deps.Store.EvictCompleted(now.Add(-retention)); n > 0 {
			s.deps.Logger.Info("interview.sessions.evicted", zap.Int("count", n), zap.Int("remaining", s.deps.Store.Count()))
		}
	}

	retention := s.deps.Config.PersistRetention
	if s.deps.Sessions == nil || retention <= 0 {
		return
	}
	purgeCtx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	n, err := s.deps.Sessions.DeleteCompletedBefore(purgeCtx, now.Add(-retention))
	if err != nil {
		s.deps.Logger.Warn("interview.sessions.purge_failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.deps.Logger.Info("interview.sessions.purged", zap.Int64("count", n))
	}
}

// acquire returns the session locked according to the configured lock mode
func (s *Supervisor) acquire(sessionID uuid.UUID) (*entities.InterviewSession, error) {
	session, ok := s.deps.Store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", sessionID, entities.ErrSessionNotFound)
	}
	if s.deps.Config.LockMode == config.LockModeFail {
		if !session.TryLock() {
			return nil, fmt.Errorf("%s: %w", sessionID, entities.ErrSessionBusy)
		}
		return session, nil
	}
	session.Lock()
	return session, nil
}

// publish broadcasts under the session lock so a room sees one session's
// updates in mutation order
func (s *Supervisor) publish(session *entities.InterviewSession, update entities.UpdateType, record *entities.AnswerRecord, ticket *entities.HandoffTicket, already bool) {
	if s.deps.Broadcaster == nil {
		return
	}
	payload := entities.InterviewUpdate{
		SessionID:       session.ID,
		UpdateType:      update,
		State:           session.State,
		Cursor:          session.Cursor,
		Total:           len(session.Questions),
		Record:          record,
		AlreadyResolved: already,
	}
	if ticket != nil {
		t := *ticket
		payload.Handoff = &t
	}
	now := s.now()
	s.deps.Broadcaster.BroadcastRoom(RoomFor(session.ID), entities.NewEvent(payload, now))
	s.deps.Broadcaster.BroadcastRoom(AnalyticsRoom, entities.NewEvent(entities.AnalyticsUpdate{Metrics: s.deps.Tracker.Snapshot()}, now))
}

func (s *Supervisor) outcome(session *entities.InterviewSession, record *entities.AnswerRecord, ticket *entities.HandoffTicket, already bool) *Outcome {
	out := &Outcome{
		SessionID:       session.ID,
		State:           session.State,
		Cursor:          session.Cursor,
		Total:           len(session.Questions),
		Record:          record,
		AlreadyResolved: already,
	}
	if ticket != nil {
		t := *ticket
		out.Handoff = &t
		out.HandoffReason = t.Reason
	}
	return out
}

func (s *Supervisor) completedSnapshot(session *entities.InterviewSession) *entities.SessionSnapshot {
	if session.State != entities.SessionStateComplete {
		return nil
	}
	snap := session.Snapshot()
	return &snap
}

func (s *Supervisor) durationOf(session *entities.InterviewSession) time.Duration {
	if session.CompletedAt == nil {
		return 0
	}
	return session.CompletedAt.Sub(session.StartedAt)
}

// sideEffectContext keeps request values, survives the request being cancelled
// and gives up after sideEffectTimeout
func (s *Supervisor) sideEffectContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
}

// afterMutation runs best-effort side effects outside the session lock
func (s *Supervisor) afterMutation(ctx context.Context, completed *entities.SessionSnapshot) {
	if completed == nil {
		return
	}
	ctx, cancel := s.sideEffectContext(ctx)
	defer cancel()

	log := s.deps.Logger.With(zap.String("session_id", completed.ID.String()))
	summary, err := completed.Summary()
	if err != nil {
		log.Error("interview.summary.failed", zap.Error(err))
		return
	}
	log.Info("interview.session.completed",
		zap.Float64("total_score", summary.TotalScore),
		zap.Float64("average_score", summary.AverageScore),
		zap.Duration("duration", summary.Duration),
	)

	if s.deps.Cache != nil {
		if err := s.deps.Cache.SetSummary(ctx, summary, s.deps.Config.SummaryTTL); err != nil {
			log.Warn("interview.summary.cache_failed", zap.Error(err))
		}
	}
	if s.deps.Archive != nil {
		location, err := s.deps.Archive.ArchiveTranscript(ctx, *completed)
		if err != nil {
			log.Warn("interview.transcript.archive_failed", zap.Error(err))
		} else {
			log.Info("interview.transcript.archived", zap.String("location", location))
		}
	}
	s.persist(ctx, *completed)
}

func (s *Supervisor) persist(ctx context.Context, snap entities.SessionSnapshot) {
	if s.deps.Sessions == nil {
		return
	}
	if err := s.deps.Sessions.Save(ctx, snap); err != nil {
		s.deps.Logger.Warn("interview.session.persist_failed",
			zap.String("session_id", snap.ID.String()),
			zap.Error(err),
		)
	}
}
