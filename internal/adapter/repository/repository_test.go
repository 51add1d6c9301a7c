package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

func TestSessionRecord_RoundTrip(t *testing.T) {
	done := time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC)
	snap := entities.SessionSnapshot{
		ID:        uuid.New(),
		Candidate: entities.CandidateProfile{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"},
		State:     entities.SessionStateComplete,
		Cursor:    2,
		Total:     2,
		Transcript: []entities.AnswerRecord{
			{QuestionID: "q-1", Score: 4.2},
			{QuestionID: "q-2", Score: 0.8},
		},
		StartedAt:   done.Add(-5 * time.Minute),
		CompletedAt: &done,
	}

	rec, err := toSessionRecord(snap)
	if err != nil {
		t.Fatalf("toSessionRecord: %v", err)
	}
	if rec.TotalScore != 5.0 {
		t.Fatalf("expected total score 5.0, got %v", rec.TotalScore)
	}
	if rec.State != "complete" || rec.QuestionCursor != 2 || rec.CandidateEmail != "ada@example.com" {
		t.Fatalf("unexpected record %+v", rec)
	}

	back, err := rec.toSnapshot()
	if err != nil {
		t.Fatalf("toSnapshot: %v", err)
	}
	summary, err := back.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.AverageScore != 2.5 || summary.Duration != 5*time.Minute {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestSessionRecord_CorruptSnapshot(t *testing.T) {
	rec := &sessionRecord{ID: uuid.New(), Snapshot: datatypes.JSON(`{"id":`)}
	if _, err := rec.toSnapshot(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestHandoffRecord_ToPending(t *testing.T) {
	answer := entities.AnswerRecord{QuestionID: "q-2", CandidateText: "I want to talk to a recruiter", Score: 0.8}
	rec := handoffRecord{
		ID:               uuid.New(),
		SessionID:        uuid.New(),
		CandidateName:    "Ada",
		CandidateEmail:   "ada@example.com",
		Reason:           "candidate request",
		Status:           "pending",
		TriggeringAnswer: datatypes.NewJSONType(answer),
		CreatedAt:        time.Now(),
	}

	got := rec.toPending()
	if !got.Ticket.IsPending() || got.Ticket.TriggeringAnswer.CandidateText != answer.CandidateText || got.Ticket.SessionID != rec.SessionID {
		t.Fatalf("unexpected ticket %+v", got.Ticket)
	}
	if got.Candidate.Name != "Ada" || got.Candidate.Email != "ada@example.com" {
		t.Fatalf("unexpected candidate %+v", got.Candidate)
	}
}
