package analytics

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

func TestTracker_EmptySnapshot(t *testing.T) {
	snap := NewTracker().Snapshot()
	if snap.TotalSessions != 0 || snap.AverageScore != 0 || snap.CompletionRate != 0 {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
	if len(snap.SentimentDistribution) != 3 {
		t.Fatalf("expected all sentiment labels present, got %v", snap.SentimentDistribution)
	}
}

func TestTracker_Lifecycle(t *testing.T) {
	tr := NewTracker()
	q1 := entities.Question{ID: "technical-1", Text: "Explain OOP"}
	q2 := entities.Question{ID: "hr-1", Text: "Why us?"}

	tr.SessionStarted(entities.SessionStateInProgress)
	tr.SessionStarted(entities.SessionStateInProgress)

	tr.AnswerRecorded(q1, entities.AnswerRecord{QuestionID: q1.ID, Score: 4.2, Sentiment: entities.SentimentNeutral})
	tr.AnswerRecorded(q2, entities.AnswerRecord{QuestionID: q2.ID, Score: 1.0, Sentiment: entities.SentimentNegative})
	tr.Transition(entities.SessionStateInProgress, entities.SessionStateAwaitingHandoff, 0)

	snap := tr.Snapshot()
	if snap.ActiveSessions != 1 || snap.AwaitingHandoff != 1 || snap.HandoffsTriggered != 1 {
		t.Fatalf("unexpected counts %+v", snap)
	}

	tr.Transition(entities.SessionStateAwaitingHandoff, entities.SessionStateInProgress, 0)
	tr.Transition(entities.SessionStateInProgress, entities.SessionStateComplete, 3*time.Minute)

	snap = tr.Snapshot()
	if snap.CompletedSessions != 1 || snap.ActiveSessions != 1 || snap.AwaitingHandoff != 0 {
		t.Fatalf("unexpected counts %+v", snap)
	}
	if snap.AverageScore != 2.6 {
		t.Fatalf("expected average 2.6, got %v", snap.AverageScore)
	}
	if snap.CompletionRate != 50 {
		t.Fatalf("expected completion rate 50, got %v", snap.CompletionRate)
	}
	if snap.AverageDurationMinute != 3 {
		t.Fatalf("expected 3 minutes, got %v", snap.AverageDurationMinute)
	}
	if snap.SentimentDistribution[entities.SentimentNegative] != 1 {
		t.Fatalf("unexpected sentiment distribution %v", snap.SentimentDistribution)
	}
	if len(snap.HardestQuestions) != 2 || snap.HardestQuestions[0].QuestionID != "hr-1" {
		t.Fatalf("expected hr-1 to be hardest, got %+v", snap.HardestQuestions)
	}
}

func TestTracker_HardestQuestionsIsCapped(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < HardestQuestionsLimit+3; i++ {
		q := entities.Question{ID: fmt.Sprintf("q-%d", i)}
		tr.AnswerRecorded(q, entities.AnswerRecord{QuestionID: q.ID, Score: float64(i) / 2})
	}
	got := tr.Snapshot().HardestQuestions
	if len(got) != HardestQuestionsLimit {
		t.Fatalf("expected %d questions, got %d", HardestQuestionsLimit, len(got))
	}
	if got[0].QuestionID != "q-0" {
		t.Fatalf("expected q-0 first, got %s", got[0].QuestionID)
	}
}

func TestTracker_ConcurrentUpdates(t *testing.T) {
	tr := NewTracker()
	q := entities.Question{ID: "q"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.SessionStarted(entities.SessionStateInProgress)
			tr.AnswerRecorded(q, entities.AnswerRecord{Score: 5, Sentiment: entities.SentimentPositive})
			_ = tr.Snapshot()
		}()
	}
	wg.Wait()
	snap := tr.Snapshot()
	if snap.TotalSessions != 50 || snap.AnswersSubmitted != 50 || snap.AverageScore != 5 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
