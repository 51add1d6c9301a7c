package analytics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// HardestQuestionsLimit caps the questions reported in a snapshot
const HardestQuestionsLimit = 5

type questionTally struct {
	text     string
	scoreSum float64
	attempts int
}

// Tracker aggregates interview metrics in memory
type Tracker struct {
	mu sync.RWMutex

	totalSessions int
	states        map[entities.SessionState]int
	handoffs      int
	answers       int
	scoreSum      float64
	durationSum   time.Duration
	sentiments    map[entities.SentimentLabel]int
	questions     map[string]*questionTally
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		states:     make(map[entities.SessionState]int),
		sentiments: make(map[entities.SentimentLabel]int),
		questions:  make(map[string]*questionTally),
	}
}

// SessionStarted counts a new session in its initial state
func (t *Tracker) SessionStarted(state entities.SessionState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalSessions++
	t.states[state]++
}

// AnswerRecorded counts one scored answer
func (t *Tracker) AnswerRecorded(question entities.Question, record entities.AnswerRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.answers++
	t.scoreSum += record.Score
	t.sentiments[record.Sentiment]++

	q, ok := t.questions[question.ID]
	if !ok {
		q = &questionTally{text: question.Text}
		t.questions[question.ID] = q
	}
	q.scoreSum += record.Score
	q.attempts++
}

// Transition moves a session between states. duration is only used when the
// session completes.
func (t *Tracker) Transition(from, to entities.SessionState, duration time.Duration) {
	if from == to {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.states[from] > 0 {
		t.states[from]--
	}
	t.states[to]++
	switch to {
	case entities.SessionStateAwaitingHandoff:
		t.handoffs++
	case entities.SessionStateComplete:
		t.durationSum += duration
	}
}

// Snapshot returns the current metrics
func (t *Tracker) Snapshot() entities.AnalyticsSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	completed := t.states[entities.SessionStateComplete]
	snap := entities.AnalyticsSnapshot{
		TotalSessions:         t.totalSessions,
		ActiveSessions:        t.states[entities.SessionStateInProgress],
		AwaitingHandoff:       t.states[entities.SessionStateAwaitingHandoff],
		CompletedSessions:     completed,
		HandoffsTriggered:     t.handoffs,
		AnswersSubmitted:      t.answers,
		SentimentDistribution: make(map[entities.SentimentLabel]int, 3),
	}
	for _, label := range []entities.SentimentLabel{entities.SentimentPositive, entities.SentimentNeutral, entities.SentimentNegative} {
		snap.SentimentDistribution[label] = t.sentiments[label]
	}
	if t.answers > 0 {
		snap.AverageScore = round(t.scoreSum/float64(t.answers), 2)
	}
	if t.totalSessions > 0 {
		snap.CompletionRate = round(float64(completed)/float64(t.totalSessions)*100, 1)
	}
	if completed > 0 {
		snap.AverageDurationMinute = round(t.durationSum.Minutes()/float64(completed), 1)
	}
	snap.HardestQuestions = t.hardest()
	return snap
}

func (t *Tracker) hardest() []entities.QuestionStat {
	stats := make([]entities.QuestionStat, 0, len(t.questions))
	for id, q := range t.questions {
		stats = append(stats, entities.QuestionStat{
			QuestionID:   id,
			Text:         q.text,
			AverageScore: round(q.scoreSum/float64(q.attempts), 2),
			Attempts:     q.attempts,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AverageScore != stats[j].AverageScore {
			return stats[i].AverageScore < stats[j].AverageScore
		}
		return stats[i].QuestionID < stats[j].QuestionID
	})
	if len(stats) > HardestQuestionsLimit {
		stats = stats[:HardestQuestionsLimit]
	}
	return stats
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
