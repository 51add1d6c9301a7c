package entities

import "time"

// SentimentLabel is the polarity assigned to a candidate answer
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// AnswerRecord is one scored answer. Records are appended to a transcript and never modified.
type AnswerRecord struct {
	QuestionID    string         `json:"question_id"`
	CandidateText string         `json:"candidate_text"`
	Score         float64        `json:"score"`
	Feedback      string         `json:"feedback"`
	Sentiment     SentimentLabel `json:"sentiment"`
	SubmittedAt   time.Time      `json:"submitted_at"`
}
