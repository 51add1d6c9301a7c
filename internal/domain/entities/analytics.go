package entities

// AnalyticsSnapshot aggregates metrics across every session handled by this process
type AnalyticsSnapshot struct {
	TotalSessions         int                    `json:"total_sessions"`
	ActiveSessions        int                    `json:"active_sessions"`
	AwaitingHandoff       int                    `json:"awaiting_handoff"`
	CompletedSessions     int                    `json:"completed_sessions"`
	HandoffsTriggered     int                    `json:"handoffs_triggered"`
	AnswersSubmitted      int                    `json:"answers_submitted"`
	AverageScore          float64                `json:"average_score"`
	CompletionRate        float64                `json:"completion_rate"`
	AverageDurationMinute float64                `json:"average_duration_minutes"`
	SentimentDistribution map[SentimentLabel]int `json:"sentiment_distribution"`
	HardestQuestions      []QuestionStat         `json:"hardest_questions"`
}

// QuestionStat is the running score of one question across sessions
type QuestionStat struct {
	QuestionID   string  `json:"question_id"`
	Text         string  `json:"text"`
	AverageScore float64 `json:"average_score"`
	Attempts     int     `json:"attempts"`
}
