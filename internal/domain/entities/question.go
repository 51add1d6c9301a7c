package entities

import "strings"

// QuestionCategory groups interview questions
type QuestionCategory string

const (
	QuestionCategoryTechnical  QuestionCategory = "Technical"
	QuestionCategoryBehavioral QuestionCategory = "Behavioral"
	QuestionCategoryHR         QuestionCategory = "HR"
)

// ParseQuestionCategory accepts a category name in any letter case
func ParseQuestionCategory(s string) (QuestionCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "technical":
		return QuestionCategoryTechnical, true
	case "behavioral", "behavioural":
		return QuestionCategoryBehavioral, true
	case "hr":
		return QuestionCategoryHR, true
	}
	return "", false
}

// Question is a single interview question with the reference answer used for scoring
type Question struct {
	ID              string           `json:"id"`
	Category        QuestionCategory `json:"category"`
	Text            string           `json:"text"`
	ReferenceAnswer string           `json:"reference_answer"`
}
