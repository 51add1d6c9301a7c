package presenter

import (
	dto "github.com/johnquangdev/interview-assistant/internal/adapter/dto/faq"
	"github.com/johnquangdev/interview-assistant/internal/usecase/faq"
)

// ToFAQAnswerResponse converts an FAQ answer to AnswerResponse DTO
func ToFAQAnswerResponse(a *faq.Answer) *dto.AnswerResponse {
	if a == nil {
		return nil
	}
	return &dto.AnswerResponse{
		Answer:          a.Text,
		Source:          string(a.Source),
		MatchedQuestion: a.MatchedQuestion,
	}
}
