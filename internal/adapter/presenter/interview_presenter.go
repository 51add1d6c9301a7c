package presenter

import (
	dto "github.com/johnquangdev/interview-assistant/internal/adapter/dto/interview"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/usecase/interview"
)

// ToSessionResponse converts a session snapshot to SessionResponse DTO
func ToSessionResponse(s *entities.SessionSnapshot) *dto.SessionResponse {
	if s == nil {
		return nil
	}

	response := &dto.SessionResponse{
		ID:            s.ID.String(),
		CandidateID:   s.Candidate.ID.String(),
		CandidateName: s.Candidate.Name,
		State:         string(s.State),
		Cursor:        s.Cursor,
		Total:         s.Total,
		Transcript:    make([]dto.AnswerResponse, 0, len(s.Transcript)),
		Handoff:       ToHandoffResponse(s.Ticket),
		Room:          interview.RoomFor(s.ID),
		StartedAt:     s.StartedAt,
		CompletedAt:   s.CompletedAt,
	}
	if s.CurrentQuestion != nil {
		response.CurrentQuestion = &dto.QuestionResponse{
			ID:       s.CurrentQuestion.ID,
			Category: string(s.CurrentQuestion.Category),
			Text:     s.CurrentQuestion.Text,
		}
	}
	for _, r := range s.Transcript {
		response.Transcript = append(response.Transcript, *ToAnswerResponse(&r))
	}

	return response
}

// ToAnswerResponse converts an answer record to AnswerResponse DTO
func ToAnswerResponse(r *entities.AnswerRecord) *dto.AnswerResponse {
	if r == nil {
		return nil
	}
	return &dto.AnswerResponse{
		QuestionID:    r.QuestionID,
		CandidateText: r.CandidateText,
		Score:         r.Score,
		Feedback:      r.Feedback,
		Sentiment:     string(r.Sentiment),
		SubmittedAt:   r.SubmittedAt,
	}
}

// ToHandoffResponse converts a ticket to HandoffResponse DTO
func ToHandoffResponse(t *entities.HandoffTicket) *dto.HandoffResponse {
	if t == nil {
		return nil
	}
	return &dto.HandoffResponse{
		ID:         t.ID.String(),
		Reason:     t.Reason,
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt,
		ResolvedAt: t.ResolvedAt,
	}
}

// ToOutcomeResponse converts a mutation outcome to OutcomeResponse DTO
func ToOutcomeResponse(o *interview.Outcome) *dto.OutcomeResponse {
	if o == nil {
		return nil
	}
	return &dto.OutcomeResponse{
		SessionID:       o.SessionID.String(),
		State:           string(o.State),
		Cursor:          o.Cursor,
		Total:           o.Total,
		Record:          ToAnswerResponse(o.Record),
		Handoff:         ToHandoffResponse(o.Handoff),
		HandoffReason:   o.HandoffReason,
		AlreadyResolved: o.AlreadyResolved,
	}
}

// ToSummaryResponse converts a summary to SummaryResponse DTO
func ToSummaryResponse(s *entities.Summary) *dto.SummaryResponse {
	if s == nil {
		return nil
	}
	return &dto.SummaryResponse{
		SessionID:       s.SessionID.String(),
		CandidateID:     s.CandidateID.String(),
		CandidateName:   s.CandidateName,
		TotalScore:      s.TotalScore,
		AverageScore:    s.AverageScore,
		AnswerCount:     s.AnswerCount,
		StartedAt:       s.StartedAt,
		CompletedAt:     s.CompletedAt,
		DurationSeconds: s.DurationSeconds,
	}
}

// ToPendingHandoffListResponse converts pending tickets to PendingHandoffListResponse DTO
func ToPendingHandoffListResponse(pending []entities.PendingHandoff) *dto.PendingHandoffListResponse {
	response := &dto.PendingHandoffListResponse{
		Handoffs: make([]dto.PendingHandoffResponse, 0, len(pending)),
		Count:    len(pending),
	}
	for i := range pending {
		p := &pending[i]
		response.Handoffs = append(response.Handoffs, dto.PendingHandoffResponse{
			SessionID:        p.Ticket.SessionID.String(),
			CandidateName:    p.Candidate.Name,
			CandidateEmail:   p.Candidate.Email,
			Handoff:          *ToHandoffResponse(&p.Ticket),
			TriggeringAnswer: *ToAnswerResponse(&p.Ticket.TriggeringAnswer),
		})
	}
	return response
}
