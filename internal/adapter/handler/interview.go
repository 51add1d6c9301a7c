package handler

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	dto "github.com/johnquangdev/interview-assistant/internal/adapter/dto/interview"
	"github.com/johnquangdev/interview-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	interviewUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/interview"
	"github.com/johnquangdev/interview-assistant/pkg/middleware"
	"github.com/johnquangdev/interview-assistant/pkg/validator"
)

// Interview handles interview session HTTP requests
type Interview struct {
	service interviewUsecase.Service
	logger  *zap.Logger
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(service interviewUsecase.Service, logger *zap.Logger) *Interview {
	return &Interview{
		service: service,
		logger:  logger,
	}
}

// StartInterview handles POST /interviews
// @Summary      Start an interview
// @Description  Validates the candidate, loads questions and opens the session
// @Tags         Interviews
// @Accept       json
// @Produce      json
// @Param        request  body      interview.StartInterviewRequest  true  "Candidate and optional questions"
// @Success      201      {object}  common.SuccessResponse{data=interview.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid candidate or questions"
// @Failure      422      {object}  common.ErrorResponse  "No questions available"
// @Router       /interviews [post]
func (h *Interview) StartInterview(c echo.Context) error {
	var req dto.StartInterviewRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		appErr := errors.ErrInvalidCandidate(err)
		for field, rule := range validator.FieldErrors(err) {
			appErr = appErr.WithDetail(field, rule)
		}
		return HandleError(h.logger, c, appErr)
	}

	questions, err := toQuestions(req.Questions)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := interviewUsecase.StartSessionInput{
		Candidate: entities.CandidateProfile{
			Name:       req.Candidate.Name,
			Email:      req.Candidate.Email,
			Experience: req.Candidate.Experience,
			Skills:     req.Candidate.Skills,
		},
		Questions: questions,
	}

	snap, err := h.service.StartSession(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToSessionResponse(snap))
}

// GetInterview handles GET /interviews/:id
// @Summary      Get interview
// @Description  Returns the state, cursor, current question and transcript of a session
// @Tags         Interviews
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=interview.SessionResponse}
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Router       /interviews/{id} [get]
func (h *Interview) GetInterview(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	snap, err := h.service.GetSession(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(snap))
}

// SubmitAnswer handles POST /interviews/:id/answers
// @Summary      Submit an answer
// @Description  Scores the answer to the current question and advances or pauses the session
// @Tags         Interviews
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Session ID (UUID)"
// @Param        request  body      interview.SubmitAnswerRequest  true  "Answer"
// @Success      200      {object}  common.SuccessResponse{data=interview.OutcomeResponse}
// @Failure      400      {object}  common.ErrorResponse  "Empty answer"
// @Failure      404      {object}  common.ErrorResponse  "Session not found"
// @Failure      409      {object}  common.ErrorResponse  "Invalid state or session busy"
// @Router       /interviews/{id}/answers [post]
func (h *Interview) SubmitAnswer(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("answer is too long"))
	}

	outcome, err := h.service.SubmitAnswer(c.Request().Context(), id, req.Answer)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToOutcomeResponse(outcome))
}

// ResolveHandoff handles POST /interviews/:id/handoff/resolve
// @Summary      Resolve handoff
// @Description  Resumes a session paused for a human. Resolving twice reports already_resolved.
// @Tags         Interviews
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=interview.OutcomeResponse}
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Failure      409  {object}  common.ErrorResponse  "No handoff to resolve"
// @Router       /interviews/{id}/handoff/resolve [post]
func (h *Interview) ResolveHandoff(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	outcome, err := h.service.ResolveHandoff(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToOutcomeResponse(outcome))
}

// GetSummary handles GET /interviews/:id/summary
// @Summary      Interview summary
// @Description  Returns total and average score and duration of a completed session
// @Tags         Interviews
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=interview.SummaryResponse}
// @Failure      404  {object}  common.ErrorResponse  "Session not found"
// @Failure      409  {object}  common.ErrorResponse  "Session not complete"
// @Router       /interviews/{id}/summary [get]
func (h *Interview) GetSummary(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	summary, err := h.service.Summary(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(summary))
}

// GetAnalytics handles GET /analytics/overview
// @Summary      Analytics overview
// @Description  Aggregate interview metrics
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=entities.AnalyticsSnapshot}
// @Router       /analytics/overview [get]
func (h *Interview) GetAnalytics(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.service.Analytics())
}

func sessionID(c echo.Context) (uuid.UUID, error) {
	if id, ok := middleware.SessionID(c); ok {
		return id, nil
	}
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrSessionNotFound(raw)
	}
	return id, nil
}

func toQuestions(reqs []dto.QuestionRequest) ([]entities.Question, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	questions := make([]entities.Question, 0, len(reqs))
	for i, q := range reqs {
		category, ok := entities.ParseQuestionCategory(q.Category)
		if !ok {
			return nil, errors.ErrInvalidArgument(fmt.Sprintf("questions[%d]: unknown category %q", i, q.Category))
		}
		questions = append(questions, entities.Question{
			ID:              q.ID,
			Category:        category,
			Text:            q.Text,
			ReferenceAnswer: q.ReferenceAnswer,
		})
	}
	return questions, nil
}
