package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	faqDto "github.com/johnquangdev/interview-assistant/internal/adapter/dto/faq"
	"github.com/johnquangdev/interview-assistant/internal/adapter/presenter"
	faqUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/faq"
	"github.com/johnquangdev/interview-assistant/pkg/validator"
)

// FAQ answers candidate questions about the interview
type FAQ struct {
	service faqUsecase.Service
	logger  *zap.Logger
}

// NewFAQHandler creates a new FAQ handler
func NewFAQHandler(service faqUsecase.Service, logger *zap.Logger) *FAQ {
	return &FAQ{
		service: service,
		logger:  logger,
	}
}

// Ask handles POST /faq
// @Summary      Ask a question
// @Description  Answers from the curated FAQ, then from the generated fallback when configured
// @Tags         FAQ
// @Accept       json
// @Produce      json
// @Param        request  body      faq.AskRequest  true  "Question"
// @Success      200      {object}  common.SuccessResponse{data=faq.AnswerResponse}
// @Failure      400      {object}  common.ErrorResponse  "Missing question"
// @Router       /faq [post]
func (h *FAQ) Ask(c echo.Context) error {
	var req faqDto.AskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		appErr := errors.ErrInvalidArgument("question is required and at most 1000 characters")
		for field, rule := range validator.FieldErrors(err) {
			appErr = appErr.WithDetail(field, rule)
		}
		return HandleError(h.logger, c, appErr)
	}

	answer, err := h.service.Ask(c.Request().Context(), req.Question)
	if err != nil {
		if stdErrors.Is(err, faqUsecase.ErrEmptyQuestion) {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("question is required"))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToFAQAnswerResponse(answer))
}
