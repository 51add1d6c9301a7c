package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/interview-assistant/internal/usecase/handoff"
)

const (
	defaultPendingLimit = 50
	maxPendingLimit     = 500
)

// Handoffs serves the queue of tickets waiting for a human
type Handoffs struct {
	lister handoff.PendingLister
	logger *zap.Logger
}

// NewHandoffsHandler creates a new handoffs handler
func NewHandoffsHandler(lister handoff.PendingLister, logger *zap.Logger) *Handoffs {
	return &Handoffs{
		lister: lister,
		logger: logger,
	}
}

// ListPending handles GET /handoffs/pending
// @Summary      Pending handoffs
// @Description  Lists tickets waiting for a recruiter, oldest first, with the candidate's contact details
// @Tags         Handoffs
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of tickets (1-500, default 50)"
// @Success      200    {object}  common.SuccessResponse{data=interview.PendingHandoffListResponse}
// @Failure      400    {object}  common.ErrorResponse  "Invalid limit"
// @Failure      500    {object}  common.ErrorResponse  "Backend query failed"
// @Router       /handoffs/pending [get]
func (h *Handoffs) ListPending(c echo.Context) error {
	limit := defaultPendingLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPendingLimit {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("limit must be between 1 and 500").WithDetail("limit", raw))
		}
		limit = n
	}

	pending, err := h.lister.ListPending(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToPendingHandoffListResponse(pending))
}
