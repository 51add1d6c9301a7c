package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	dto "github.com/johnquangdev/interview-assistant/internal/adapter/dto/interview"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	interviewUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/interview"
)

// TranscriptStore serves archived transcripts
type TranscriptStore interface {
	TranscriptURL(ctx context.Context, sessionID uuid.UUID, expiry time.Duration) (string, error)
	ListTranscripts(ctx context.Context) ([]uuid.UUID, error)
}

// Transcripts handles archived transcript requests. A nil store means archiving is off.
type Transcripts struct {
	store    TranscriptStore
	sessions interviewUsecase.Service
	expiry   time.Duration
	logger   *zap.Logger
}

// NewTranscriptsHandler creates a new transcripts handler
func NewTranscriptsHandler(store TranscriptStore, sessions interviewUsecase.Service, expiry time.Duration, logger *zap.Logger) *Transcripts {
	return &Transcripts{
		store:    store,
		sessions: sessions,
		expiry:   expiry,
		logger:   logger,
	}
}

// GetTranscript handles GET /interviews/:id/transcript
// @Summary      Transcript download link
// @Description  Returns a presigned URL for the archived transcript of a completed session
// @Tags         Transcripts
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=interview.TranscriptResponse}
// @Failure      404  {object}  common.ErrorResponse  "Session not found or archiving disabled"
// @Failure      409  {object}  common.ErrorResponse  "Session not complete"
// @Failure      500  {object}  common.ErrorResponse  "Storage failure"
// @Router       /interviews/{id}/transcript [get]
func (h *Transcripts) GetTranscript(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if h.store == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("transcript archive"))
	}

	ctx := c.Request().Context()
	snap, err := h.sessions.GetSession(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if snap.State != entities.SessionStateComplete {
		return HandleError(h.logger, c, errors.ErrInvalidState(fmt.Errorf("transcript in %s: %w", snap.State, entities.ErrInvalidState)).WithDetail("session_id", id.String()))
	}

	url, err := h.store.TranscriptURL(ctx, id, h.expiry)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign transcript", err))
	}

	return HandleSuccess(h.logger, c, &dto.TranscriptResponse{
		SessionID: id.String(),
		URL:       url,
		ExpiresAt: time.Now().Add(h.expiry),
	})
}

// ListTranscripts handles GET /transcripts
// @Summary      Archived transcripts
// @Description  Lists the sessions whose transcript has been archived
// @Tags         Transcripts
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=interview.TranscriptListResponse}
// @Failure      404  {object}  common.ErrorResponse  "Archiving disabled"
// @Failure      500  {object}  common.ErrorResponse  "Storage failure"
// @Router       /transcripts [get]
func (h *Transcripts) ListTranscripts(c echo.Context) error {
	if h.store == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("transcript archive"))
	}

	ids, err := h.store.ListTranscripts(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list transcripts", err))
	}

	response := &dto.TranscriptListResponse{SessionIDs: make([]string, 0, len(ids)), Count: len(ids)}
	for _, id := range ids {
		response.SessionIDs = append(response.SessionIDs, id.String())
	}
	return HandleSuccess(h.logger, c, response)
}
