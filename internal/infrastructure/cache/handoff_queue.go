package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/usecase/handoff"
)

const (
	pendingHandoffsKey  = "handoff:pending"
	resolvedHandoffsKey = "handoff:resolved"
	resolvedHistorySize = 1000
)

// HandoffQueue publishes tickets to Redis for human reviewers.
// Pending tickets live in a hash keyed by ticket id; resolved ones are pushed to a capped list.
type HandoffQueue struct {
	client redis.UniversalClient
	logger *zap.Logger
}

var (
	_ handoff.Recorder      = (*HandoffQueue)(nil)
	_ handoff.PendingLister = (*HandoffQueue)(nil)
)

// NewHandoffQueue creates a queue over client
func NewHandoffQueue(client redis.UniversalClient, logger *zap.Logger) *HandoffQueue {
	return &HandoffQueue{client: client, logger: logger}
}

// Opened implements handoff.Recorder
func (q *HandoffQueue) Opened(ctx context.Context, ticket *entities.HandoffTicket, candidate entities.CandidateProfile) error {
	data, err := json.Marshal(entities.PendingHandoff{Ticket: *ticket, Candidate: candidate})
	if err != nil {
		return fmt.Errorf("failed to encode handoff ticket: %w", err)
	}
	return q.retry(ctx, "handoff.queue.open", func() error {
		return q.client.HSet(ctx, pendingHandoffsKey, ticket.ID.String(), data).Err()
	})
}

// Resolved implements handoff.Recorder
func (q *HandoffQueue) Resolved(ctx context.Context, ticket *entities.HandoffTicket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("failed to encode handoff ticket: %w", err)
	}
	return q.retry(ctx, "handoff.queue.resolve", func() error {
		_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, pendingHandoffsKey, ticket.ID.String())
			pipe.LPush(ctx, resolvedHandoffsKey, data)
			pipe.LTrim(ctx, resolvedHandoffsKey, 0, resolvedHistorySize-1)
			return nil
		})
		return err
	})
}

// ListPending implements handoff.PendingLister
func (q *HandoffQueue) ListPending(ctx context.Context, limit int) ([]entities.PendingHandoff, error) {
	values, err := q.client.HVals(ctx, pendingHandoffsKey).Result()
	if err != nil {
		return nil, appErrors.ErrCacheFailed("list pending handoffs", err)
	}
	return decodePending(values, limit, q.logger), nil
}

// decodePending orders the hash values oldest first. Entries that fail to decode
// are logged and skipped.
func decodePending(values []string, limit int, logger *zap.Logger) []entities.PendingHandoff {
	pending := make([]entities.PendingHandoff, 0, len(values))
	for _, v := range values {
		var p entities.PendingHandoff
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			logger.Warn("handoff.queue.decode_failed", zap.Error(err))
			continue
		}
		pending = append(pending, p)
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Ticket.CreatedAt.Before(pending[j].Ticket.CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending
}

func (q *HandoffQueue) retry(ctx context.Context, op string, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 5 * time.Second

	if err := backoff.Retry(fn, backoff.WithContext(bo, ctx)); err != nil {
		q.logger.Error(op+".failed", zap.Error(err))
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return nil
}
