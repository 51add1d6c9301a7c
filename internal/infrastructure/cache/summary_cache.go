package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

const summaryKeyPrefix = "interview:summary:"

// SummaryCache stores completed session summaries as JSON
type SummaryCache struct {
	store Store
}

// NewSummaryCache creates a summary cache over store
func NewSummaryCache(store Store) *SummaryCache {
	return &SummaryCache{store: store}
}

// SetSummary caches summary for ttl
func (c *SummaryCache) SetSummary(ctx context.Context, summary entities.Summary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return c.store.Set(ctx, summaryKeyPrefix+summary.SessionID.String(), string(data), ttl)
}

// GetSummary returns the cached summary, or nil on a miss
func (c *SummaryCache) GetSummary(ctx context.Context, sessionID uuid.UUID) (*entities.Summary, error) {
	raw, ok, err := c.store.Get(ctx, summaryKeyPrefix+sessionID.String())
	if err != nil || !ok {
		return nil, err
	}
	var summary entities.Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	summary.Duration = time.Duration(summary.DurationSeconds * float64(time.Second))
	return &summary, nil
}
