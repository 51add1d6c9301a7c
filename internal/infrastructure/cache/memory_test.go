package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

func newTestStore(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()
	store := NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestMemoryStore_Expiration(t *testing.T) {
	ctx := context.Background()
	store, now := newTestStore(t)

	if err := store.Set(ctx, "a", "1", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "forever", "2", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if v, ok, _ := store.Get(ctx, "a"); !ok || v != "1" {
		t.Fatalf("expected a=1, got %q %v", v, ok)
	}

	*now = now.Add(2 * time.Minute)
	if _, ok, _ := store.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be expired")
	}
	if _, ok, _ := store.Get(ctx, "forever"); !ok {
		t.Fatalf("expected item without expiration to survive")
	}

	store.sweep()
	store.mu.RLock()
	n := len(store.items)
	store.mu.RUnlock()
	if n != 1 {
		t.Fatalf("expected sweep to leave 1 item, got %d", n)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_ = store.Set(ctx, "k", "v", time.Minute)
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected key to be gone")
	}
	store.Close()
	store.Close()
}

func TestSummaryCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, now := newTestStore(t)
	cache := NewSummaryCache(store)

	id := uuid.New()
	if got, err := cache.GetSummary(ctx, id); err != nil || got != nil {
		t.Fatalf("expected miss, got %v %v", got, err)
	}

	started := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	summary := entities.Summary{
		SessionID:       id,
		CandidateName:   "Ada",
		TotalScore:      5,
		AverageScore:    2.5,
		AnswerCount:     2,
		StartedAt:       started,
		CompletedAt:     started.Add(5 * time.Minute),
		Duration:        5 * time.Minute,
		DurationSeconds: 300,
	}
	if err := cache.SetSummary(ctx, summary, time.Hour); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}

	got, err := cache.GetSummary(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("expected hit, got %v %v", got, err)
	}
	if got.TotalScore != 5 || got.Duration != 5*time.Minute || got.CandidateName != "Ada" {
		t.Fatalf("unexpected summary %+v", got)
	}

	*now = now.Add(2 * time.Hour)
	if got, _ := cache.GetSummary(ctx, id); got != nil {
		t.Fatalf("expected summary to expire")
	}
}

func TestDecodePending_OrdersAndSkipsCorrupt(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	encode := func(name string, at time.Time) string {
		data, err := json.Marshal(entities.PendingHandoff{
			Ticket:    entities.HandoffTicket{ID: uuid.New(), Status: entities.HandoffStatusPending, CreatedAt: at},
			Candidate: entities.CandidateProfile{Name: name},
		})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return string(data)
	}
	values := []string{
		encode("late", base.Add(2*time.Minute)),
		"{not json",
		encode("early", base),
		encode("middle", base.Add(time.Minute)),
	}

	got := decodePending(values, 2, zap.NewNop())
	if len(got) != 2 {
		t.Fatalf("expected 2 entries after limit, got %d", len(got))
	}
	if got[0].Candidate.Name != "early" || got[1].Candidate.Name != "middle" {
		t.Fatalf("expected oldest first, got %q then %q", got[0].Candidate.Name, got[1].Candidate.Name)
	}
	if all := decodePending(values, 0, zap.NewNop()); len(all) != 3 {
		t.Fatalf("a zero limit keeps every entry, got %d", len(all))
	}
}
