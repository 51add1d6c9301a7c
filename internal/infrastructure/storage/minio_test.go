package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

type fakeObjectStore struct {
	mu       sync.Mutex
	buckets  map[string]bool
	objects  map[string][]byte
	putFails int
	puts     int
	listErr  error
	listCtx  context.Context
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (f *fakeObjectStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[bucket], nil
}

func (f *fakeObjectStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[bucket] = true
	return nil
}

func (f *fakeObjectStore) PutObject(_ context.Context, bucket, object string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putFails > 0 {
		f.putFails--
		return minio.UploadInfo{}, errors.New("connection reset")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucket+"/"+object] = data
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: int64(len(data))}, nil
}

func (f *fakeObjectStore) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCtx = ctx
	ch := make(chan minio.ObjectInfo, len(f.objects)+2)
	if f.listErr != nil {
		ch <- minio.ObjectInfo{Err: f.listErr}
	}
	for key := range f.objects {
		name := key[len(bucket)+1:]
		if len(name) >= len(opts.Prefix) && name[:len(opts.Prefix)] == opts.Prefix {
			ch <- minio.ObjectInfo{Key: name}
		}
	}
	ch <- minio.ObjectInfo{Key: transcriptPrefix + "not-a-session.json"}
	close(ch)
	return ch
}

func (f *fakeObjectStore) PresignedGetObject(_ context.Context, bucket, object string, expiry time.Duration, _ url.Values) (*url.URL, error) {
	return url.Parse(fmt.Sprintf("http://minio:9000/%s/%s?X-Amz-Expires=%d", bucket, object, int(expiry.Seconds())))
}

func completedSnapshot() entities.SessionSnapshot {
	done := time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC)
	return entities.SessionSnapshot{
		ID:        uuid.New(),
		Candidate: entities.CandidateProfile{Name: "Ada", Email: "ada@example.com"},
		State:     entities.SessionStateComplete,
		Cursor:    1,
		Total:     1,
		Transcript: []entities.AnswerRecord{
			{QuestionID: "technical-1", CandidateText: "I understand OOP", Score: 4.2},
		},
		StartedAt:   done.Add(-5 * time.Minute),
		CompletedAt: &done,
	}
}

func TestArchiveTranscript(t *testing.T) {
	store := newFakeObjectStore()
	archive := newArchive(store, "interview-transcripts", "", zap.NewNop())
	if err := archive.ensureBucket(context.Background()); err != nil {
		t.Fatalf("ensureBucket: %v", err)
	}

	snap := completedSnapshot()
	location, err := archive.ArchiveTranscript(context.Background(), snap)
	if err != nil {
		t.Fatalf("ArchiveTranscript: %v", err)
	}
	want := "interview-transcripts/transcripts/" + snap.ID.String() + ".json"
	if location != want {
		t.Fatalf("expected location %q, got %q", want, location)
	}

	var stored entities.SessionSnapshot
	if err := json.Unmarshal(store.objects[want], &stored); err != nil {
		t.Fatalf("stored object is not JSON: %v", err)
	}
	if stored.ID != snap.ID || len(stored.Transcript) != 1 || stored.Transcript[0].Score != 4.2 {
		t.Fatalf("unexpected stored snapshot %+v", stored)
	}

	ids, err := archive.ListTranscripts(context.Background())
	if err != nil {
		t.Fatalf("ListTranscripts: %v", err)
	}
	if len(ids) != 1 || ids[0] != snap.ID {
		t.Fatalf("expected only %s, got %v", snap.ID, ids)
	}
	if err := archive.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestArchiveTranscript_RetriesTransientFailures(t *testing.T) {
	store := newFakeObjectStore()
	store.putFails = 2
	archive := newArchive(store, "b", "", zap.NewNop())

	if _, err := archive.ArchiveTranscript(context.Background(), completedSnapshot()); err != nil {
		t.Fatalf("expected upload to succeed after retries, got %v", err)
	}
	if store.puts != 3 {
		t.Fatalf("expected 3 attempts, got %d", store.puts)
	}
}

func TestHealth_MissingBucket(t *testing.T) {
	archive := newArchive(newFakeObjectStore(), "missing", "", zap.NewNop())
	if err := archive.Health(context.Background()); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
}

func TestListTranscripts_ErrorCancelsLister(t *testing.T) {
	store := newFakeObjectStore()
	store.listErr = errors.New("access denied")
	archive := newArchive(store, "b", "", zap.NewNop())

	if _, err := archive.ListTranscripts(context.Background()); err == nil {
		t.Fatalf("expected listing error")
	}
	if store.listCtx == nil || store.listCtx.Err() == nil {
		t.Fatalf("expected the listing context to be cancelled on return")
	}
}

func TestTranscriptURL(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name      string
		publicURL string
		want      string
	}{
		{"internal endpoint", "", "http://minio:9000/b/transcripts/" + id.String() + ".json?X-Amz-Expires=900"},
		{"public endpoint", "https://files.example.com/", "https://files.example.com/b/transcripts/" + id.String() + ".json?X-Amz-Expires=900"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := newArchive(newFakeObjectStore(), "b", tt.publicURL, zap.NewNop())
			got, err := archive.TranscriptURL(context.Background(), id, 15*time.Minute)
			if err != nil {
				t.Fatalf("TranscriptURL: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
