package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/pkg/config"
)

const transcriptPrefix = "transcripts/"

// objectStore is the subset of the MinIO client the archive needs
type objectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PresignedGetObject(ctx context.Context, bucket, object string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
}

// TranscriptArchive stores completed interview transcripts in MinIO
type TranscriptArchive struct {
	store     objectStore
	bucket    string
	publicURL string // e.g. https://minio.example.com when MinIO sits behind a proxy
	logger    *zap.Logger
}

// NewTranscriptArchive creates a MinIO client and makes sure the bucket exists
func NewTranscriptArchive(cfg *config.StorageConfig, logger *zap.Logger) (*TranscriptArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := newArchive(minioClient, cfg.BucketName, cfg.PublicURL, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return archive, nil
}

func newArchive(store objectStore, bucket, publicURL string, logger *zap.Logger) *TranscriptArchive {
	return &TranscriptArchive{
		store:     store,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}
}

// ensureBucket creates the bucket when missing. Transcripts stay private.
func (a *TranscriptArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.store.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.store.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ObjectName returns the key a session transcript is archived under
func ObjectName(sessionID uuid.UUID) string {
	return transcriptPrefix + sessionID.String() + ".json"
}

// ArchiveTranscript uploads the snapshot as JSON and returns the object location
func (a *TranscriptArchive) ArchiveTranscript(ctx context.Context, snapshot entities.SessionSnapshot) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode transcript: %w", err)
	}
	object := ObjectName(snapshot.ID)

	upload := func() error {
		_, err := a.store.PutObject(ctx, a.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 3 * time.Second
	bo.MaxElapsedTime = 10 * time.Second
	if err := backoff.Retry(upload, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("failed to upload transcript: %w", err)
	}

	location := a.bucket + "/" + object
	a.logger.Info("storage.transcript.archived",
		zap.String("session_id", snapshot.ID.String()),
		zap.String("object", location),
		zap.Int("bytes", len(data)),
	)
	return location, nil
}

// TranscriptURL returns a presigned URL for an archived transcript
func (a *TranscriptArchive) TranscriptURL(ctx context.Context, sessionID uuid.UUID, expiry time.Duration) (string, error) {
	u, err := a.store.PresignedGetObject(ctx, a.bucket, ObjectName(sessionID), expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// swap the internal endpoint for the public one, keeping /bucket/object?query
	if a.publicURL != "" {
		return a.publicURL + u.RequestURI(), nil
	}
	return u.String(), nil
}

// ListTranscripts lists the session ids with an archived transcript
func (a *TranscriptArchive) ListTranscripts(ctx context.Context) ([]uuid.UUID, error) {
	// the lister goroutine only exits once ctx is done
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var ids []uuid.UUID
	objectCh := a.store.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    transcriptPrefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(object.Key, transcriptPrefix), ".json")
		id, err := uuid.Parse(name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Health reports whether the bucket is reachable
func (a *TranscriptArchive) Health(ctx context.Context) error {
	exists, err := a.store.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", a.bucket)
	}
	return nil
}
