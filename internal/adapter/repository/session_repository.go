package repository

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
)

// sessionRecord is the interview_sessions row. The full snapshot lives in a jsonb column;
// the other columns exist for querying.
type sessionRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CandidateID    uuid.UUID      `gorm:"type:uuid;not null"`
	CandidateName  string         `gorm:"not null"`
	CandidateEmail string         `gorm:"not null"`
	State          string         `gorm:"not null"`
	QuestionCursor int            `gorm:"not null"`
	Total          int            `gorm:"not null"`
	TotalScore     float64        `gorm:"not null"`
	Snapshot       datatypes.JSON `gorm:"type:jsonb;not null"`
	StartedAt      time.Time      `gorm:"not null"`
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (sessionRecord) TableName() string { return "interview_sessions" }

func toSessionRecord(snap entities.SessionSnapshot) (*sessionRecord, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	rec := &sessionRecord{
		ID:             snap.ID,
		CandidateID:    snap.Candidate.ID,
		CandidateName:  snap.Candidate.Name,
		CandidateEmail: snap.Candidate.Email,
		State:          string(snap.State),
		QuestionCursor: snap.Cursor,
		Total:          snap.Total,
		Snapshot:       datatypes.JSON(raw),
		StartedAt:      snap.StartedAt,
		CompletedAt:    snap.CompletedAt,
	}
	for _, r := range snap.Transcript {
		rec.TotalScore += r.Score
	}
	return rec, nil
}

func (r *sessionRecord) toSnapshot() (*entities.SessionSnapshot, error) {
	var snap entities.SessionSnapshot
	if err := json.Unmarshal(r.Snapshot, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", r.ID, err)
	}
	return &snap, nil
}

// SessionRepository implements the session repository interface using GORM
type SessionRepository struct {
	db *gorm.DB
}

var _ repositories.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// Save inserts the snapshot or replaces the stored one
func (r *SessionRepository) Save(ctx context.Context, snapshot entities.SessionSnapshot) error {
	rec, err := toSessionRecord(snapshot)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"state", "question_cursor", "total", "total_score", "snapshot", "completed_at", "updated_at",
			}),
		}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByID finds a session snapshot by ID
func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.SessionSnapshot, error) {
	var rec sessionRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session by ID: %w", err)
	}
	return rec.toSnapshot()
}

// DeleteCompletedBefore removes completed sessions older than before
func (r *SessionRepository) DeleteCompletedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("state = ? AND completed_at < ?", string(entities.SessionStateComplete), before).
		Delete(&sessionRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
