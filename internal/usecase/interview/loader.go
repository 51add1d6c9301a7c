package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// QuestionSource supplies the question set of a new session
type QuestionSource interface {
	Load(ctx context.Context) ([]entities.Question, error)
}

type questionFile struct {
	name     string
	category entities.QuestionCategory
}

var questionFiles = []questionFile{
	{"technical_questions.json", entities.QuestionCategoryTechnical},
	{"behavioral_questions.json", entities.QuestionCategoryBehavioral},
	{"hr_questions.json", entities.QuestionCategoryHR},
}

type rawQuestion struct {
	Question    string `json:"question"`
	ModelAnswer string `json:"model_answer"`
}

// FileQuestionLoader reads one JSON file per category from a directory.
// A missing file contributes no questions.
type FileQuestionLoader struct {
	dir    string
	logger *zap.Logger
}

// NewFileQuestionLoader creates a loader over dir
func NewFileQuestionLoader(dir string, logger *zap.Logger) *FileQuestionLoader {
	return &FileQuestionLoader{dir: dir, logger: logger}
}

// Load implements QuestionSource. Questions keep file order: Technical, then
// Behavioral, then HR.
func (l *FileQuestionLoader) Load(ctx context.Context) ([]entities.Question, error) {
	var out []entities.Question
	for _, f := range questionFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		qs, err := l.loadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, qs...)
	}
	return out, nil
}

func (l *FileQuestionLoader) loadFile(f questionFile) ([]entities.Question, error) {
	path := filepath.Join(l.dir, f.name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("interview.questions.missing", zap.String("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	prefix := strings.ToLower(string(f.category))
	qs := make([]entities.Question, 0, len(raw))
	for i, r := range raw {
		qs = append(qs, entities.Question{
			ID:              fmt.Sprintf("%s-%d", prefix, i+1),
			Category:        f.category,
			Text:            r.Question,
			ReferenceAnswer: r.ModelAnswer,
		})
	}
	return qs, nil
}

// StaticQuestions serves a fixed question set
type StaticQuestions []entities.Question

// Load implements QuestionSource
func (s StaticQuestions) Load(context.Context) ([]entities.Question, error) {
	return append([]entities.Question(nil), s...), nil
}
