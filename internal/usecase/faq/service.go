package faq

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Canned replies when no answer can be given
const (
	NoAnswerText       = "Sorry, I couldn't find an answer to your question. Please contact support or try rephrasing your question."
	FallbackFailedText = "Sorry, I couldn't generate an answer right now. Please contact support."
)

// ErrEmptyQuestion is returned for a blank question
var ErrEmptyQuestion = stdErrors.New("question is empty")

// Source tells where an answer came from
type Source string

const (
	SourceStatic    Source = "static"
	SourceGenerated Source = "generated"
	SourceNone      Source = "none"
)

// Entry is one curated question and its answer
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Answer is the reply to a candidate question
type Answer struct {
	Text   string `json:"answer"`
	Source Source `json:"source"`
	// MatchedQuestion is the curated question that matched, for static answers
	MatchedQuestion string `json:"matched_question,omitempty"`
}

// Responder generates an answer when no curated entry matches
type Responder interface {
	Respond(ctx context.Context, question string) (string, error)
}

// Service answers candidate questions
type Service interface {
	Ask(ctx context.Context, question string) (*Answer, error)
}

// Assistant answers from the curated entries first and asks the fallback
// responder, when set, for anything else
type Assistant struct {
	entries  []Entry
	fallback Responder
	logger   *zap.Logger
}

var _ Service = (*Assistant)(nil)

// NewAssistant creates an assistant. fallback may be nil.
func NewAssistant(entries []Entry, fallback Responder, logger *zap.Logger) *Assistant {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Question) == "" || strings.TrimSpace(e.Answer) == "" {
			continue
		}
		kept = append(kept, e)
	}
	return &Assistant{entries: kept, fallback: fallback, logger: logger}
}

// Match returns the first entry whose question contains the asked question or
// is contained in it, ignoring case
func (a *Assistant) Match(question string) (Entry, bool) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return Entry{}, false
	}
	for _, e := range a.entries {
		known := strings.ToLower(strings.TrimSpace(e.Question))
		if strings.Contains(known, q) || strings.Contains(q, known) {
			return e, true
		}
	}
	return Entry{}, false
}

// Ask implements Service
func (a *Assistant) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	if e, ok := a.Match(question); ok {
		return &Answer{Text: e.Answer, Source: SourceStatic, MatchedQuestion: e.Question}, nil
	}
	if a.fallback == nil {
		return &Answer{Text: NoAnswerText, Source: SourceNone}, nil
	}

	text, err := a.fallback.Respond(ctx, question)
	if err != nil {
		a.logger.Warn("faq.fallback.failed", zap.Error(err))
		return &Answer{Text: FallbackFailedText, Source: SourceNone}, nil
	}
	if strings.TrimSpace(text) == "" {
		return &Answer{Text: NoAnswerText, Source: SourceNone}, nil
	}
	return &Answer{Text: strings.TrimSpace(text), Source: SourceGenerated}, nil
}

// LoadEntries reads a JSON array of {question, answer} objects
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file %s: %w", path, err)
	}
	return entries, nil
}
