package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/johnquangdev/interview-assistant/pkg/config"
)

// EmbeddingScorer scores answers by cosine similarity of embeddings returned by an
// OpenAI-compatible /v1/embeddings endpoint
type EmbeddingScorer struct {
	apiKey     string
	baseURL    string
	model      string
	timeout    time.Duration
	maxElapsed time.Duration

	once   sync.Once
	client *http.Client
}

// NewEmbeddingScorer creates an embedding scorer from the NLP config.
// Pass a nil config to fall back to environment variables.
func NewEmbeddingScorer(cfg *config.NLPConfig) *EmbeddingScorer {
	var apiKey, base, model string
	timeout := 30 * time.Second
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.EmbeddingURL
		model = cfg.EmbeddingModel
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("NLP_API_KEY")
	}
	if base == "" {
		base = "https://api.openai.com"
	}
	if model == "" {
		model = "text-embedding-3-small"
	}

	return &EmbeddingScorer{
		apiKey:     apiKey,
		baseURL:    base,
		model:      model,
		timeout:    timeout,
		maxElapsed: 2 * timeout,
	}
}

// EmbeddingRequest is the shape for embedding requests
type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingResponse is a minimal response shape
type EmbeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Score implements Scorer
func (e *EmbeddingScorer) Score(ctx context.Context, answer, reference string) (float64, string, error) {
	vectors, err := e.embed(ctx, []string{answer, reference})
	if err != nil {
		return 0, "", err
	}
	score := ScoreFromSimilarity(cosine(vectors[0], vectors[1]))
	return score, Feedback(score, reference), nil
}

func (e *EmbeddingScorer) httpClient() *http.Client {
	e.once.Do(func() {
		e.client = &http.Client{Timeout: e.timeout}
	})
	return e.client
}

func (e *EmbeddingScorer) embed(ctx context.Context, input []string) ([][]float64, error) {
	body, err := json.Marshal(EmbeddingRequest{Model: e.model, Input: input})
	if err != nil {
		return nil, err
	}

	var out EmbeddingResponse
	if err := postJSON(ctx, e.httpClient(), e.baseURL+"/v1/embeddings", e.apiKey, body, &out, e.maxElapsed); err != nil {
		return nil, fmt.Errorf("embedding service: %w", err)
	}

	if len(out.Data) != len(input) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(input), len(out.Data))
	}
	vectors := make([][]float64, len(input))
	for _, d := range out.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
