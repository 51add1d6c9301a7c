package nlp

import (
	"context"
	"strings"
	"unicode"
)

// LexicalScorer compares term-frequency vectors of answer and reference. It needs no
// model and serves as the default scorer.
type LexicalScorer struct{}

// NewLexicalScorer creates a lexical scorer
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// Score implements Scorer
func (LexicalScorer) Score(_ context.Context, answer, reference string) (float64, string, error) {
	a, b := termVectors(tokenize(answer), tokenize(reference))
	score := ScoreFromSimilarity(cosine(a, b))
	return score, Feedback(score, reference), nil
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {}, "to": {}, "in": {}, "on": {},
	"is": {}, "are": {}, "was": {}, "be": {}, "it": {}, "that": {}, "this": {}, "for": {},
	"with": {}, "as": {}, "by": {}, "at": {}, "can": {}, "which": {}, "i": {}, "my": {},
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f == "" {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func termVectors(a, b []string) ([]float64, []float64) {
	index := make(map[string]int)
	for _, t := range append(append([]string(nil), a...), b...) {
		if _, ok := index[t]; !ok {
			index[t] = len(index)
		}
	}
	va := make([]float64, len(index))
	vb := make([]float64, len(index))
	for _, t := range a {
		va[index[t]]++
	}
	for _, t := range b {
		vb[index[t]]++
	}
	return va, vb
}
