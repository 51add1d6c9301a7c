package nlp

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// NoAnswerFeedback is returned for blank answers without consulting a Scorer
const NoAnswerFeedback = "No answer provided."

// MaxScore is the upper bound of an answer score
const MaxScore = 5.0

// Scorer rates a candidate answer against a reference answer
type Scorer interface {
	Score(ctx context.Context, answer, reference string) (score float64, feedback string, err error)
}

// ScoreAnswer scores an answer, short-circuiting blank input to 0 without calling the scorer
func ScoreAnswer(ctx context.Context, scorer Scorer, answer, reference string) (float64, string, error) {
	if strings.TrimSpace(answer) == "" {
		return 0, NoAnswerFeedback, nil
	}
	score, feedback, err := scorer.Score(ctx, answer, reference)
	if err != nil {
		return 0, "", fmt.Errorf("failed to score answer: %w", err)
	}
	return clampScore(score), feedback, nil
}

// ScoreFromSimilarity maps a similarity in [0,1] onto [0,5] with two decimals
func ScoreFromSimilarity(similarity float64) float64 {
	if math.IsNaN(similarity) || similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}
	return math.Round(similarity*MaxScore*100) / 100
}

// Feedback produces the candidate-facing comment for a score
func Feedback(score float64, reference string) string {
	switch {
	case score >= 4.0:
		return "Excellent answer! You covered all key points."
	case score >= 3.0:
		return fmt.Sprintf("Good answer. To improve, consider including more details such as: %s", reference)
	case score >= 2.0:
		return fmt.Sprintf("Fair attempt, but your answer could be more comprehensive. Key points: %s", reference)
	case score > 0:
		return fmt.Sprintf("Your answer lacks important details. Review the topic and try to include: %s", reference)
	default:
		return "No answer provided or answer is not relevant."
	}
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return math.Round(score*100) / 100
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
