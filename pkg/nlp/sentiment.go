package nlp

import (
	"math"
	"strings"
	"sync"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Sentiment is the polarity breakdown of a text
type Sentiment struct {
	Label    entities.SentimentLabel `json:"label"`
	Compound float64                 `json:"compound"`
	Pos      float64                 `json:"pos"`
	Neu      float64                 `json:"neu"`
	Neg      float64                 `json:"neg"`
}

// SentimentAnalyzer classifies free text
type SentimentAnalyzer interface {
	Analyze(text string) Sentiment
}

// Label thresholds on the compound score
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// AnalyzeSentiment classifies text, short-circuiting blank input to Neutral without calling the analyzer
func AnalyzeSentiment(analyzer SentimentAnalyzer, text string) Sentiment {
	if strings.TrimSpace(text) == "" {
		return Sentiment{Label: entities.SentimentNeutral, Neu: 1}
	}
	return analyzer.Analyze(text)
}

// LabelFor maps a compound score onto a label
func LabelFor(compound float64) entities.SentimentLabel {
	switch {
	case compound >= PositiveThreshold:
		return entities.SentimentPositive
	case compound <= NegativeThreshold:
		return entities.SentimentNegative
	default:
		return entities.SentimentNeutral
	}
}

// LexiconAnalyzer scores text with a word polarity lexicon. Negations within the
// three preceding words dampen and flip a word's valence.
type LexiconAnalyzer struct {
	once    sync.Once
	lexicon map[string]float64
}

// NewLexiconAnalyzer creates an analyzer; the lexicon is built on first use
func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{}
}

const (
	negationScalar = -0.74
	normalizeAlpha = 15.0
	negationWindow = 3
)

// Analyze implements SentimentAnalyzer
func (a *LexiconAnalyzer) Analyze(text string) Sentiment {
	a.once.Do(func() { a.lexicon = defaultLexicon() })

	words := strings.Fields(strings.ToLower(text))
	var sum, pos, neg float64
	var neutral int
	for i, raw := range words {
		w := strings.Trim(raw, ".,!?;:\"()[]")
		valence, ok := a.lexicon[w]
		if !ok {
			neutral++
			continue
		}
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			if isNegation(strings.Trim(words[j], ".,!?;:\"()[]")) {
				valence *= negationScalar
				break
			}
		}
		sum += valence
		if valence > 0 {
			pos += valence + 1
		} else if valence < 0 {
			neg += -valence + 1
		} else {
			neutral++
		}
	}

	compound := 0.0
	if sum != 0 {
		compound = sum / math.Sqrt(sum*sum+normalizeAlpha)
	}
	total := pos + neg + float64(neutral)
	s := Sentiment{
		Label:    LabelFor(compound),
		Compound: math.Round(compound*10000) / 10000,
		Neu:      1,
	}
	if total > 0 {
		s.Pos = math.Round(pos/total*1000) / 1000
		s.Neg = math.Round(neg/total*1000) / 1000
		s.Neu = math.Round(float64(neutral)/total*1000) / 1000
	}
	return s
}

func isNegation(w string) bool {
	switch w {
	case "not", "no", "never", "none", "nobody", "nothing", "neither", "nor", "without", "cannot":
		return true
	}
	return strings.HasSuffix(w, "n't")
}

func defaultLexicon() map[string]float64 {
	return map[string]float64{
		// positive
		"good": 1.9, "great": 3.1, "excellent": 2.7, "amazing": 2.8, "awesome": 3.1,
		"love": 3.2, "loved": 2.9, "enjoy": 2.2, "enjoyed": 2.3, "happy": 2.7,
		"excited": 1.4, "exciting": 2.2, "glad": 2.0, "pleased": 1.9, "passionate": 2.3,
		"confident": 2.2, "success": 2.7, "successful": 2.8, "succeeded": 2.2, "helpful": 1.9,
		"interesting": 1.7, "thanks": 1.9, "thank": 1.5, "opportunity": 1.8, "proud": 2.1,
		"fantastic": 2.6, "wonderful": 2.7, "best": 3.2, "better": 1.9, "nice": 1.8,
		"fun": 2.3, "motivated": 1.6, "grateful": 2.0, "improve": 1.9, "improved": 2.1,
		"win": 2.8, "achieved": 1.8, "eager": 1.5, "comfortable": 1.5, "perfect": 2.7,
		// negative
		"bad": -2.5, "terrible": -2.1, "awful": -2.0, "horrible": -2.5, "worst": -3.1,
		"hate": -2.7, "hated": -3.2, "angry": -2.3, "annoyed": -1.6, "annoying": -1.7,
		"frustrated": -2.0, "frustrating": -1.9, "frustration": -2.1, "unclear": -1.0, "confusing": -1.3,
		"confused": -1.3, "upset": -1.6, "sad": -2.1, "disappointed": -1.9, "disappointing": -2.2,
		"unfair": -2.1, "waste": -1.8, "stupid": -2.4, "ridiculous": -1.5, "boring": -1.3,
		"difficult": -1.5, "problem": -1.7, "problems": -1.7, "fail": -2.5, "failed": -2.3,
		"failure": -2.3, "stressed": -1.4, "stressful": -1.5, "nervous": -1.1, "worried": -1.2,
		"useless": -1.8, "pointless": -1.7, "unhappy": -1.8, "hard": -0.4, "wrong": -2.1,
		"quit": -1.1, "rude": -2.0, "pathetic": -2.6, "nonsense": -1.7, "sucks": -1.5,
	}
}
