package handoff

import (
	"strings"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Reasons attached to a handoff ticket
const (
	ReasonCandidateRequest  = "candidate request"
	ReasonNegativeSentiment = "automated trigger: negative sentiment"
)

// DefaultTriggers are the phrases that mean the candidate asked for a person
var DefaultTriggers = []string{
	"human",
	"representative",
	"talk to someone",
	"recruiter",
	"real person",
	"manager",
}

// Policy decides whether an answer needs a human to take over. It holds no
// per-session state and is safe for concurrent use.
type Policy struct {
	triggers []string
}

// NewPolicy creates a policy matching the given trigger phrases. A nil slice
// selects DefaultTriggers.
func NewPolicy(triggers []string) *Policy {
	if triggers == nil {
		triggers = DefaultTriggers
	}
	normalized := make([]string, 0, len(triggers))
	for _, t := range triggers {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			normalized = append(normalized, t)
		}
	}
	return &Policy{triggers: normalized}
}

// Evaluate returns the handoff reason and true when the policy fires. An
// explicit request for a person wins over negative sentiment.
func (p *Policy) Evaluate(answer string, sentiment entities.SentimentLabel) (string, bool) {
	text := strings.ToLower(answer)
	for _, t := range p.triggers {
		if strings.Contains(text, t) {
			return ReasonCandidateRequest, true
		}
	}
	if sentiment == entities.SentimentNegative {
		return ReasonNegativeSentiment, true
	}
	return "", false
}
