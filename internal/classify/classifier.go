// Package classify labels extracted documents as static or dynamic using
// zero-shot natural-language inference against a remote scorer.
package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Label partitions documents by how quickly their content goes stale.
type Label string

const (
	LabelStatic  Label = "static"
	LabelDynamic Label = "dynamic"
)

// labelOrder fixes evaluation order so score ties resolve deterministically.
var labelOrder = []Label{LabelStatic, LabelDynamic}

// hypotheses are the NLI hypothesis sentences scored against each document.
var hypotheses = map[Label]string{
	LabelDynamic: "This text contains temporal information such as events, deadlines, admissions, scholarships, announcements, exam dates, registration periods, or time-sensitive information that changes frequently.",
	LabelStatic:  "This text contains permanent information such as FAQs, department details, policies, general information, infrastructure, faculty profiles, course descriptions, or information that rarely changes.",
}

// ErrEmptyText rejects documents with no classifiable content.
var ErrEmptyText = errors.New("empty text")

// EntailmentScorer returns the probability that the premise entails the
// hypothesis, in [0,1]. Scores are independent per hypothesis.
type EntailmentScorer interface {
	Entailment(ctx context.Context, premise, hypothesis string) (float64, error)
}

// Result carries the winning label and the per-label entailment scores.
type Result struct {
	Label      Label
	Confidence float64
	Scores     map[Label]float64
}

// Classifier scores both hypotheses and picks the stronger one.
type Classifier struct {
	scorer        EntailmentScorer
	threshold     float64
	truncateChars int
}

func New(scorer EntailmentScorer, threshold float64, truncateChars int) *Classifier {
	return &Classifier{
		scorer:        scorer,
		threshold:     threshold,
		truncateChars: truncateChars,
	}
}

// Classify labels text. Long documents are truncated to the first
// truncateChars characters; the head usually carries the signal.
func (c *Classifier) Classify(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}
	if runes := []rune(text); len(runes) > c.truncateChars {
		text = string(runes[:c.truncateChars])
	}

	scores := make(map[Label]float64, len(labelOrder))
	best := labelOrder[0]
	for _, label := range labelOrder {
		score, err := c.scorer.Entailment(ctx, text, hypotheses[label])
		if err != nil {
			return Result{}, fmt.Errorf("score %s hypothesis: %w", label, err)
		}
		scores[label] = score
		if score > scores[best] {
			best = label
		}
	}

	return Result{Label: best, Confidence: scores[best], Scores: scores}, nil
}

// Targets maps a result to the partitions that should receive the document.
// A confident result lands only in its own partition; below the threshold
// the document goes to both, so low-confidence content is never lost to a
// wrong bucket.
func (c *Classifier) Targets(res Result) []Label {
	if res.Confidence >= c.threshold {
		return []Label{res.Label}
	}
	return []Label{LabelStatic, LabelDynamic}
}
