package sentiment

import "github.com/jonreiter/govader"

// Compound score thresholds for comments. Scores strictly between them are
// neutral.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Scorer returns a compound sentiment score in [-1, 1] for a piece of text.
type Scorer interface {
	Compound(text string) float64
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(string) float64

func (f ScorerFunc) Compound(text string) float64 { return f(text) }

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer returns the default rule-based comment scorer.
func NewVaderScorer() Scorer {
	return &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *vaderScorer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// ClassifyCompound maps a compound score to a label.
func ClassifyCompound(score float64) Label {
	switch {
	case score >= PositiveThreshold:
		return Positive
	case score <= NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// CommentAggregator counts comment labels.
type CommentAggregator struct {
	scorer Scorer
}

// NewCommentAggregator uses the VADER scorer when scorer is nil.
func NewCommentAggregator(scorer Scorer) *CommentAggregator {
	if scorer == nil {
		scorer = NewVaderScorer()
	}
	return &CommentAggregator{scorer: scorer}
}

// Aggregate classifies every comment. The counts always sum to len(comments).
func (a *CommentAggregator) Aggregate(comments []string) Count {
	var c Count
	for _, text := range comments {
		c.Add(ClassifyCompound(a.scorer.Compound(text)))
	}
	return c
}
