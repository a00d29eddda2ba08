package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCompound(t *testing.T) {
	cases := []struct {
		score float64
		want  Label
	}{
		{0.05, Positive},
		{0.9, Positive},
		{-0.05, Negative},
		{-1, Negative},
		{0, Neutral},
		{0.049, Neutral},
		{-0.049, Neutral},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyCompound(tc.score), "score %v", tc.score)
	}
}

func TestAggregate(t *testing.T) {
	scores := map[string]float64{"yay": 0.6, "meh": 0.01, "boo": -0.4, "ok": 0.05}
	agg := NewCommentAggregator(ScorerFunc(func(s string) float64 { return scores[s] }))

	c := agg.Aggregate([]string{"yay", "meh", "boo", "ok", "unknown"})
	assert.Equal(t, Count{Positive: 2, Negative: 1, Neutral: 2}, c)
	assert.Equal(t, 5, c.Total())

	assert.Equal(t, Count{}, agg.Aggregate(nil))
	assert.Equal(t, Count{}, agg.Aggregate([]string{}))
}

func TestAggregateVader(t *testing.T) {
	agg := NewCommentAggregator(nil)
	comments := []string{
		"I love this video, it is wonderful!",
		"This is terrible and I hate it.",
		"The video is 10 minutes long",
	}
	c := agg.Aggregate(comments)
	assert.Equal(t, len(comments), c.Total())
	assert.GreaterOrEqual(t, c.Positive, 1)
	assert.GreaterOrEqual(t, c.Negative, 1)
}

func TestPolarity(t *testing.T) {
	s, err := DefaultPolarityScorer()
	require.NoError(t, err)

	assert.InDelta(t, 0.8, s.Polarity("This is great"), 1e-9)
	assert.InDelta(t, -1.0, s.Polarity("This is terrible"), 1e-9)
	assert.Equal(t, 0.0, s.Polarity("The cat sat on the mat"))
	assert.Equal(t, 0.0, s.Polarity(""))
	assert.InDelta(t, -0.35, s.Polarity("not good"), 1e-9)
	assert.InDelta(t, 0.91, s.Polarity("very good"), 1e-9)
	assert.InDelta(t, -0.455, s.Polarity("it is not very good"), 1e-9)
	assert.InDelta(t, -0.35, s.Polarity("this isn't good"), 1e-9)
	assert.InDelta(t, 1.0, s.Polarity("extremely excellent"), 1e-9)
	assert.InDelta(t, 0.75, s.Polarity("good and great"), 1e-9)
}

func TestPolarityNegationWindow(t *testing.T) {
	s := NewPolarityScorer(PolarityLexicon{
		Words:     map[string]float64{"good": 1},
		Negations: []string{"not"},
	})
	assert.InDelta(t, -0.5, s.Polarity("not at all good"), 1e-9)
	assert.InDelta(t, 1.0, s.Polarity("not at all really so good"), 1e-9)
}

func TestParsePolarityLexicon(t *testing.T) {
	_, err := ParsePolarityLexicon([]byte("words: {}"))
	assert.Error(t, err)
	_, err = ParsePolarityLexicon([]byte("words: {x: 2}"))
	assert.Error(t, err)
	_, err = ParsePolarityLexicon([]byte("words: ["))
	assert.Error(t, err)
	lex, err := ParsePolarityLexicon([]byte("words: {x: 0.5}\nnegations: [nope]"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, lex.Words["x"])
}

func TestAnalyzeSentences(t *testing.T) {
	s, err := DefaultPolarityScorer()
	require.NoError(t, err)
	a := NewSentenceAnalyzer(s)

	ts := a.Analyze("This is great. This is terrible.")
	require.Len(t, ts.Rows, 2)
	assert.Equal(t, "This is great", ts.Rows[0].Sentence)
	assert.Equal(t, Positive, ts.Rows[0].Label)
	assert.Equal(t, " This is terrible", ts.Rows[1].Sentence)
	assert.Equal(t, Negative, ts.Rows[1].Label)
	assert.Greater(t, ts.Average, -1.0)
	assert.Less(t, ts.Average, 1.0)
	assert.Equal(t, Count{Positive: 1, Negative: 1}, ts.Distribution)
}

func TestAnalyzeEdgeCases(t *testing.T) {
	a := NewSentenceAnalyzer(polarityFunc(func(string) float64 { return 0 }))

	ts := a.Analyze("")
	assert.Empty(t, ts.Rows)
	assert.NotNil(t, ts.Rows)
	assert.Equal(t, 0.0, ts.Average)

	ts = a.Analyze("...  . hello.")
	require.Len(t, ts.Rows, 1)
	assert.Equal(t, " hello", ts.Rows[0].Sentence)
	assert.Equal(t, Neutral, ts.Rows[0].Label)
	assert.Equal(t, 1, ts.Distribution.Neutral)
}

type polarityFunc func(string) float64

func (f polarityFunc) Polarity(s string) float64 { return f(s) }
