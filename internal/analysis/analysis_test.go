package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/straja-ai/agegate/internal/config"
	"github.com/straja-ai/agegate/internal/lexical"
	"github.com/straja-ai/agegate/internal/override"
	"github.com/straja-ai/agegate/internal/sentiment"
	"github.com/straja-ai/agegate/internal/topics"
	"github.com/straja-ai/agegate/internal/transcript"
	"github.com/straja-ai/agegate/internal/verdict"
)

type fakeTopics struct {
	out []string
	err error
}

func (f fakeTopics) Extract(text string, count int) ([]string, error) {
	if f.err != nil {
		return []string{}, f.err
	}
	if len(f.out) > count {
		return f.out[:count], nil
	}
	return f.out, nil
}

type countingRecorder struct{ reports []*Report }

func (c *countingRecorder) ObserveReport(r *Report) { c.reports = append(c.reports, r) }

func newAnalyzer(t *testing.T, tp TopicExtractor, log zerolog.Logger) *Analyzer {
	t.Helper()
	m, err := lexical.NewMatcher(lexical.DefaultPatterns(), lexical.NewWordList("test", []string{"darn"}))
	require.NoError(t, err)
	polarity, err := sentiment.DefaultPolarityScorer()
	require.NoError(t, err)

	scores := map[string]float64{"love it": 0.8, "awful": -0.7}
	a, err := New(Options{
		Engine:    verdict.NewEngine(m),
		Registry:  override.New(override.Default()),
		Comments:  sentiment.NewCommentAggregator(sentiment.ScorerFunc(func(s string) float64 { return scores[s] })),
		Sentences: sentiment.NewSentenceAnalyzer(polarity),
		Topics:    tp,
		Logger:    log,
		Now:       func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	require.NoError(t, err)
	return a
}

func segs(texts ...string) []transcript.Segment {
	out := make([]transcript.Segment, 0, len(texts))
	for i, t := range texts {
		out = append(out, transcript.Segment{Start: float64(i * 5), Text: t})
	}
	return out
}

func TestAnalyzeAbsentEverything(t *testing.T) {
	a := newAnalyzer(t, fakeTopics{}, zerolog.Nop())

	rep := a.Analyze(context.Background(), Input{Metadata: Metadata{VideoID: "abcdefghijk"}})

	_, err := uuid.Parse(rep.ID)
	require.NoError(t, err)
	assert.False(t, rep.Verdict.Restricted)
	assert.Equal(t, []string{}, rep.Verdict.MatchedKeywords)
	assert.Nil(t, rep.Verdict.Lexical)
	assert.Equal(t, Status{Reason: ReasonNoComments}, rep.Comments.Status)
	assert.Equal(t, sentiment.Count{}, rep.Comments.Counts)
	assert.Equal(t, Status{Reason: ReasonNoTranscript}, rep.Transcript.Status)
	assert.Equal(t, Status{Reason: ReasonNoTranscript}, rep.Topics.Status)
	assert.Equal(t, []string{}, rep.Topics.Topics)
	assert.Equal(t, []string{ReasonNoComments, ReasonNoTranscript, ReasonNoTranscript}, rep.Degraded())
}

func TestAnalyzeOverrideWithoutTranscript(t *testing.T) {
	a := newAnalyzer(t, fakeTopics{}, zerolog.Nop())

	rep := a.Analyze(context.Background(), Input{Metadata: Metadata{VideoID: "x", ChannelID: "UC_UnqGamer"}})
	assert.True(t, rep.Verdict.Restricted)
	assert.True(t, rep.Verdict.SourceOverrideApplied)
	assert.Equal(t, []string{verdict.ReasonSourceOverride}, rep.Verdict.Reasons)
	assert.Equal(t, []string{"channel"}, rep.Override.Kinds())
}

func TestAnalyzeFullInput(t *testing.T) {
	rec := &countingRecorder{}
	a := newAnalyzer(t, fakeTopics{out: []string{"one", "two", "three"}}, zerolog.Nop())
	a.AddRecorder(rec)

	rep := a.Analyze(context.Background(), Input{
		Metadata:   Metadata{VideoID: "abcdefghijk", PlatformRestricted: true},
		Transcript: segs("This is great.", "A murder happened. This is terrible."),
		Comments:   []string{"love it", "awful", "first"},
		TopicCount: 2,
	})

	assert.True(t, rep.Verdict.Restricted)
	assert.Equal(t, []string{"murder"}, rep.Verdict.MatchedKeywords)
	assert.Equal(t, []string{verdict.ReasonPlatformFlag, verdict.ReasonLexical}, rep.Verdict.Reasons)

	assert.True(t, rep.Comments.Available)
	assert.Equal(t, sentiment.Count{Positive: 1, Negative: 1, Neutral: 1}, rep.Comments.Counts)

	require.True(t, rep.Transcript.Available)
	require.NotNil(t, rep.Transcript.Sentiment)
	assert.Len(t, rep.Transcript.Sentiment.Rows, 3)
	assert.Equal(t, sentiment.Positive, rep.Transcript.Sentiment.Rows[0].Label)

	assert.True(t, rep.Topics.Available)
	assert.Equal(t, []string{"one", "two"}, rep.Topics.Topics)
	assert.Empty(t, rep.Degraded())

	require.Len(t, rec.reports, 1)
	assert.Same(t, rep, rec.reports[0])
}

func TestAnalyzeTopicFailuresDegrade(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{topics.ErrTooShort, ReasonTooShort},
		{topics.ErrNoSentences, ReasonNoSentencesFound},
		{fmt.Errorf("%w: boom", topics.ErrTokenize), ReasonTokenizeFailed},
		{errors.New("unexpected"), ReasonTokenizeFailed},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			a := newAnalyzer(t, fakeTopics{err: tc.err}, zerolog.Nop())
			rep := a.Analyze(context.Background(), Input{
				Metadata:   Metadata{VideoID: "v"},
				Transcript: segs("a murder"),
			})
			assert.Equal(t, Status{Reason: tc.want}, rep.Topics.Status)
			assert.Equal(t, []string{}, rep.Topics.Topics)
			assert.True(t, rep.Verdict.Restricted, "verdict must survive degraded topics")
			assert.True(t, rep.Transcript.Available)
		})
	}
}

func TestAnalyzeNoSentences(t *testing.T) {
	a := newAnalyzer(t, fakeTopics{err: topics.ErrTooShort}, zerolog.Nop())
	rep := a.Analyze(context.Background(), Input{Metadata: Metadata{VideoID: "v"}, Transcript: segs("...", ". .")})
	assert.Equal(t, Status{Reason: ReasonNoSentences}, rep.Transcript.Status)
	assert.Nil(t, rep.Transcript.Sentiment)
}

func TestAnalyzeBlankTranscriptIsAbsent(t *testing.T) {
	a := newAnalyzer(t, fakeTopics{out: []string{"x"}}, zerolog.Nop())
	rep := a.Analyze(context.Background(), Input{Metadata: Metadata{VideoID: "v"}, Transcript: segs(" ", "")})
	assert.Equal(t, Status{Reason: ReasonNoTranscript}, rep.Transcript.Status)
	assert.Equal(t, Status{Reason: ReasonNoTranscript}, rep.Topics.Status)
}

func TestAnalyzeLogsMaskedTerms(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	a := newAnalyzer(t, fakeTopics{out: []string{"x"}}, log)

	a.Analyze(context.Background(), Input{Metadata: Metadata{VideoID: "v"}, Transcript: segs("the murder scene")})
	assert.Contains(t, buf.String(), `"m****r"`)
	assert.NotContains(t, buf.String(), "murder")
	assert.Contains(t, buf.String(), "analysis complete")
}

func TestNewRequiresComponents(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestFromConfigDefaults(t *testing.T) {
	a, m, err := FromConfig(config.Default(), zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Equal(t, 26, m.PatternCount())

	rep := a.Analyze(context.Background(), Input{
		Metadata:   Metadata{VideoID: "v"},
		Transcript: segs("hello world"),
	})
	assert.False(t, rep.Verdict.Restricted)
	assert.Equal(t, Status{Reason: ReasonTooShort}, rep.Topics.Status)
}

func TestFromConfigCustom(t *testing.T) {
	cfg := config.Default()
	cfg.Restriction = config.RestrictionConfig{
		Patterns:                []config.PatternConfig{{Terms: []string{"spoiler"}, Except: []string{"free"}}},
		DisableBuiltinPatterns:  true,
		ProfanityWords:          []string{"heck"},
		DisableBuiltinProfanity: true,
	}
	cfg.Overrides = config.OverridesConfig{Videos: []string{"zzzzzzzzzzz"}, DisableBuiltin: true}

	a, m, err := FromConfig(cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.PatternCount())
	assert.Equal(t, "config", m.LexiconName())

	rep := a.Analyze(context.Background(), Input{Metadata: Metadata{VideoID: "NkZFnpDhdCk"}, Transcript: segs("a spoiler free review")})
	assert.False(t, rep.Verdict.Restricted)

	rep = a.Analyze(context.Background(), Input{Metadata: Metadata{VideoID: "zzzzzzzzzzz"}})
	assert.True(t, rep.Verdict.Restricted)

	cfg.Logging.Level = "loud"
	_, _, err = FromConfig(cfg, zerolog.Nop(), nil)
	assert.Error(t, err)
}

func TestRegistryAndPatternsFromConfig(t *testing.T) {
	r := Registry(config.OverridesConfig{Channels: []string{"UCx"}})
	assert.True(t, r.IsOverridden("UC_UnqGamer", "", ""))
	assert.True(t, r.IsOverridden("UCx", "", ""))

	ps := Patterns(config.RestrictionConfig{Patterns: []config.PatternConfig{{Terms: []string{"extra"}}}})
	assert.Len(t, ps, 27)

	_, err := Lexicon(config.RestrictionConfig{DisableBuiltinProfanity: true})
	assert.ErrorIs(t, err, lexical.ErrNoLexicon)
}
