package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/straja-ai/agegate/internal/lexical"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	m, err := lexical.NewMatcher(lexical.DefaultPatterns(), lexical.NewWordList("test", []string{"darn"}))
	require.NoError(t, err)
	return NewEngine(m)
}

func TestDecide(t *testing.T) {
	e := newEngine(t)

	cases := []struct {
		name       string
		sig        Signals
		restricted bool
		keywords   []string
		reasons    []string
	}{
		{
			name:     "absent transcript no flags",
			sig:      Signals{},
			keywords: []string{},
			reasons:  []string{},
		},
		{
			name:       "absent transcript override",
			sig:        Signals{SourceOverride: true},
			restricted: true,
			keywords:   []string{},
			reasons:    []string{ReasonSourceOverride},
		},
		{
			name:       "platform flag",
			sig:        Signals{PlatformRestricted: true, Transcript: "pancakes", TranscriptAvailable: true},
			restricted: true,
			keywords:   []string{},
			reasons:    []string{ReasonPlatformFlag},
		},
		{
			name:       "lexical",
			sig:        Signals{Transcript: "a murder happened", TranscriptAvailable: true},
			restricted: true,
			keywords:   []string{"murder"},
			reasons:    []string{ReasonLexical},
		},
		{
			name:       "all signals",
			sig:        Signals{Transcript: "a murder", TranscriptAvailable: true, SourceOverride: true, PlatformRestricted: true},
			restricted: true,
			keywords:   []string{"murder"},
			reasons:    []string{ReasonSourceOverride, ReasonPlatformFlag, ReasonLexical},
		},
		{
			name:     "unavailable transcript is not evaluated",
			sig:      Signals{Transcript: "a murder", TranscriptAvailable: false},
			keywords: []string{},
			reasons:  []string{},
		},
		{
			name:     "clean transcript",
			sig:      Signals{Transcript: "suicide prevention week", TranscriptAvailable: true},
			keywords: []string{},
			reasons:  []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := e.Decide(tc.sig)
			assert.Equal(t, tc.restricted, v.Restricted)
			assert.Equal(t, tc.keywords, v.MatchedKeywords)
			assert.Equal(t, tc.reasons, v.Reasons)
			assert.Equal(t, tc.sig.SourceOverride, v.SourceOverrideApplied)
		})
	}
}

func TestDecideProfanityOnly(t *testing.T) {
	v := newEngine(t).Decide(Signals{Transcript: "darn darn darn darn", TranscriptAvailable: true})
	assert.True(t, v.Restricted)
	assert.Empty(t, v.MatchedKeywords)
	require.NotNil(t, v.Lexical)
	assert.Equal(t, 4, v.Lexical.ProfanityScore)
}

func TestOverrideIsNotClearedByCleanTranscript(t *testing.T) {
	v := newEngine(t).Decide(Signals{Transcript: "a lovely day", TranscriptAvailable: true, SourceOverride: true})
	assert.True(t, v.Restricted)
	assert.False(t, v.Lexical.Restricted)
}
