package lexical

import "strings"

// ProfanityThreshold is the number of profane tokens a text may contain
// before it is restricted on profanity alone.
const ProfanityThreshold = 3

// Result is the outcome of evaluating one text.
type Result struct {
	Restricted     bool     `json:"restricted"`
	MatchedTerms   []string `json:"matched_terms"`
	KeywordMatches int      `json:"keyword_matches"`
	ProfanityScore int      `json:"profanity_score"`
}

// Matcher evaluates text against a compiled pattern set and a profanity
// lexicon. It is safe for concurrent use.
type Matcher struct {
	patterns []compiledPattern
	lexicon  Lexicon
}

// NewMatcher compiles patterns once. An empty pattern set or a nil lexicon is
// a configuration error.
func NewMatcher(patterns []Pattern, lexicon Lexicon) (*Matcher, error) {
	if lexicon == nil {
		return nil, ErrNoLexicon
	}
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	return &Matcher{patterns: compiled, lexicon: lexicon}, nil
}

// Evaluate scores text. MatchedTerms is only populated when the text is
// restricted, and is never nil.
func (m *Matcher) Evaluate(text string) Result {
	lc := strings.ToLower(text)

	var keys []string
	for _, p := range m.patterns {
		if p.matches(lc) {
			keys = append(keys, p.key)
		}
	}

	score := 0
	for _, tok := range strings.Fields(lc) {
		if m.lexicon.Contains(tok) {
			score++
		}
	}

	res := Result{
		KeywordMatches: len(keys),
		ProfanityScore: score,
		MatchedTerms:   []string{},
	}
	res.Restricted = res.KeywordMatches >= 1 || res.ProfanityScore > ProfanityThreshold
	if res.Restricted && len(keys) > 0 {
		res.MatchedTerms = keys
	}
	return res
}

func (m *Matcher) PatternCount() int { return len(m.patterns) }

func (m *Matcher) LexiconName() string { return m.lexicon.Name() }
