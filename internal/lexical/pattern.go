package lexical

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a single restriction rule. It matches any of Terms on word
// boundaries, except where the occurrence is immediately followed by a space
// and one of the Except words ("violence" but not "violence against").
type Pattern struct {
	Terms  []string `yaml:"terms" json:"terms"`
	Except []string `yaml:"except,omitempty" json:"except,omitempty"`
}

// Key is the literal label reported for a matching pattern, e.g. "nudity|naked|porn".
func (p Pattern) Key() string {
	return strings.Join(normalizeTerms(p.Terms), "|")
}

// PatternError reports a pattern that cannot be compiled.
type PatternError struct {
	Index int
	Key   string
	Err   error
}

func (e *PatternError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("pattern %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("pattern %d (%s): %v", e.Index, e.Key, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

var (
	ErrNoTerms    = errors.New("pattern has no terms")
	ErrNoPatterns = errors.New("no restriction patterns configured")
	ErrNoLexicon  = errors.New("no profanity lexicon configured")
)

type compiledPattern struct {
	key    string
	re     *regexp.Regexp
	except []string
}

func compilePattern(idx int, p Pattern) (compiledPattern, error) {
	terms := normalizeTerms(p.Terms)
	if len(terms) == 0 {
		return compiledPattern{}, &PatternError{Index: idx, Err: ErrNoTerms}
	}

	alts := make([]string, 0, len(terms))
	for _, t := range terms {
		alts = append(alts, regexp.QuoteMeta(t))
	}
	key := strings.Join(terms, "|")
	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
	if err != nil {
		return compiledPattern{}, &PatternError{Index: idx, Key: key, Err: err}
	}

	var except []string
	for _, e := range p.Except {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		except = append(except, " "+e)
	}

	return compiledPattern{key: key, re: re, except: except}, nil
}

// matches reports whether at least one occurrence in lc is not exempted.
func (c compiledPattern) matches(lc string) bool {
	for _, loc := range c.re.FindAllStringIndex(lc, -1) {
		if !c.exempt(lc[loc[1]:]) {
			return true
		}
	}
	return false
}

func (c compiledPattern) exempt(rest string) bool {
	for _, e := range c.except {
		if strings.HasPrefix(rest, e) {
			return true
		}
	}
	return false
}

func compilePatterns(patterns []Pattern) ([]compiledPattern, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	out := make([]compiledPattern, 0, len(patterns))
	for i, p := range patterns {
		cp, err := compilePattern(i, p)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// Validate checks that every pattern compiles without building a matcher.
func Validate(patterns []Pattern) error {
	_, err := compilePatterns(patterns)
	return err
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
