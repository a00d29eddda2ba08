package lexical

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	goaway "github.com/TwiN/go-away"
	"gopkg.in/yaml.v3"
)

// Lexicon answers whether a single whitespace token is profane.
type Lexicon interface {
	Name() string
	Contains(token string) bool
}

type profanityLexicon struct {
	detector *goaway.ProfanityDetector
}

// NewProfanityLexicon returns the built-in lexicon. Matching follows the
// detector's own semantics: tokens are sanitized (leetspeak, accents, special
// characters) and checked for profane substrings.
func NewProfanityLexicon() Lexicon {
	return &profanityLexicon{detector: goaway.NewProfanityDetector()}
}

func (l *profanityLexicon) Name() string { return "go-away" }

func (l *profanityLexicon) Contains(token string) bool {
	if token == "" {
		return false
	}
	return l.detector.IsProfane(token)
}

// WordList is an exact-match lexicon. Tokens are lowercased and stripped of
// surrounding punctuation before lookup.
type WordList struct {
	name  string
	words map[string]struct{}
}

// NewWordList builds a word list; blank entries are ignored.
func NewWordList(name string, words []string) *WordList {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = normalizeToken(w)
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return &WordList{name: name, words: set}
}

func (w *WordList) Name() string { return w.name }

func (w *WordList) Len() int { return len(w.words) }

func (w *WordList) Contains(token string) bool {
	if w == nil {
		return false
	}
	_, ok := w.words[normalizeToken(token)]
	return ok
}

// LoadWordList reads a word list from disk. Files ending in .yaml or .yml hold
// a YAML sequence of strings (or a mapping with a "words" key); anything else
// is one word per line with '#' comments.
func LoadWordList(path string) (*WordList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	name := "file:" + filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		words, err := decodeYAMLWords(data)
		if err != nil {
			return nil, fmt.Errorf("decode word list %s: %w", path, err)
		}
		return NewWordList(name, words), nil
	default:
		var words []string
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			words = append(words, line)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("scan word list: %w", err)
		}
		return NewWordList(name, words), nil
	}
}

func decodeYAMLWords(data []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var doc struct {
		Words []string `yaml:"words"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Words, nil
}

type union []Lexicon

// Union reports a token as profane when any member does. Nil members are dropped.
func Union(members ...Lexicon) Lexicon {
	out := make(union, 0, len(members))
	for _, m := range members {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (u union) Name() string {
	names := make([]string, 0, len(u))
	for _, m := range u {
		names = append(names, m.Name())
	}
	return strings.Join(names, "+")
}

func (u union) Contains(token string) bool {
	for _, m := range u {
		if m.Contains(token) {
			return true
		}
	}
	return false
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
