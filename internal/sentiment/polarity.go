package sentiment

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed polarity.yaml
var polarityYAML []byte

// negationFactor flips and dampens the next sentiment word after a negation.
const (
	negationFactor = -0.5
	negationWindow = 3
)

var polarityTokenRe = regexp.MustCompile(`[a-z]+(?:'[a-z]+)?`)

// PolarityLexicon is the data behind a PolarityScorer.
type PolarityLexicon struct {
	Words        map[string]float64 `yaml:"words"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
	Negations    []string           `yaml:"negations"`
}

// PolarityScorer averages word polarities over a sentence.
type PolarityScorer struct {
	words        map[string]float64
	intensifiers map[string]float64
	negations    map[string]struct{}
}

// ParsePolarityLexicon decodes a YAML lexicon.
func ParsePolarityLexicon(data []byte) (PolarityLexicon, error) {
	var lex PolarityLexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return PolarityLexicon{}, fmt.Errorf("decode polarity lexicon: %w", err)
	}
	if len(lex.Words) == 0 {
		return PolarityLexicon{}, fmt.Errorf("polarity lexicon has no words")
	}
	for w, p := range lex.Words {
		if p < -1 || p > 1 {
			return PolarityLexicon{}, fmt.Errorf("polarity lexicon: %q out of range: %v", w, p)
		}
	}
	return lex, nil
}

func NewPolarityScorer(lex PolarityLexicon) *PolarityScorer {
	s := &PolarityScorer{
		words:        make(map[string]float64, len(lex.Words)),
		intensifiers: make(map[string]float64, len(lex.Intensifiers)),
		negations:    make(map[string]struct{}, len(lex.Negations)),
	}
	for w, p := range lex.Words {
		s.words[strings.ToLower(w)] = p
	}
	for w, f := range lex.Intensifiers {
		s.intensifiers[strings.ToLower(w)] = f
	}
	for _, w := range lex.Negations {
		s.negations[strings.ToLower(w)] = struct{}{}
	}
	return s
}

var defaultPolarity = sync.OnceValues(func() (*PolarityScorer, error) {
	lex, err := ParsePolarityLexicon(polarityYAML)
	if err != nil {
		return nil, err
	}
	return NewPolarityScorer(lex), nil
})

// DefaultPolarityScorer returns the scorer built from the embedded lexicon.
func DefaultPolarityScorer() (*PolarityScorer, error) {
	return defaultPolarity()
}

// Polarity scores text in [-1, 1]. Text without lexicon words scores 0.
func (s *PolarityScorer) Polarity(text string) float64 {
	tokens := polarityTokenRe.FindAllString(strings.ToLower(text), -1)

	var (
		sum      float64
		n        int
		mult     = 1.0
		negateIn = 0
	)
	for _, tok := range tokens {
		if s.isNegation(tok) {
			negateIn = negationWindow
			mult = 1.0
			continue
		}
		if f, ok := s.intensifiers[tok]; ok {
			mult *= f
			continue
		}
		if p, ok := s.words[tok]; ok {
			p *= mult
			if negateIn > 0 {
				p *= negationFactor
			}
			sum += clamp(p)
			n++
			mult = 1.0
			negateIn = 0
			continue
		}
		mult = 1.0
		if negateIn > 0 {
			negateIn--
		}
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

func (s *PolarityScorer) isNegation(tok string) bool {
	if strings.HasSuffix(tok, "n't") {
		return true
	}
	_, ok := s.negations[tok]
	return ok
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
