package topics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// DefaultCount is the number of topics returned when the caller asks for none.
const DefaultCount = 10

const (
	defaultThreshold = 0.1
	defaultEpsilon   = 0.1
	minWords         = 3
)

var (
	ErrTooShort    = errors.New("topics: text too short to summarize")
	ErrNoSentences = errors.New("topics: no sentences found")
	ErrTokenize    = errors.New("topics: sentence tokenizer failed")
)

// Extractor picks the most central sentences of a text with LexRank.
type Extractor struct {
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
	threshold float64
	epsilon   float64
}

func NewExtractor() (*Extractor, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}
	return &Extractor{tokenizer: tok, threshold: defaultThreshold, epsilon: defaultEpsilon}, nil
}

// Extract returns up to count key sentences in document order. On error the
// returned slice is empty and non-nil.
func (e *Extractor) Extract(text string, count int) ([]string, error) {
	if count <= 0 {
		count = DefaultCount
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, ErrNoSentences
	}
	if len(words(text)) < minWords {
		return []string{}, ErrTooShort
	}

	sents, err := e.split(text)
	if err != nil {
		return []string{}, err
	}
	if len(sents) == 0 {
		return []string{}, ErrNoSentences
	}

	content := make([][]string, len(sents))
	for i, s := range sents {
		content[i] = contentWords(s)
	}
	ratings := rank(content, e.threshold, e.epsilon)

	order := make([]int, len(sents))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ratings[order[a]] > ratings[order[b]]
	})
	if len(order) > count {
		order = order[:count]
	}
	sort.Ints(order)

	out := make([]string, 0, len(order))
	for _, i := range order {
		out = append(out, sents[i])
	}
	return out, nil
}

func (e *Extractor) split(text string) (out []string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrTokenize, r)
		}
	}()

	for _, s := range e.tokenizer.Tokenize(text) {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
