package sentiment

import "strings"

// SentenceRow is the polarity of one transcript sentence.
type SentenceRow struct {
	Sentence string  `json:"sentence"`
	Polarity float64 `json:"polarity"`
	Label    Label   `json:"label"`
}

// TranscriptSentiment is the per-sentence breakdown of a transcript.
type TranscriptSentiment struct {
	Rows         []SentenceRow `json:"rows"`
	Average      float64       `json:"average"`
	Distribution Count         `json:"distribution"`
}

// Polarizer returns a polarity in [-1, 1].
type Polarizer interface {
	Polarity(text string) float64
}

// SentenceAnalyzer splits a transcript on '.' and scores each sentence.
type SentenceAnalyzer struct {
	scorer Polarizer
}

func NewSentenceAnalyzer(p Polarizer) *SentenceAnalyzer {
	return &SentenceAnalyzer{scorer: p}
}

// ClassifyPolarity labels a polarity. Zero is neutral.
func ClassifyPolarity(p float64) Label {
	switch {
	case p > 0:
		return Positive
	case p < 0:
		return Negative
	default:
		return Neutral
	}
}

// SplitSentences splits on '.' and drops blank parts. Kept parts are returned
// unchanged.
func SplitSentences(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ".") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func (a *SentenceAnalyzer) Analyze(text string) TranscriptSentiment {
	ts := TranscriptSentiment{Rows: []SentenceRow{}}
	var sum float64
	for _, s := range SplitSentences(text) {
		p := a.scorer.Polarity(s)
		row := SentenceRow{Sentence: s, Polarity: p, Label: ClassifyPolarity(p)}
		ts.Rows = append(ts.Rows, row)
		ts.Distribution.Add(row.Label)
		sum += p
	}
	if len(ts.Rows) > 0 {
		ts.Average = sum / float64(len(ts.Rows))
	}
	return ts
}
