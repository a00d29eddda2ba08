package evaluation

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/straja-ai/agegate/internal/analysis"
)

// Case is one labelled video in a JSONL dataset.
type Case struct {
	Label string         `json:"label"`
	Input analysis.Input `json:"input"`
}

// Analyzer is the part of the pipeline a dataset run needs.
type Analyzer interface {
	Analyze(ctx context.Context, in analysis.Input) *analysis.Report
}

// DecodeCases reads one JSON case per line. Blank lines are skipped.
func DecodeCases(r io.Reader) ([]Case, error) {
	var cases []Case
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var c Case
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("dataset line %d: %w", line, err)
		}
		if _, err := ParseLabel(c.Label); err != nil {
			return nil, fmt.Errorf("dataset line %d: %w", line, err)
		}
		cases = append(cases, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return cases, nil
}

// RunDataset analyzes cases with at most workers concurrent analyses and
// returns predictions in case order.
func RunDataset(ctx context.Context, a Analyzer, cases []Case, workers int) ([]Pair, error) {
	if workers <= 0 {
		workers = 1
	}
	pairs := make([]Pair, len(cases))
	for i, c := range cases {
		actual, err := ParseLabel(c.Label)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		pairs[i].Actual = actual
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep := a.Analyze(ctx, c.Input)
			pairs[i].Predicted = LabelFor(rep.Verdict.Restricted)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}
