package evaluation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	actualColumn    = "Actual Label"
	predictedColumn = "Predicted Label"
)

// LoadLabelsCSV reads labelled predictions from a CSV with "Actual Label" and
// "Predicted Label" columns. Other columns are ignored.
func LoadLabelsCSV(r io.Reader) ([]Pair, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("labels csv is empty")
		}
		return nil, fmt.Errorf("read labels header: %w", err)
	}
	actualIdx, predIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case actualColumn:
			actualIdx = i
		case predictedColumn:
			predIdx = i
		}
	}
	if actualIdx < 0 || predIdx < 0 {
		return nil, fmt.Errorf("labels csv needs %q and %q columns", actualColumn, predictedColumn)
	}

	var pairs []Pair
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read labels row %d: %w", row, err)
		}
		if actualIdx >= len(rec) || predIdx >= len(rec) {
			return nil, fmt.Errorf("labels row %d: missing label columns", row)
		}
		actual, err := ParseLabel(rec[actualIdx])
		if err != nil {
			return nil, fmt.Errorf("labels row %d: actual: %w", row, err)
		}
		pred, err := ParseLabel(rec[predIdx])
		if err != nil {
			return nil, fmt.Errorf("labels row %d: predicted: %w", row, err)
		}
		pairs = append(pairs, Pair{Actual: actual, Predicted: pred})
	}
	return pairs, nil
}
