// Package evaluation measures classifier quality against labelled videos.
package evaluation

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Label is a ground-truth or predicted class.
type Label int

const (
	Safe Label = iota
	Restricted
)

var labelNames = [...]string{Safe: "Safe", Restricted: "Restricted"}

func (l Label) String() string {
	if l < Safe || l > Restricted {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// ParseLabel accepts "Safe" or "Restricted", case-insensitively.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return Safe, nil
	case "restricted":
		return Restricted, nil
	default:
		return 0, fmt.Errorf("unknown label %q", s)
	}
}

// LabelFor maps a restriction decision onto a Label.
func LabelFor(restricted bool) Label {
	if restricted {
		return Restricted
	}
	return Safe
}

// Pair is one labelled prediction.
type Pair struct {
	Actual    Label
	Predicted Label
}

// ClassMetrics are per-class scores.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Metrics summarize a set of predictions. Matrix rows are actual labels and
// columns predicted labels, both ordered Safe, Restricted.
type Metrics struct {
	Matrix   [2][2]int       `json:"confusion_matrix"`
	Accuracy float64         `json:"accuracy"`
	Classes  [2]ClassMetrics `json:"classes"`
	Macro    ClassMetrics    `json:"macro_avg"`
	Weighted ClassMetrics    `json:"weighted_avg"`
	Total    int             `json:"total"`
}

// Compute builds the confusion matrix and scores. Undefined ratios (zero
// denominators) are reported as 0.
func Compute(pairs []Pair) Metrics {
	var m Metrics
	for _, p := range pairs {
		m.Matrix[p.Actual][p.Predicted]++
	}
	m.Total = len(pairs)
	if m.Total == 0 {
		return m
	}

	correct := m.Matrix[Safe][Safe] + m.Matrix[Restricted][Restricted]
	m.Accuracy = float64(correct) / float64(m.Total)

	for c := Safe; c <= Restricted; c++ {
		other := 1 - c
		tp := m.Matrix[c][c]
		fp := m.Matrix[other][c]
		fn := m.Matrix[c][other]

		cm := ClassMetrics{
			Precision: ratio(tp, tp+fp),
			Recall:    ratio(tp, tp+fn),
			Support:   tp + fn,
		}
		if cm.Precision+cm.Recall > 0 {
			cm.F1 = 2 * cm.Precision * cm.Recall / (cm.Precision + cm.Recall)
		}
		m.Classes[c] = cm

		m.Macro.Precision += cm.Precision / 2
		m.Macro.Recall += cm.Recall / 2
		m.Macro.F1 += cm.F1 / 2

		w := float64(cm.Support) / float64(m.Total)
		m.Weighted.Precision += cm.Precision * w
		m.Weighted.Recall += cm.Recall * w
		m.Weighted.F1 += cm.F1 * w
	}
	m.Macro.Support = m.Total
	m.Weighted.Support = m.Total
	return m
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Report writes a confusion matrix and a classification report table.
func (m Metrics) Report(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Confusion Matrix\t\t\t\n")
	fmt.Fprintf(tw, "\tpred Safe\tpred Restricted\t\n")
	fmt.Fprintf(tw, "actual Safe\t%d\t%d\t\n", m.Matrix[Safe][Safe], m.Matrix[Safe][Restricted])
	fmt.Fprintf(tw, "actual Restricted\t%d\t%d\t\n", m.Matrix[Restricted][Safe], m.Matrix[Restricted][Restricted])
	fmt.Fprintf(tw, "\t\t\t\n")
	fmt.Fprintf(tw, "\tprecision\trecall\tf1-score\tsupport\t\n")
	for c := Safe; c <= Restricted; c++ {
		writeRow(tw, c.String(), m.Classes[c])
	}
	fmt.Fprintf(tw, "accuracy\t\t\t%.2f\t%d\t\n", m.Accuracy, m.Total)
	writeRow(tw, "macro avg", m.Macro)
	writeRow(tw, "weighted avg", m.Weighted)
	return tw.Flush()
}

func writeRow(w io.Writer, name string, c ClassMetrics) {
	fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%d\t\n", name, c.Precision, c.Recall, c.F1, c.Support)
}
