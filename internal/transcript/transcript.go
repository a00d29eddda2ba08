package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Segment is one timed caption line.
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration,omitempty"`
	Text     string  `json:"text"`
}

// Text joins segment texts with a single space. A nil or all-blank
// transcript yields "".
func Text(segs []Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, s.Text)
	}
	joined := strings.Join(parts, " ")
	if strings.TrimSpace(joined) == "" {
		return ""
	}
	return joined
}

// Timestamp formats seconds as MM:SS. Minutes are not wrapped into hours.
func Timestamp(start float64) string {
	if start < 0 {
		start = 0
	}
	total := int(start)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Export writes "[MM:SS] text" blocks separated by blank lines.
func Export(w io.Writer, segs []Segment) error {
	bw := bufio.NewWriter(w)
	for _, s := range segs {
		if _, err := fmt.Fprintf(bw, "[%s] %s\n\n", Timestamp(s.Start), s.Text); err != nil {
			return fmt.Errorf("export transcript: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export transcript: %w", err)
	}
	return nil
}

// Decode reads a JSON array of segments.
func Decode(r io.Reader) ([]Segment, error) {
	var segs []Segment
	if err := json.NewDecoder(r).Decode(&segs); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	for i, s := range segs {
		if s.Start < 0 {
			return nil, fmt.Errorf("decode transcript: segment %d has negative start", i)
		}
	}
	return segs, nil
}
