package telemetry

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestSafeAttributesFiltersFreeText(t *testing.T) {
	kvs := map[string]interface{}{
		"transcript":                "outside namespace",
		"agegate.transcript_text":   "drop",
		"agegate.comment.body":      "drop",
		"agegate.video.title":       "drop",
		"agegate.topics":            []string{"drop"},
		"agegate.api_key":           "sk-123",
		"agegate.long_string":       string(make([]byte, 600)),
		"agegate.unsupported":       struct{}{},
		"agegate.video_id":          "NkZFnpDhdCk",
		"agegate.restricted":        true,
		"agegate.matches":           3,
		"agegate.degraded_sections": []string{"no_comments"},
	}

	attrs := SafeAttributes(kvs)
	var got []string
	for _, a := range attrs {
		got = append(got, string(a.Key))
	}
	want := []string{"agegate.degraded_sections", "agegate.matches", "agegate.restricted", "agegate.video_id"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSafeAttributesEmpty(t *testing.T) {
	if attrs := SafeAttributes(nil); attrs != nil {
		t.Fatalf("expected nil, got %v", attrs)
	}
	if attrs := SafeAttributes(map[string]interface{}{"agegate.": "x"}); len(attrs) != 0 {
		t.Fatalf("bare namespace must be dropped, got %v", attrs)
	}
}

func TestNoopProviderIsUsable(t *testing.T) {
	p := Noop()
	if p.Enabled {
		t.Fatalf("noop provider must be disabled")
	}
	ctx, span := p.StartSpan(context.Background(), "analysis", map[string]interface{}{"agegate.video_id": "x"})
	span.End()
	p.RecordAnalysis(ctx, true, []string{"lexical"}, 12.5, 2, []string{"no_comments"})
	p.Shutdown(ctx)

	var nilProvider *Provider
	nilProvider.RecordAnalysis(ctx, false, nil, 1, 0, nil)
	_, span = nilProvider.StartSpan(ctx, "x", nil)
	span.End()
}

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{}, zerologNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Enabled {
		t.Fatalf("expected disabled provider")
	}
}

func TestNewProviderRejectsProtocol(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, Endpoint: "localhost:4317", Protocol: "udp"}, zerologNop())
	if err == nil {
		t.Fatalf("expected error for unsupported protocol")
	}
}

func zerologNop() zerolog.Logger { return zerolog.Nop() }
