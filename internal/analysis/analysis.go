// Package analysis runs the full per-video classification pipeline: the
// restriction verdict plus comment sentiment, transcript sentiment and key
// topics. Enrichment sections degrade independently and never block the
// verdict.
package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/straja-ai/agegate/internal/override"
	"github.com/straja-ai/agegate/internal/redact"
	"github.com/straja-ai/agegate/internal/sentiment"
	"github.com/straja-ai/agegate/internal/telemetry"
	"github.com/straja-ai/agegate/internal/topics"
	"github.com/straja-ai/agegate/internal/transcript"
	"github.com/straja-ai/agegate/internal/verdict"
)

// Reasons a section may be unavailable.
const (
	ReasonNoTranscript     = "no_transcript"
	ReasonNoComments       = "no_comments"
	ReasonNoSentences      = "no_sentences"
	ReasonTooShort         = "too_short"
	ReasonNoSentencesFound = "no_sentences_found"
	ReasonTokenizeFailed   = "tokenize_failed"
)

// Metadata is the platform information about a video.
type Metadata struct {
	VideoID            string `json:"video_id"`
	ChannelID          string `json:"channel_id,omitempty"`
	ChannelTitle       string `json:"channel_title,omitempty"`
	Title              string `json:"title,omitempty"`
	PlaylistID         string `json:"playlist_id,omitempty"`
	PlatformRestricted bool   `json:"platform_restricted"`
	Views              int64  `json:"views,omitempty"`
	Likes              int64  `json:"likes,omitempty"`
	CommentCount       int64  `json:"comment_count,omitempty"`
}

// Input is everything known about one video. A nil Transcript means no
// transcript could be obtained.
type Input struct {
	Metadata   Metadata             `json:"metadata"`
	Transcript []transcript.Segment `json:"transcript"`
	Comments   []string             `json:"comments"`
	TopicCount int                  `json:"topic_count,omitempty"`
}

// Status reports whether an enrichment section was produced.
type Status struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type CommentSection struct {
	Status
	Counts sentiment.Count `json:"counts"`
}

type TranscriptSection struct {
	Status
	Sentiment *sentiment.TranscriptSentiment `json:"sentiment,omitempty"`
}

type TopicSection struct {
	Status
	Topics []string `json:"topics"`
}

// Report is the result of one analysis.
type Report struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	DurationMs float64           `json:"duration_ms"`
	Metadata   Metadata          `json:"metadata"`
	Verdict    verdict.Verdict   `json:"verdict"`
	Override   override.Match    `json:"override"`
	Comments   CommentSection    `json:"comments"`
	Transcript TranscriptSection `json:"transcript"`
	Topics     TopicSection      `json:"topics"`
}

// Degraded lists the reasons of unavailable sections in report order.
func (r *Report) Degraded() []string {
	var out []string
	for _, s := range []Status{r.Comments.Status, r.Transcript.Status, r.Topics.Status} {
		if !s.Available && s.Reason != "" {
			out = append(out, s.Reason)
		}
	}
	return out
}

// TopicExtractor picks key sentences from a transcript.
type TopicExtractor interface {
	Extract(text string, count int) ([]string, error)
}

// Recorder observes finished reports, e.g. for Prometheus.
type Recorder interface {
	ObserveReport(r *Report)
}

// Options wires an Analyzer. Engine, Registry, Comments, Sentences and Topics
// are required.
type Options struct {
	Engine     *verdict.Engine
	Registry   *override.Registry
	Comments   *sentiment.CommentAggregator
	Sentences  *sentiment.SentenceAnalyzer
	Topics     TopicExtractor
	TopicCount int

	Logger    zerolog.Logger
	Telemetry *telemetry.Provider
	Recorders []Recorder
	Now       func() time.Time
}

// Analyzer is safe for concurrent use when its components are.
type Analyzer struct {
	engine     *verdict.Engine
	registry   *override.Registry
	comments   *sentiment.CommentAggregator
	sentences  *sentiment.SentenceAnalyzer
	topics     TopicExtractor
	topicCount int

	log       zerolog.Logger
	tel       *telemetry.Provider
	recorders []Recorder
	now       func() time.Time
}

var errMissingComponent = errors.New("analysis: missing pipeline component")

func New(opts Options) (*Analyzer, error) {
	if opts.Engine == nil || opts.Registry == nil || opts.Comments == nil || opts.Sentences == nil || opts.Topics == nil {
		return nil, errMissingComponent
	}
	a := &Analyzer{
		engine:     opts.Engine,
		registry:   opts.Registry,
		comments:   opts.Comments,
		sentences:  opts.Sentences,
		topics:     opts.Topics,
		topicCount: opts.TopicCount,
		log:        opts.Logger,
		tel:        opts.Telemetry,
		recorders:  opts.Recorders,
		now:        opts.Now,
	}
	if a.topicCount <= 0 {
		a.topicCount = topics.DefaultCount
	}
	if a.tel == nil {
		a.tel = telemetry.Noop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a, nil
}

// Registry returns the override registry the analyzer consults.
func (a *Analyzer) Registry() *override.Registry { return a.registry }

// AddRecorder registers an observer. It must be called before the analyzer
// is shared between goroutines.
func (a *Analyzer) AddRecorder(r Recorder) {
	a.recorders = append(a.recorders, r)
}

// Analyze classifies one video. It is synchronous and never fails: missing or
// unusable inputs are reported through section statuses.
func (a *Analyzer) Analyze(ctx context.Context, in Input) *Report {
	start := a.now()
	meta := in.Metadata

	ctx, span := a.tel.StartSpan(ctx, "agegate.analyze", map[string]interface{}{
		"agegate.video_id":   meta.VideoID,
		"agegate.channel_id": meta.ChannelID,
		"agegate.segments":   len(in.Transcript),
	})
	defer span.End()
	span.SetAttributes(attribute.Int("agegate.comment_count", len(in.Comments)))

	rep := &Report{
		ID:        uuid.NewString(),
		CreatedAt: start.UTC(),
		Metadata:  meta,
	}

	text := transcript.Text(in.Transcript)
	available := text != ""

	a.decide(ctx, rep, text, available)
	a.scoreComments(ctx, rep, in.Comments)
	a.scoreTranscript(ctx, rep, text, available)
	count := in.TopicCount
	if count <= 0 {
		count = a.topicCount
	}
	a.extractTopics(ctx, rep, text, available, count)

	rep.DurationMs = float64(a.now().Sub(start).Microseconds()) / 1000

	degraded := rep.Degraded()
	span.SetAttributes(
		attribute.Bool("agegate.restricted", rep.Verdict.Restricted),
		attribute.StringSlice("agegate.reasons", rep.Verdict.Reasons),
		attribute.StringSlice("agegate.degraded", degraded),
	)
	keywordMatches := 0
	if rep.Verdict.Lexical != nil {
		keywordMatches = rep.Verdict.Lexical.KeywordMatches
	}
	a.tel.RecordAnalysis(ctx, rep.Verdict.Restricted, rep.Verdict.Reasons, rep.DurationMs, keywordMatches, degraded)
	for _, r := range a.recorders {
		r.ObserveReport(rep)
	}
	a.logReport(rep, degraded)
	return rep
}

func (a *Analyzer) decide(ctx context.Context, rep *Report, text string, available bool) {
	_, span := a.tel.StartSpan(ctx, "agegate.verdict", nil)
	defer span.End()

	meta := rep.Metadata
	rep.Override = a.registry.Check(meta.ChannelID, meta.VideoID, meta.PlaylistID)
	rep.Verdict = a.engine.Decide(verdict.Signals{
		Transcript:          text,
		TranscriptAvailable: available,
		SourceOverride:      rep.Override.Any(),
		PlatformRestricted:  meta.PlatformRestricted,
	})
	span.SetAttributes(attribute.Int("agegate.matched_keywords", len(rep.Verdict.MatchedKeywords)))
}

func (a *Analyzer) scoreComments(ctx context.Context, rep *Report, comments []string) {
	_, span := a.tel.StartSpan(ctx, "agegate.comments", nil)
	defer span.End()

	rep.Comments.Counts = a.comments.Aggregate(comments)
	if len(comments) == 0 {
		rep.Comments.Status = Status{Reason: ReasonNoComments}
		return
	}
	rep.Comments.Status = Status{Available: true}
}

func (a *Analyzer) scoreTranscript(ctx context.Context, rep *Report, text string, available bool) {
	_, span := a.tel.StartSpan(ctx, "agegate.transcript_sentiment", nil)
	defer span.End()

	if !available {
		rep.Transcript.Status = Status{Reason: ReasonNoTranscript}
		return
	}
	ts := a.sentences.Analyze(text)
	if len(ts.Rows) == 0 {
		rep.Transcript.Status = Status{Reason: ReasonNoSentences}
		return
	}
	rep.Transcript.Status = Status{Available: true}
	rep.Transcript.Sentiment = &ts
	span.SetAttributes(attribute.Int("agegate.sentences", len(ts.Rows)))
}

func (a *Analyzer) extractTopics(ctx context.Context, rep *Report, text string, available bool, count int) {
	_, span := a.tel.StartSpan(ctx, "agegate.topics", nil)
	defer span.End()

	rep.Topics.Topics = []string{}
	if !available {
		rep.Topics.Status = Status{Reason: ReasonNoTranscript}
		return
	}
	got, err := a.topics.Extract(text, count)
	if err != nil {
		span.RecordError(err)
		rep.Topics.Status = Status{Reason: topicReason(err)}
		a.log.Debug().Err(err).Str("report_id", rep.ID).Msg("topic extraction unavailable")
		return
	}
	rep.Topics.Status = Status{Available: true}
	rep.Topics.Topics = got
	span.SetAttributes(attribute.Int("agegate.topics", len(got)))
}

func topicReason(err error) string {
	switch {
	case errors.Is(err, topics.ErrTooShort):
		return ReasonTooShort
	case errors.Is(err, topics.ErrNoSentences):
		return ReasonNoSentencesFound
	default:
		return ReasonTokenizeFailed
	}
}

func (a *Analyzer) logReport(rep *Report, degraded []string) {
	evt := a.log.Info()
	if rep.Verdict.Restricted {
		evt = a.log.Warn()
	}
	evt.
		Str("report_id", rep.ID).
		Str("video_id", rep.Metadata.VideoID).
		Bool("restricted", rep.Verdict.Restricted).
		Strs("reasons", rep.Verdict.Reasons).
		Strs("matched_terms", redact.Terms(rep.Verdict.MatchedKeywords)).
		Strs("override", rep.Override.Kinds()).
		Strs("degraded", degraded).
		Float64("duration_ms", rep.DurationMs).
		Msg("analysis complete")
}
