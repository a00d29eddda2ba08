package analysis

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/straja-ai/agegate/internal/config"
	"github.com/straja-ai/agegate/internal/lexical"
	"github.com/straja-ai/agegate/internal/override"
	"github.com/straja-ai/agegate/internal/sentiment"
	"github.com/straja-ai/agegate/internal/telemetry"
	"github.com/straja-ai/agegate/internal/topics"
	"github.com/straja-ai/agegate/internal/verdict"
)

// Patterns returns the restriction patterns selected by cfg.
func Patterns(cfg config.RestrictionConfig) []lexical.Pattern {
	var out []lexical.Pattern
	if !cfg.DisableBuiltinPatterns {
		out = lexical.DefaultPatterns()
	}
	for _, p := range cfg.Patterns {
		out = append(out, lexical.Pattern{Terms: p.Terms, Except: p.Except})
	}
	return out
}

// Lexicon builds the profanity lexicon selected by cfg.
func Lexicon(cfg config.RestrictionConfig) (lexical.Lexicon, error) {
	var members []lexical.Lexicon
	if !cfg.DisableBuiltinProfanity {
		members = append(members, lexical.NewProfanityLexicon())
	}
	if len(cfg.ProfanityWords) > 0 {
		members = append(members, lexical.NewWordList("config", cfg.ProfanityWords))
	}
	if cfg.ProfanityFile != "" {
		wl, err := lexical.LoadWordList(cfg.ProfanityFile)
		if err != nil {
			return nil, err
		}
		members = append(members, wl)
	}
	switch len(members) {
	case 0:
		return nil, lexical.ErrNoLexicon
	case 1:
		return members[0], nil
	default:
		return lexical.Union(members...), nil
	}
}

// Registry builds the override registry selected by cfg.
func Registry(cfg config.OverridesConfig) *override.Registry {
	lists := override.Lists{Channels: cfg.Channels, Videos: cfg.Videos, Playlists: cfg.Playlists}
	if !cfg.DisableBuiltin {
		lists = override.Merge(override.Default(), lists)
	}
	return override.New(lists)
}

// FromConfig assembles an Analyzer from configuration. Errors here are
// startup errors.
func FromConfig(cfg *config.Config, log zerolog.Logger, tel *telemetry.Provider) (*Analyzer, *lexical.Matcher, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	lex, err := Lexicon(cfg.Restriction)
	if err != nil {
		return nil, nil, fmt.Errorf("build lexicon: %w", err)
	}
	matcher, err := lexical.NewMatcher(Patterns(cfg.Restriction), lex)
	if err != nil {
		return nil, nil, fmt.Errorf("build matcher: %w", err)
	}

	polarity, err := sentiment.DefaultPolarityScorer()
	if err != nil {
		return nil, nil, err
	}
	extractor, err := topics.NewExtractor()
	if err != nil {
		return nil, nil, err
	}

	a, err := New(Options{
		Engine:     verdict.NewEngine(matcher),
		Registry:   Registry(cfg.Overrides),
		Comments:   sentiment.NewCommentAggregator(nil),
		Sentences:  sentiment.NewSentenceAnalyzer(polarity),
		Topics:     extractor,
		TopicCount: cfg.Topics.Count,
		Logger:     log,
		Telemetry:  tel,
	})
	if err != nil {
		return nil, nil, err
	}
	return a, matcher, nil
}
