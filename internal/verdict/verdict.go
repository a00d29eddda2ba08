package verdict

import (
	"strings"

	"github.com/straja-ai/agegate/internal/lexical"
)

// Reason names a signal that contributed to a restriction.
const (
	ReasonSourceOverride = "source_override"
	ReasonPlatformFlag   = "platform_flag"
	ReasonLexical        = "lexical"
)

// Signals are the independent inputs to a restriction decision.
type Signals struct {
	Transcript          string
	TranscriptAvailable bool
	SourceOverride      bool
	PlatformRestricted  bool
}

// Verdict is the fused decision. MatchedKeywords only carries lexical evidence
// and is never nil.
type Verdict struct {
	Restricted            bool            `json:"is_restricted"`
	MatchedKeywords       []string        `json:"matched_keywords"`
	SourceOverrideApplied bool            `json:"source_override_applied"`
	Reasons               []string        `json:"reasons"`
	Lexical               *lexical.Result `json:"lexical,omitempty"`
}

// Evaluator is the lexical stage of a decision.
type Evaluator interface {
	Evaluate(text string) lexical.Result
}

// Engine combines override, platform and lexical signals. Any single signal
// restricts; no signal can clear another.
type Engine struct {
	lexical Evaluator
}

func NewEngine(ev Evaluator) *Engine {
	return &Engine{lexical: ev}
}

func (e *Engine) Decide(s Signals) Verdict {
	v := Verdict{
		MatchedKeywords:       []string{},
		SourceOverrideApplied: s.SourceOverride,
		Reasons:               []string{},
	}

	lexicalRestricted := false
	if s.TranscriptAvailable && strings.TrimSpace(s.Transcript) != "" && e.lexical != nil {
		res := e.lexical.Evaluate(s.Transcript)
		v.Lexical = &res
		lexicalRestricted = res.Restricted
		if res.Restricted {
			v.MatchedKeywords = append(v.MatchedKeywords, res.MatchedTerms...)
		}
	}

	if s.SourceOverride {
		v.Reasons = append(v.Reasons, ReasonSourceOverride)
	}
	if s.PlatformRestricted {
		v.Reasons = append(v.Reasons, ReasonPlatformFlag)
	}
	if lexicalRestricted {
		v.Reasons = append(v.Reasons, ReasonLexical)
	}
	v.Restricted = s.SourceOverride || s.PlatformRestricted || lexicalRestricted
	return v
}
