// Package analysis matches a résumé against a job description and produces a report.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/muhammadolammi/cvmatch/internal/feedback"
)

// Report is the result handed to callers. UsingAI tells which strategy produced it and
// therefore how SimilarityScore should be read.
type Report struct {
	SimilarityScore float64 `json:"similarity_score"`
	Feedback        string  `json:"feedback"`
	UsingAI         bool    `json:"using_ai"`
}

// Options are per-request settings.
type Options struct {
	Strategy StrategyName `json:"strategy"`
}

// Analyzer selects a strategy per request and turns every failure into a report.
type Analyzer struct {
	lexical   Strategy
	narrative Strategy
	composer  *feedback.Composer
	logger    *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithNarrative enables the narrative strategy.
func WithNarrative(s Strategy) Option {
	return func(a *Analyzer) { a.narrative = s }
}

// WithComposer sets the composer used for failure and empty-input messages.
func WithComposer(c *feedback.Composer) Option {
	return func(a *Analyzer) { a.composer = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// New returns an Analyzer that uses lexical unless the narrative strategy is configured
// and requested.
func New(lexical Strategy, opts ...Option) *Analyzer {
	a := &Analyzer{lexical: lexical}
	for _, opt := range opts {
		opt(a)
	}
	if a.composer == nil {
		a.composer = feedback.NewComposer()
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// NarrativeEnabled reports whether a narrative strategy is configured.
func (a *Analyzer) NarrativeEnabled() bool {
	return a.narrative != nil
}

// Analyze always returns a well-formed report. Blank input, strategy errors and panics
// yield a zero score with an explanatory message.
func (a *Analyzer) Analyze(ctx context.Context, cvText, jobText string, opts Options) (report Report) {
	if strings.TrimSpace(cvText) == "" && strings.TrimSpace(jobText) == "" {
		return Report{SimilarityScore: 0, Feedback: a.composer.EmptyInput()}
	}

	strategy := a.pick(opts.Strategy)
	logger := a.logger.With(slog.String("strategy", string(strategy.Name())))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("analysis panicked", slog.Any("panic", r))
			report = Report{
				SimilarityScore: 0,
				Feedback:        a.composer.Failure(fmt.Errorf("%v", r)),
				UsingAI:         strategy.Name() == StrategyNarrative,
			}
		}
	}()

	report, err := strategy.Analyze(ctx, cvText, jobText)
	if err != nil {
		logger.Warn("analysis failed", slog.Any("error", err), slog.Duration("elapsed", time.Since(start)))
		return Report{
			SimilarityScore: 0,
			Feedback:        a.composer.Failure(err),
			UsingAI:         strategy.Name() == StrategyNarrative,
		}
	}

	logger.Debug("analysis completed",
		slog.Float64("score", report.SimilarityScore),
		slog.Duration("elapsed", time.Since(start)),
	)
	return report
}

func (a *Analyzer) pick(name StrategyName) Strategy {
	if name == StrategyNarrative {
		if a.narrative != nil {
			return a.narrative
		}
		a.logger.Warn("narrative strategy requested but not configured, using lexical")
	}
	return a.lexical
}
