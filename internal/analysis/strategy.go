package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/muhammadolammi/cvmatch/internal/feedback"
	"github.com/muhammadolammi/cvmatch/internal/gap"
	"github.com/muhammadolammi/cvmatch/internal/narrative"
	"github.com/muhammadolammi/cvmatch/internal/requirements"
	"github.com/muhammadolammi/cvmatch/internal/scoring"
	"github.com/muhammadolammi/cvmatch/internal/skills"
	"github.com/muhammadolammi/cvmatch/internal/taxonomy"
)

// StrategyName selects the scoring and feedback backend.
type StrategyName string

const (
	StrategyLexical   StrategyName = "lexical"
	StrategyNarrative StrategyName = "narrative"
)

// ParseStrategy maps user input to a StrategyName. Empty input means lexical.
func ParseStrategy(s string) (StrategyName, error) {
	switch StrategyName(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyLexical:
		return StrategyLexical, nil
	case StrategyNarrative:
		return StrategyNarrative, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want %q or %q)", s, StrategyLexical, StrategyNarrative)
	}
}

// Strategy produces a report for one résumé/job pair. Errors are returned, not rendered.
type Strategy interface {
	Name() StrategyName
	Analyze(ctx context.Context, cvText, jobText string) (Report, error)
}

// LexicalStrategy scores by token-set overlap and explains the score with dictionary and
// pattern matching. It makes no external calls.
type LexicalStrategy struct {
	extractor *skills.Extractor
	parser    *requirements.Parser
	composer  *feedback.Composer
}

// NewLexicalStrategy wires the extractor and parser to tax.
func NewLexicalStrategy(tax taxonomy.Taxonomy, composer *feedback.Composer) (*LexicalStrategy, error) {
	parser, err := requirements.NewParser(tax)
	if err != nil {
		return nil, err
	}
	if composer == nil {
		composer = feedback.NewComposer()
	}
	return &LexicalStrategy{
		extractor: skills.NewExtractor(tax),
		parser:    parser,
		composer:  composer,
	}, nil
}

func (s *LexicalStrategy) Name() StrategyName { return StrategyLexical }

// Analyze runs extraction, requirement parsing, gap analysis and scoring, then composes
// the report text. It stops early once ctx is done.
func (s *LexicalStrategy) Analyze(ctx context.Context, cvText, jobText string) (Report, error) {
	found := s.extractor.Extract(cvText)
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	req := s.parser.Parse(jobText)
	res := gap.Analyze(found, req)
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	score, err := scoring.TokenSetRatioContext(ctx, cvText, jobText)
	if err != nil {
		return Report{}, err
	}

	return Report{
		SimilarityScore: score,
		Feedback:        s.composer.Compose(found, req, res, score),
		UsingAI:         false,
	}, nil
}

// DefaultNarrativeTimeout bounds a single generation call.
const DefaultNarrativeTimeout = 2 * time.Minute

// NarrativeStrategy delegates the feedback text to a Generator and scores it by length.
type NarrativeStrategy struct {
	gen     narrative.Generator
	timeout time.Duration
}

// NewNarrativeStrategy wraps gen. A non-positive timeout uses DefaultNarrativeTimeout.
func NewNarrativeStrategy(gen narrative.Generator, timeout time.Duration) *NarrativeStrategy {
	if timeout <= 0 {
		timeout = DefaultNarrativeTimeout
	}
	return &NarrativeStrategy{gen: gen, timeout: timeout}
}

func (s *NarrativeStrategy) Name() StrategyName { return StrategyNarrative }

// Analyze sends the analysis prompt to the generator under the strategy timeout.
func (s *NarrativeStrategy) Analyze(ctx context.Context, cvText, jobText string) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, narrative.BuildPrompt(cvText, jobText))
	if err != nil {
		return Report{UsingAI: true}, narrative.Classify("narrative", err)
	}
	return ComposeFromNarrative(text), nil
}

// ComposeFromNarrative turns generated text into a report.
func ComposeFromNarrative(text string) Report {
	return Report{
		SimilarityScore: scoring.NarrativeScore(text),
		Feedback:        text,
		UsingAI:         true,
	}
}
