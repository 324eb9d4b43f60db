// Package requirements pulls required skills, years of experience and education
// requirements out of a job description with an ordered list of regular expressions.
package requirements

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/muhammadolammi/cvmatch/internal/taxonomy"
)

// matchTimeout bounds a single pattern evaluation.
const matchTimeout = 2 * time.Second

// phraseExpr matches word-like runs (keeping + and # for c++ / c#) joined by spaces or tabs.
var phraseExpr = regexp2.MustCompile(`[\w+#]+(?:[ \t]+[\w+#]+)*`, regexp2.None)

func init() {
	phraseExpr.MatchTimeout = matchTimeout
}

// Requirements is what a job description asks for.
type Requirements struct {
	RequiredSkills  []string `json:"required_skills"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Education       []string `json:"education"`
}

// HasExperience reports whether a years-of-experience requirement was found.
func (r Requirements) HasExperience() bool {
	return r.ExperienceYears != nil
}

// Empty reports whether nothing at all was extracted.
func (r Requirements) Empty() bool {
	return len(r.RequiredSkills) == 0 && r.ExperienceYears == nil && len(r.Education) == 0
}

type compiledPattern struct {
	Pattern
	re *regexp2.Regexp
}

// Parser extracts Requirements from job text.
type Parser struct {
	tax      taxonomy.Taxonomy
	patterns []compiledPattern
}

// NewParser compiles patterns (DefaultPatterns when none are given). The taxonomy filters
// the whole-text fallback pass.
func NewParser(tax taxonomy.Taxonomy, patterns ...Pattern) (*Parser, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	p := &Parser{tax: tax, patterns: make([]compiledPattern, 0, len(patterns))}
	for _, pat := range patterns {
		re, err := regexp2.Compile(pat.Expr, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", pat.Name, err)
		}
		re.MatchTimeout = matchTimeout
		p.patterns = append(p.patterns, compiledPattern{Pattern: pat, re: re})
	}
	return p, nil
}

// MustNewParser is like NewParser but panics on an invalid pattern.
func MustNewParser(tax taxonomy.Taxonomy, patterns ...Pattern) *Parser {
	p, err := NewParser(tax, patterns...)
	if err != nil {
		panic(err)
	}
	return p
}

// Patterns returns the patterns in evaluation order.
func (p *Parser) Patterns() []Pattern {
	out := make([]Pattern, len(p.patterns))
	for i, cp := range p.patterns {
		out[i] = cp.Pattern
	}
	return out
}

// Parse extracts requirements from jobText. It never fails; a pass that finds nothing
// simply leaves its field empty.
func (p *Parser) Parse(jobText string) Requirements {
	text := normalize(jobText)
	var req Requirements

	sectionFound := false
	for _, cp := range p.patterns {
		if cp.Role != RoleRequiredSection {
			continue
		}
		for _, span := range findAll(cp.re, text) {
			sectionFound = true
			req.RequiredSkills = append(req.RequiredSkills, Tokenize(span)...)
		}
	}
	if !sectionFound {
		req.RequiredSkills = p.taxonomyTerms(text)
	}

	for _, cp := range p.patterns {
		if cp.Role != RoleExperienceYears {
			continue
		}
		if years, ok := firstInt(cp.re, text); ok {
			req.ExperienceYears = &years
			break
		}
	}

	for _, cp := range p.patterns {
		if cp.Role != RoleEducation {
			continue
		}
		req.Education = append(req.Education, findAll(cp.re, text)...)
	}

	return req
}

// Match runs a single pattern against text (after the same normalization Parse applies)
// and returns every extracted value.
func (p *Parser) Match(pat Pattern, text string) ([]string, error) {
	re, err := regexp2.Compile(pat.Expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pat.Name, err)
	}
	re.MatchTimeout = matchTimeout
	return findAll(re, normalize(text)), nil
}

// taxonomyTerms is the fallback pass: taxonomy terms found in the phrases, deduplicated in
// first-seen order. Each word belongs to at most one term, the longest one starting at it.
func (p *Parser) taxonomyTerms(text string) []string {
	maxN := p.tax.MaxTermWords()
	if maxN < 1 {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, phrase := range Tokenize(text) {
		words := strings.Fields(phrase)
		for i := 0; i < len(words); {
			n := p.longestTerm(words[i:], maxN)
			if n == 0 {
				i++
				continue
			}
			if term := strings.Join(words[i:i+n], " "); !seen[term] {
				seen[term] = true
				out = append(out, term)
			}
			i += n
		}
	}
	return out
}

// longestTerm is the word count of the longest taxonomy term that words starts with, or 0.
func (p *Parser) longestTerm(words []string, maxN int) int {
	for n := min(maxN, len(words)); n >= 1; n-- {
		if p.tax.Contains(strings.Join(words[:n], " ")) {
			return n
		}
	}
	return 0
}

// Tokenize splits span into word-like phrases. Inner runs of spaces and tabs collapse to a
// single space.
func Tokenize(span string) []string {
	var out []string
	for _, m := range findAll(phraseExpr, span) {
		out = append(out, strings.Join(strings.Fields(m), " "))
	}
	return out
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ToLower(text)
}

// findAll returns group 1 of every match when the expression has a capture group, the
// whole match otherwise. A match timeout ends the scan early.
func findAll(re *regexp2.Regexp, text string) []string {
	var out []string
	useGroup := len(re.GetGroupNumbers()) > 1
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		if useGroup {
			out = append(out, m.GroupByNumber(1).String())
		} else {
			out = append(out, m.String())
		}
		m, err = re.FindNextMatch(m)
	}
	return out
}

func firstInt(re *regexp2.Regexp, text string) (int, bool) {
	for _, s := range findAll(re, text) {
		n, err := strconv.Atoi(s)
		if err == nil && n >= 0 {
			return n, true
		}
	}
	return 0, false
}
