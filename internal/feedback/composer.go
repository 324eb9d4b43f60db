// Package feedback renders analysis results as a sectioned, human-readable report.
package feedback

import (
	"fmt"
	"strings"

	"github.com/muhammadolammi/cvmatch/internal/gap"
	"github.com/muhammadolammi/cvmatch/internal/requirements"
	"github.com/muhammadolammi/cvmatch/internal/skills"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LowScoreThreshold is the score under which keyword recommendations are added.
const LowScoreThreshold = 60

const bullet = "• "

// Composer builds report text. It is safe for concurrent use.
type Composer struct {
	tag language.Tag
	msg messages
}

// Option configures a Composer.
type Option func(*Composer)

// WithLocale selects the report language. Unsupported tags fall back to Brazilian Portuguese.
func WithLocale(tag language.Tag) Option {
	return func(c *Composer) {
		c.tag, c.msg = lookup(tag)
	}
}

// NewComposer returns a Composer, in Brazilian Portuguese unless WithLocale is given.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{tag: language.BrazilianPortuguese, msg: portuguese}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Locale returns the language reports are written in.
func (c *Composer) Locale() language.Tag {
	return c.tag
}

// Compose renders the lexical report. Sections without data are left out, except
// recommendations and general tips which are always present.
func (c *Composer) Compose(found skills.Findings, req requirements.Requirements, res gap.Result, score float64) string {
	var b strings.Builder
	b.WriteString(c.msg.Header)

	if !found.Empty() {
		caser := cases.Title(c.tag)
		c.section(&b, c.msg.Strengths)
		for _, category := range found.Categories() {
			terms := found.Terms(category)
			if len(terms) == 0 {
				continue
			}
			label := caser.String(strings.ReplaceAll(category, "_", " "))
			c.line(&b, bullet+label+": "+strings.Join(terms, ", "))
		}
	}

	if len(req.RequiredSkills) > 0 {
		c.section(&b, c.msg.Requirements)
		if len(res.Matched) > 0 {
			c.line(&b, c.msg.Matched+strings.Join(res.Matched, ", "))
		}
		if len(res.Missing) > 0 {
			c.line(&b, c.msg.Missing+strings.Join(res.Missing, ", "))
		}
	}

	if req.HasExperience() {
		c.section(&b, fmt.Sprintf(c.msg.Experience, *req.ExperienceYears))
	}

	if len(req.Education) > 0 {
		c.section(&b, c.msg.Education)
		for _, edu := range req.Education {
			c.line(&b, bullet+edu)
		}
	}

	c.section(&b, c.msg.Recommendations)
	if score < LowScoreThreshold {
		for _, rec := range c.msg.LowScore {
			c.line(&b, bullet+rec)
		}
	}
	if res.HasGaps() {
		for _, rec := range c.msg.Gaps {
			c.line(&b, bullet+rec)
		}
	}

	c.section(&b, c.msg.Tips)
	for _, tip := range c.msg.GeneralTips {
		c.line(&b, bullet+tip)
	}

	return b.String()
}

// Failure renders the message shown in place of a report when analysis failed.
func (c *Composer) Failure(err error) string {
	return fmt.Sprintf(c.msg.Failure, err)
}

// EmptyInput renders the message shown when there is nothing to analyse.
func (c *Composer) EmptyInput() string {
	return c.msg.EmptyInput
}

func (c *Composer) section(b *strings.Builder, title string) {
	b.WriteString("\n\n")
	b.WriteString(title)
}

func (c *Composer) line(b *strings.Builder, s string) {
	b.WriteString("\n")
	b.WriteString(s)
}
