// Package skills spots taxonomy terms in free text.
package skills

import (
	"strings"

	"github.com/muhammadolammi/cvmatch/internal/taxonomy"
)

// Findings maps category names to the terms found for them, in taxonomy order.
// Categories with no hits are absent.
type Findings struct {
	order []string
	terms map[string][]string
}

// NewFindings builds Findings from explicit category/term pairs, keeping the given order.
// Empty categories are dropped.
func NewFindings(categories ...taxonomy.Category) Findings {
	f := Findings{terms: make(map[string][]string)}
	for _, c := range categories {
		for _, term := range c.Terms {
			f.add(c.Name, term)
		}
	}
	return f
}

func (f *Findings) add(category, term string) {
	if f.terms == nil {
		f.terms = make(map[string][]string)
	}
	if _, ok := f.terms[category]; !ok {
		f.order = append(f.order, category)
	}
	f.terms[category] = append(f.terms[category], term)
}

// Categories returns the names of categories with at least one term.
func (f Findings) Categories() []string {
	return append([]string(nil), f.order...)
}

// Terms returns the terms found for category.
func (f Findings) Terms(category string) []string {
	return append([]string(nil), f.terms[category]...)
}

// All returns every found term, flattened in category order.
func (f Findings) All() []string {
	var out []string
	for _, c := range f.order {
		out = append(out, f.terms[c]...)
	}
	return out
}

// Empty reports whether nothing was found.
func (f Findings) Empty() bool {
	return len(f.order) == 0
}

// Extractor scans text against a taxonomy.
type Extractor struct {
	tax taxonomy.Taxonomy
}

// NewExtractor returns an Extractor bound to tax.
func NewExtractor(tax taxonomy.Taxonomy) *Extractor {
	return &Extractor{tax: tax}
}

// Extract returns the taxonomy terms contained in text. Matching is plain substring
// containment on the lowercased text.
func (e *Extractor) Extract(text string) Findings {
	var f Findings
	if text == "" {
		return f
	}
	lower := strings.ToLower(text)
	for _, c := range e.tax.Categories() {
		for _, term := range c.Terms {
			if strings.Contains(lower, term) {
				f.add(c.Name, term)
			}
		}
	}
	return f
}
