// Package taxonomy holds the category → skill term dictionary used for keyword spotting.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a named, ordered list of lowercase skill terms.
type Category struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// Taxonomy is an immutable, ordered set of categories. The zero value is empty.
type Taxonomy struct {
	categories []Category
	terms      map[string]bool
	maxWords   int
}

// New builds a Taxonomy from the given categories. Terms are lowercased and trimmed;
// empty terms are dropped.
func New(categories ...Category) Taxonomy {
	t := Taxonomy{
		categories: make([]Category, 0, len(categories)),
		terms:      make(map[string]bool),
	}
	for _, c := range categories {
		cp := Category{Name: c.Name, Terms: make([]string, 0, len(c.Terms))}
		for _, term := range c.Terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			cp.Terms = append(cp.Terms, term)
			t.terms[term] = true
			if n := len(strings.Fields(term)); n > t.maxWords {
				t.maxWords = n
			}
		}
		t.categories = append(t.categories, cp)
	}
	return t
}

// Categories returns a copy of the categories in taxonomy order.
func (t Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Terms: append([]string(nil), c.Terms...)}
	}
	return out
}

// Contains reports whether term equals (case-insensitively) any term of any category.
func (t Taxonomy) Contains(term string) bool {
	return t.terms[strings.ToLower(strings.TrimSpace(term))]
}

// MaxTermWords is the word count of the longest multi-word term.
func (t Taxonomy) MaxTermWords() int {
	return t.maxWords
}

// Len returns the number of categories.
func (t Taxonomy) Len() int {
	return len(t.categories)
}

// TermCount returns the number of distinct terms across all categories.
func (t Taxonomy) TermCount() int {
	return len(t.terms)
}

// Load reads a taxonomy from a YAML file shaped as a list of {name, terms} entries.
func Load(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML taxonomy document.
func Parse(data []byte) (Taxonomy, error) {
	var categories []Category
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return Taxonomy{}, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	seen := make(map[string]bool, len(categories))
	for i, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			return Taxonomy{}, fmt.Errorf("taxonomy entry %d has no name", i)
		}
		if seen[c.Name] {
			return Taxonomy{}, fmt.Errorf("duplicate taxonomy category %q", c.Name)
		}
		seen[c.Name] = true
	}
	return New(categories...), nil
}
