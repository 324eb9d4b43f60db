package skills

import (
	"testing"

	"github.com/muhammadolammi/cvmatch/internal/taxonomy"
	"github.com/stretchr/testify/assert"
)

func fixture() taxonomy.Taxonomy {
	return taxonomy.New(
		taxonomy.Category{Name: "languages", Terms: []string{"python", "go", "c++"}},
		taxonomy.Category{Name: "cloud", Terms: []string{"docker", "kubernetes"}},
		taxonomy.Category{Name: "soft", Terms: []string{"liderança"}},
	)
}

func TestExtract(t *testing.T) {
	e := NewExtractor(fixture())

	tests := []struct {
		name       string
		text       string
		categories []string
		all        []string
	}{
		{
			name:       "mixed case input",
			text:       "Senior PYTHON developer, Docker and C++",
			categories: []string{"languages", "cloud"},
			all:        []string{"python", "c++", "docker"},
		},
		{
			name:       "taxonomy order within category",
			text:       "kubernetes then docker",
			categories: []string{"cloud"},
			all:        []string{"docker", "kubernetes"},
		},
		{
			name:       "substring hits inside words",
			text:       "good communication",
			categories: []string{"languages"},
			all:        []string{"go"},
		},
		{
			name:       "non-ascii term",
			text:       "Experiência em LIDERANÇA de times",
			categories: []string{"soft"},
			all:        []string{"liderança"},
		},
		{
			name: "empty input",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := e.Extract(tt.text)
			assert.Equal(t, tt.categories, f.Categories())
			assert.Equal(t, tt.all, f.All())
			assert.Equal(t, len(tt.all) == 0, f.Empty())
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	e := NewExtractor(taxonomy.Default())
	text := "Python, React, PostgreSQL, Docker, Scrum, code review"

	assert.Equal(t, e.Extract(text), e.Extract(text))
}

func TestExtractDefaultTaxonomyRFalsePositive(t *testing.T) {
	f := NewExtractor(taxonomy.Default()).Extract("Frontend developer")

	assert.Contains(t, f.Terms("programming_languages"), "r")
}

func TestNewFindings(t *testing.T) {
	f := NewFindings(
		taxonomy.Category{Name: "web", Terms: []string{"react"}},
		taxonomy.Category{Name: "empty"},
	)

	assert.Equal(t, []string{"web"}, f.Categories())
	assert.Equal(t, []string{"react"}, f.Terms("web"))
	assert.Nil(t, f.Terms("empty"))
}
