package gap

import (
	"testing"

	"github.com/muhammadolammi/cvmatch/internal/requirements"
	"github.com/muhammadolammi/cvmatch/internal/skills"
	"github.com/muhammadolammi/cvmatch/internal/taxonomy"
	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	extractor := skills.NewExtractor(taxonomy.Default())

	tests := []struct {
		name     string
		resume   string
		required []string
		matched  []string
		missing  []string
	}{
		{
			name:     "react matched graphql missing",
			resume:   "Frontend engineer working with React",
			required: []string{"react", "graphql"},
			matched:  []string{"react"},
			missing:  []string{"graphql"},
		},
		{
			name:     "case-insensitive requirement",
			resume:   "docker",
			required: []string{"Docker"},
			matched:  []string{"Docker"},
			missing:  []string{},
		},
		{
			name:     "duplicates reported once",
			resume:   "python",
			required: []string{"python", "sql", "python", "sql"},
			matched:  []string{"python"},
			missing:  []string{"sql"},
		},
		{
			name:     "requirement outside the taxonomy is missing",
			resume:   "inglês avançado",
			required: []string{"inglês avançado"},
			matched:  []string{},
			missing:  []string{"inglês avançado"},
		},
		{
			name:    "no requirements",
			resume:  "python",
			matched: []string{},
			missing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Analyze(extractor.Extract(tt.resume), requirements.Requirements{RequiredSkills: tt.required})
			assert.Equal(t, tt.matched, res.Matched)
			assert.Equal(t, tt.missing, res.Missing)
			assert.Equal(t, len(tt.missing) > 0, res.HasGaps())
		})
	}
}

func TestAnalyzePartition(t *testing.T) {
	extractor := skills.NewExtractor(taxonomy.Default())
	parser := requirements.MustNewParser(taxonomy.Default())

	found := extractor.Extract("Python, Django, PostgreSQL, Docker, Scrum")
	req := parser.Parse("Requisitos: Python, Go, Kubernetes, Docker, Python\n\nBenefícios")
	res := Analyze(found, req)

	matched := make(map[string]bool)
	for _, s := range res.Matched {
		matched[s] = true
	}
	union := make(map[string]bool)
	for _, s := range res.Matched {
		union[s] = true
	}
	for _, s := range res.Missing {
		assert.False(t, matched[s], "%q is both matched and missing", s)
		union[s] = true
	}

	required := make(map[string]bool)
	for _, s := range req.RequiredSkills {
		required[s] = true
	}
	assert.Equal(t, required, union)
}
