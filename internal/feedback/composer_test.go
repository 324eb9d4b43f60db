package feedback

import (
	"errors"
	"strings"
	"testing"

	"github.com/muhammadolammi/cvmatch/internal/gap"
	"github.com/muhammadolammi/cvmatch/internal/requirements"
	"github.com/muhammadolammi/cvmatch/internal/skills"
	"github.com/muhammadolammi/cvmatch/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func findings() skills.Findings {
	return skills.NewFindings(
		taxonomy.Category{Name: "programming_languages", Terms: []string{"python", "go"}},
		taxonomy.Category{Name: "soft_skills", Terms: []string{"liderança"}},
	)
}

func TestComposeFullReport(t *testing.T) {
	years := 5
	req := requirements.Requirements{
		RequiredSkills:  []string{"python", "graphql"},
		ExperienceYears: &years,
		Education:       []string{"graduação em ciência da computação"},
	}
	res := gap.Result{Matched: []string{"python"}, Missing: []string{"graphql"}}

	out := NewComposer().Compose(findings(), req, res, 42)

	assert.True(t, strings.HasPrefix(out, portuguese.Header))
	assert.Contains(t, out, "• Programming Languages: python, go")
	assert.Contains(t, out, "• Soft Skills: liderança")
	assert.Contains(t, out, portuguese.Requirements)
	assert.Contains(t, out, "✅ Requisitos Atendidos: python")
	assert.Contains(t, out, "❌ Requisitos Faltantes: graphql")
	assert.Contains(t, out, "⏳ Experiência Requerida: 5 anos")
	assert.Contains(t, out, "• graduação em ciência da computação")
	for _, rec := range append(portuguese.LowScore[:], portuguese.Gaps[:]...) {
		assert.Contains(t, out, rec)
	}
	for _, tip := range portuguese.GeneralTips {
		assert.Contains(t, out, tip)
	}

	order := []string{
		portuguese.Header, portuguese.Strengths, portuguese.Requirements, "⏳",
		portuguese.Education, portuguese.Recommendations, portuguese.Tips,
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		assert.Greater(t, idx, last, "section %q out of order", marker)
		last = idx
	}
}

func TestComposeOmitsEmptySections(t *testing.T) {
	out := NewComposer().Compose(skills.Findings{}, requirements.Requirements{}, gap.Result{}, 90)

	assert.NotContains(t, out, portuguese.Strengths)
	assert.NotContains(t, out, portuguese.Requirements)
	assert.NotContains(t, out, "⏳")
	assert.NotContains(t, out, portuguese.Education)
	assert.Contains(t, out, portuguese.Recommendations)
	assert.Contains(t, out, portuguese.Tips)
	assert.NotContains(t, out, portuguese.LowScore[0])
	assert.NotContains(t, out, portuguese.Gaps[0])
}

func TestComposeRecommendations(t *testing.T) {
	req := requirements.Requirements{RequiredSkills: []string{"go"}}

	tests := []struct {
		name     string
		res      gap.Result
		score    float64
		lowScore bool
		gaps     bool
	}{
		{"high score no gaps", gap.Result{Matched: []string{"go"}}, 80, false, false},
		{"threshold is not low", gap.Result{Matched: []string{"go"}}, 60, false, false},
		{"low score", gap.Result{Matched: []string{"go"}}, 59, true, false},
		{"gaps only", gap.Result{Missing: []string{"go"}}, 75, false, true},
		{"both", gap.Result{Missing: []string{"go"}}, 10, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewComposer().Compose(skills.Findings{}, req, tt.res, tt.score)
			assert.Equal(t, tt.lowScore, strings.Contains(out, portuguese.LowScore[1]))
			assert.Equal(t, tt.gaps, strings.Contains(out, portuguese.Gaps[1]))
		})
	}
}

func TestComposeEnglish(t *testing.T) {
	c := NewComposer(WithLocale(language.MustParse("en-US")))
	assert.Equal(t, language.English, c.Locale())

	out := c.Compose(findings(), requirements.Requirements{RequiredSkills: []string{"go"}}, gap.Result{Matched: []string{"go"}}, 70)
	assert.Contains(t, out, "📋 Job Requirements:")
	assert.Contains(t, out, "• Programming Languages: python, go")
	assert.Contains(t, out, "📝 General Tips:")
}

func TestLocaleFallback(t *testing.T) {
	assert.Equal(t, language.BrazilianPortuguese, NewComposer(WithLocale(language.Japanese)).Locale())
	assert.Equal(t, language.BrazilianPortuguese, ParseLocale("not a tag!"))
	assert.Equal(t, language.English, ParseLocale("en"))
}

func TestFailureAndEmptyInput(t *testing.T) {
	c := NewComposer()
	assert.Equal(t, "Erro ao analisar CV: boom", c.Failure(errors.New("boom")))
	assert.NotEmpty(t, c.EmptyInput())
}
