package feedback

import "golang.org/x/text/language"

// messages is one locale's report vocabulary.
type messages struct {
	Header          string
	Strengths       string
	Requirements    string
	Matched         string
	Missing         string
	Experience      string // formatted with the number of years
	Education       string
	Recommendations string
	LowScore        [2]string
	Gaps            [2]string
	Tips            string
	GeneralTips     [4]string
	Failure         string // formatted with the error
	EmptyInput      string
}

var portuguese = messages{
	Header:          "📊 Análise do seu CV:",
	Strengths:       "💪 Pontos Fortes:",
	Requirements:    "📋 Requisitos da Vaga:",
	Matched:         "✅ Requisitos Atendidos: ",
	Missing:         "❌ Requisitos Faltantes: ",
	Experience:      "⏳ Experiência Requerida: %d anos",
	Education:       "📚 Formação Acadêmica Requerida:",
	Recommendations: "💡 Recomendações:",
	LowScore: [2]string{
		"Considere adicionar mais palavras-chave específicas da vaga",
		"Detalhe melhor suas experiências relacionadas aos requisitos",
	},
	Gaps: [2]string{
		"Destaque projetos ou experiências relacionados aos requisitos faltantes",
		"Se possui conhecimento em alguma das habilidades faltantes, adicione-as ao CV",
	},
	Tips: "📝 Dicas Gerais:",
	GeneralTips: [4]string{
		"Mantenha o CV conciso e objetivo",
		"Use bullet points para listar realizações",
		"Quantifique resultados quando possível",
		"Personalize o CV para cada vaga",
	},
	Failure:    "Erro ao analisar CV: %v",
	EmptyInput: "Não foi possível analisar: o currículo e a descrição da vaga estão vazios.",
}

var english = messages{
	Header:          "📊 Your CV analysis:",
	Strengths:       "💪 Strengths:",
	Requirements:    "📋 Job Requirements:",
	Matched:         "✅ Requirements met: ",
	Missing:         "❌ Missing requirements: ",
	Experience:      "⏳ Experience required: %d years",
	Education:       "📚 Education required:",
	Recommendations: "💡 Recommendations:",
	LowScore: [2]string{
		"Consider adding more keywords specific to the job",
		"Describe your experience related to the requirements in more detail",
	},
	Gaps: [2]string{
		"Highlight projects or experience related to the missing requirements",
		"If you know any of the missing skills, add them to your CV",
	},
	Tips: "📝 General Tips:",
	GeneralTips: [4]string{
		"Keep the CV concise and objective",
		"Use bullet points to list achievements",
		"Quantify results whenever possible",
		"Tailor the CV to each job",
	},
	Failure:    "Error analysing CV: %v",
	EmptyInput: "Nothing to analyse: both the CV and the job description are empty.",
}

var (
	supported = []language.Tag{language.BrazilianPortuguese, language.English}
	catalogs  = []messages{portuguese, english}
	matcher   = language.NewMatcher(supported)
)

// ParseLocale parses a BCP 47 tag, falling back to Brazilian Portuguese.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.BrazilianPortuguese
	}
	return tag
}

func lookup(tag language.Tag) (language.Tag, messages) {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return supported[idx], catalogs[idx]
}
