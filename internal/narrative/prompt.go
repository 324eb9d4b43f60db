package narrative

import "fmt"

const promptTemplate = `Analise este currículo para a vaga descrita e forneça um feedback detalhado.

Currículo:
%s

Descrição da Vaga:
%s

Por favor, forneça uma análise estruturada incluindo:
1. Resumo da compatibilidade
2. Pontos fortes identificados
3. Áreas para melhoria
4. Sugestões específicas
5. Habilidades técnicas encontradas
6. Soft skills identificadas

Mantenha o tom profissional e construtivo.`

// instruction is the system instruction given to agent-based backends.
const instruction = `Você é um assistente de carreira especialista que avalia o quanto um currículo
corresponde a uma descrição de vaga. Baseie toda a análise apenas no texto fornecido e não
invente experiências que não estejam explicitamente mencionadas.`

// BuildPrompt embeds the résumé and the job description in the analysis prompt.
func BuildPrompt(cvText, jobText string) string {
	return fmt.Sprintf(promptTemplate, cvText, jobText)
}
