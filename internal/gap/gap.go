// Package gap cross-references résumé findings with job requirements.
package gap

import (
	"strings"

	"github.com/muhammadolammi/cvmatch/internal/requirements"
	"github.com/muhammadolammi/cvmatch/internal/skills"
)

// Result partitions the required skills by presence in the résumé.
type Result struct {
	Matched []string `json:"matched_skills"`
	Missing []string `json:"missing_skills"`
}

// HasGaps reports whether any required skill is missing.
func (r Result) HasGaps() bool {
	return len(r.Missing) > 0
}

// Analyze classifies every required skill as matched or missing. Comparison is
// case-insensitive, order follows req.RequiredSkills, and repeated requirements are
// reported once.
func Analyze(found skills.Findings, req requirements.Requirements) Result {
	have := make(map[string]bool)
	for _, term := range found.All() {
		have[strings.ToLower(term)] = true
	}

	res := Result{Matched: []string{}, Missing: []string{}}
	seen := make(map[string]bool, len(req.RequiredSkills))
	for _, skill := range req.RequiredSkills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if have[key] {
			res.Matched = append(res.Matched, skill)
		} else {
			res.Missing = append(res.Missing, skill)
		}
	}
	return res
}
