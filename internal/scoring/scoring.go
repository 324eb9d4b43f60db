// Package scoring computes résumé/job similarity scores on a 0–100 scale.
package scoring

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"
)

// MaxScore is the upper bound of every score.
const MaxScore = 100.0

// MaxTextRunes is how much of each text TokenSetRatio reads. Anything past it is ignored.
const MaxTextRunes = 10000

// cancelCheckRows is how often the LCS loop polls the context.
const cancelCheckRows = 64

// TokenSetRatio compares the unique token sets of a and b. Tokens shared by both texts are
// compared against each side's full token list, so a text whose tokens are a subset of the
// other's scores 100. The result is a whole number in [0, 100], symmetric in its arguments,
// and 0 when either text has no tokens. Only the first MaxTextRunes of each text count.
func TokenSetRatio(a, b string) float64 {
	score, _ := TokenSetRatioContext(context.Background(), a, b)
	return score
}

// TokenSetRatioContext is TokenSetRatio that stops with ctx.Err() once ctx is done.
func TokenSetRatioContext(ctx context.Context, a, b string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ta, tb := tokenSet(truncate(a)), tokenSet(truncate(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0, nil
	}

	var inter, onlyA, onlyB []string
	for tok := range ta {
		if tb[tok] {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(inter, " ")
	withA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	best := 0.0
	for _, pair := range [][2]string{{sect, withA}, {sect, withB}, {withA, withB}} {
		r, err := ratio(ctx, pair[0], pair[1])
		if err != nil {
			return 0, err
		}
		best = max(best, r)
	}
	return best, nil
}

// NarrativeScore derives a score from the length of a generated narrative: one point per ten
// words, capped at MaxScore. It measures verbosity, not fit.
func NarrativeScore(narrative string) float64 {
	return math.Min(float64(len(strings.Fields(narrative)))/10, MaxScore)
}

// tokenSet lowercases s, treats everything but letters, digits and underscores as a
// separator and returns the distinct tokens.
func tokenSet(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// ratio is the indel similarity of a and b (2·LCS / total length) scaled to 0–100 and
// rounded half to even.
func ratio(ctx context.Context, a, b string) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		return 0, nil
	}
	n, err := lcs(ctx, ra, rb)
	if err != nil {
		return 0, err
	}
	return math.RoundToEven(MaxScore * float64(2*n) / float64(total)), nil
}

// lcs returns the length of the longest common subsequence of a and b in O(len(b)) memory.
func lcs(ctx context.Context, a, b []rune) (int, error) {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		if i%cancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)], nil
}

func truncate(s string) string {
	if len(s) <= MaxTextRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxTextRunes {
			return s[:i]
		}
		n++
	}
	return s
}
