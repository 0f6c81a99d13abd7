// Package fuzzy implements the name normalisation and matching rules the
// coercion engine uses for field and enum-variant resolution.
package fuzzy

import (
	"strings"
	"unicode"
)

// Normalize maps a name to canonical lowercase snake_case: separator runs
// become a single underscore, case and letter-digit boundaries are split,
// and repeated underscores collapse. Acronyms are not collapsed: XMLParser
// normalises to x_m_l_parser.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	var prev rune
	for _, r := range name {
		switch {
		case r == '-' || r == '.' || r == ' ' || r == '_' || r == '\t':
			r = '_'
		case unicode.IsUpper(r) && (unicode.IsLetter(prev) || unicode.IsDigit(prev)):
			b.WriteByte('_')
		case unicode.IsDigit(r) && unicode.IsLetter(prev):
			b.WriteByte('_')
		}
		if r == '_' && prev == '_' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return strings.Trim(b.String(), "_")
}

// Match reports whether two names are equal modulo normalisation.
func Match(a, b string) bool { return Normalize(a) == Normalize(b) }

// Damerau computes the Damerau-Levenshtein distance (optimal string
// alignment) between two strings, by rune.
func Damerau(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	rows := make([][]int, la+1)
	for i := range rows {
		rows[i] = make([]int, lb+1)
		rows[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		rows[0][j] = j
	}
	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d := min3(rows[i-1][j]+1, rows[i][j-1]+1, rows[i-1][j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := rows[i-2][j-2] + 1; t < d {
					d = t
				}
			}
			rows[i][j] = d
		}
	}
	return rows[la][lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// EnumThreshold is the acceptance cutoff for a variant name: a match score
// above it fails.
func EnumThreshold(name string) int {
	t := len(name) / 3
	if t < 3 {
		t = 3
	}
	return t
}

// MatchEnum resolves an input string against variant names. Per variant the
// score is the best of normalised equality (0), case-insensitive substring
// containment either way (1), and the Damerau distance of the normalised
// forms. The lowest score wins, ties break by declaration order, and a
// winner above its threshold is rejected. Returns the variant index or -1.
func MatchEnum(input string, names []string) int {
	input = strings.TrimSpace(input)
	if input == "" || len(names) == 0 {
		return -1
	}
	ni := Normalize(input)
	li := strings.ToLower(input)
	bestIdx, bestScore := -1, 0
	for i, name := range names {
		score := Damerau(ni, Normalize(name))
		ln := strings.ToLower(name)
		if strings.Contains(ln, li) || strings.Contains(li, ln) {
			if score > 1 {
				score = 1
			}
		}
		if ni == Normalize(name) {
			score = 0
		}
		if bestIdx < 0 || score < bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 || bestScore > EnumThreshold(names[bestIdx]) {
		return -1
	}
	return bestIdx
}
