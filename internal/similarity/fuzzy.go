package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// LevenshteinDistance is the rune-level edit distance between a and b.
func LevenshteinDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// FuzzyRatio scores a and b in [0,100] as round((1 - dist/maxLen) * 100),
// case-insensitively.
func FuzzyRatio(a, b string) int {
	return ratio(strings.ToLower(a), strings.ToLower(b))
}

func ratio(a, b string) int {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	maxLen := max(la, lb)
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round((1 - float64(d)/float64(maxLen)) * 100))
}

// FuzzyPartialRatio slides the shorter string over the longer one and
// keeps the best window ratio.
func FuzzyPartialRatio(a, b string) int {
	short, long := []rune(strings.ToLower(a)), []rune(strings.ToLower(b))
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}
	s := string(short)
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// FuzzyTokenSetRatio compares the shared tokens against each side's
// shared+remainder tokens, which makes it insensitive to word order and
// duplicated words.
func FuzzyTokenSetRatio(a, b string) int {
	sa, sb := tokenSet(a), tokenSet(b)
	var inter, onlyA, onlyB []string
	for t := range sa {
		if sb[t] {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range sb {
		if !sa[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(inter, " ")
	combA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	combB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	return max(ratio(base, combA), ratio(base, combB), ratio(combA, combB))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(s)) {
		set[f] = true
	}
	return set
}
