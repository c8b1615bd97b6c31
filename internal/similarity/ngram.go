package similarity

import (
	"strings"
	"unicode"
)

// CharNgramSimilarity is the Jaccard index of the character n-gram sets of
// a and b after lowercasing and removing whitespace. It is 0 when either
// string is shorter than n.
func CharNgramSimilarity(a, b string, n int) float64 {
	ga, gb := ngramSet(a, n), ngramSet(b, n)
	return jaccard(ga, gb)
}

func ngramSet(s string, n int) map[string]struct{} {
	runes := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s))
	if n <= 0 || len(runes) < n {
		return nil
	}
	set := make(map[string]struct{}, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		set[string(runes[i:i+n])] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	inter := 0
	for g := range a {
		if _, ok := b[g]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
