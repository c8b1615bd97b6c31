package textmodel

var stopWords = toSet(
	// generic spell vocabulary
	"spell", "magic", "magical", "target", "targets", "effect", "effects",
	"damage", "point", "points", "second", "seconds", "per", "for", "does",
	"causes", "cast", "caster", "casting", "level", "levels", "health",
	"magicka", "stamina", "drain", "drains",
	// effect description fragments
	"deals", "deal", "dur", "duration", "mag", "magnitude", "nearby",
	"enemies", "enemy", "increased", "increases", "increase", "decreased",
	"decreases", "decrease", "reduces", "reduced", "reduce", "restores",
	"restore", "restored", "absorb", "absorbs", "absorbed", "extra", "takes",
	"take", "time", "over", "while", "also", "resistance", "chance", "once",
	"each", "within", "range", "stronger", "powerful", "greater", "lesser",
	"more", "less",
	// tiers
	"novice", "apprentice", "adept", "expert", "master",
	// english
	"to", "a", "an", "of", "in", "on", "at", "is", "are", "be", "with",
	"that", "this", "their", "your", "and", "or", "but", "not", "all", "the",
	"was", "were", "been", "being", "have", "has", "had", "do", "did", "will",
	"would", "could", "should", "may", "might", "can", "shall", "from", "by",
	"as", "if", "its", "it", "they", "them", "he", "she", "his", "her", "we",
	"you", "who", "which", "when", "where", "how", "what", "than", "then",
	"into", "about", "up", "out", "no", "so", "just", "very", "too", "any",
	"some", "such",
)

// IsStopWord reports whether token belongs to the domain stop-word set.
// Token is expected in lowercase.
func IsStopWord(token string) bool {
	return stopWords[token]
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
