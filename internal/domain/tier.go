package domain

// Tiers lists the skill levels from lowest to highest.
var Tiers = []string{"Novice", "Apprentice", "Adept", "Expert", "Master"}

// UnknownTierRank sorts unrecognised skill levels after every real tier.
const UnknownTierRank = 99

// TierIndex returns the position of level in Tiers, or -1.
func TierIndex(level string) int {
	for i, t := range Tiers {
		if t == level {
			return i
		}
	}
	return -1
}

// TierOf maps unknown levels to Novice.
func TierOf(level string) int {
	if i := TierIndex(level); i >= 0 {
		return i
	}
	return 0
}

// TierRank is TierIndex with unknown levels sorted last.
func TierRank(level string) int {
	if i := TierIndex(level); i >= 0 {
		return i
	}
	return UnknownTierRank
}
