package service

import (
	"sort"
	"time"
)

// seedModulus keeps time-derived seeds short enough to retype.
const seedModulus = 1_000_000

// resolveSeed turns the "pick one for me" seed 0 into a time-derived seed.
func resolveSeed(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	s := now.UnixMilli() % seedModulus
	if s == 0 {
		s = 1
	}
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
