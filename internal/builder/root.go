package builder

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// vanillaPluginCutoff is the first load-order index used by add-ons; ids
// whose high byte is below it come from the base game and its DLCs.
const vanillaPluginCutoff = 0x05

// IsVanillaFormID reports whether a hex form id belongs to the base game.
func IsVanillaFormID(id string) bool {
	id = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(id)), "0x")
	v, err := strconv.ParseUint(id, 16, 64)
	if err != nil {
		return false
	}
	return v>>24 < vanillaPluginCutoff
}

// pickRoot honours a selected_roots override present in items. Otherwise
// it draws from the lowest populated tier, restricted to vanilla ids when
// preferred and available.
func pickRoot(items []domain.Item, cfg domain.BuildConfig, school string, rng *rand.Rand) (string, bool) {
	if want, ok := cfg.SelectedRoots[school]; ok && want != "" {
		for _, it := range items {
			if it.FormID == want {
				return want, true
			}
		}
	}

	tiers := make([][]string, len(domain.Tiers))
	for _, it := range items {
		tiers[it.Tier()] = append(tiers[it.Tier()], it.FormID)
	}
	for _, ids := range tiers {
		if len(ids) == 0 {
			continue
		}
		if cfg.PreferVanillaRoots {
			var vanilla []string
			for _, id := range ids {
				if IsVanillaFormID(id) {
					vanilla = append(vanilla, id)
				}
			}
			if len(vanilla) > 0 {
				return vanilla[rng.IntN(len(vanilla))], true
			}
		}
		return ids[rng.IntN(len(ids))], true
	}
	return "", false
}
