package importer

import (
	"fmt"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// ValidateItems reports every problem in an item list at once. None of
// them stop a build: the engine skips records without formId or school,
// keeps the first of duplicate ids and places unknown tiers as Novice.
func ValidateItems(items []domain.Item) []error {
	var errs []error
	seen := make(map[string]int, len(items))

	for i, it := range items {
		label := fmt.Sprintf("items[%d]", i)
		if it.Name != "" {
			label = fmt.Sprintf("items[%d] (%s)", i, it.Name)
		}

		if it.FormID == "" {
			errs = append(errs, fmt.Errorf("%s: formId is required", label))
		} else if first, dup := seen[it.FormID]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate formId %s (first at items[%d])", label, it.FormID, first))
		} else {
			seen[it.FormID] = i
		}

		if it.School == "" {
			errs = append(errs, fmt.Errorf("%s: school is required", label))
		}
		if it.SkillLevel != "" && domain.TierIndex(it.SkillLevel) < 0 {
			errs = append(errs, fmt.Errorf("%s: unknown skillLevel %q, placed as Novice", label, it.SkillLevel))
		}
		if it.MagickaCost < 0 || it.BaseCost < 0 {
			errs = append(errs, fmt.Errorf("%s: negative cost", label))
		}
	}
	return errs
}
