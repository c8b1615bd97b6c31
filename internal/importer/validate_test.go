package importer

import (
	"strings"
	"testing"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateItems_CleanFixture(t *testing.T) {
	assert.Empty(t, ValidateItems(testutil.DestructionItems()))
}

func TestValidateItems_ReportsEverything(t *testing.T) {
	items := []domain.Item{
		{FormID: "0x1", Name: "Flames", School: "Destruction", SkillLevel: "Novice"},
		{FormID: "", Name: "Nameless", School: "Destruction"},
		{FormID: "0x1", Name: "Copy", School: "Destruction"},
		{FormID: "0x3", Name: "Drifter"},
		{FormID: "0x4", Name: "Odd", School: "Illusion", SkillLevel: "Legendary"},
		{FormID: "0x5", School: "Illusion", BaseCost: -1},
	}

	errs := ValidateItems(items)
	require.Len(t, errs, 5)

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	joined := strings.Join(msgs, "\n")
	assert.Contains(t, joined, "items[1] (Nameless): formId is required")
	assert.Contains(t, joined, "duplicate formId 0x1 (first at items[0])")
	assert.Contains(t, joined, "items[3] (Drifter): school is required")
	assert.Contains(t, joined, `unknown skillLevel "Legendary"`)
	assert.Contains(t, joined, "items[5]: negative cost")
}
