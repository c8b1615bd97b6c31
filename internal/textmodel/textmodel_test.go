package textmodel

import (
	"testing"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"punctuation", "Fire-Bolt, deals 25 fire!", []string{"fire", "bolt", "deals", "fire"}},
		{"short tokens dropped", "an ox is at 10 ft", []string{}},
		{"digits kept", "Ward 100pts", []string{"ward", "100pts"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("magicka"))
	assert.True(t, IsStopWord("novice"))
	assert.False(t, IsStopWord("fire"))
}

func TestTokenizeFiltered(t *testing.T) {
	assert.Equal(t, []string{"fire", "bolt"}, TokenizeFiltered("Fire bolt deals damage to the target"))
}

func TestBuildItemText(t *testing.T) {
	it := domain.Item{
		Name:        "Flames",
		Description: "A gout of fire",
		Effects:     []domain.Effect{{Name: "Fire Damage", Description: "burns"}},
	}
	assert.Equal(t, "Flames Flames A gout of fire Fire Damage", BuildItemText(it))
}

func TestBuildThemeText(t *testing.T) {
	it := domain.Item{
		Name:        "Frostbite",
		EffectNames: []string{"Frost"},
		Effects:     []domain.Effect{{Name: "Frost Damage", Description: "chills"}},
		Keywords:    []string{"MagicDamageFrost"},
	}
	assert.Equal(t,
		"Frostbite Frostbite Frostbite Frost Frost Frost Frost Damage chills Damage Frost",
		BuildThemeText(it))
}

func TestSplitKeyword(t *testing.T) {
	assert.Equal(t, "Damage Fire", SplitKeyword("MagicDamageFire"))
	assert.Equal(t, "Magic", SplitKeyword("Magic"))
	assert.Equal(t, "Ward Strong", SplitKeyword("WardStrong"))
}
