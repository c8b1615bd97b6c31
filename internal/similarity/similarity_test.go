package similarity

import (
	"math"
	"testing"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTfIdf_EmptyDocumentIsZeroVector(t *testing.T) {
	vecs := ComputeTfIdf([][]string{{"fire", "bolt"}, {}})
	require.Len(t, vecs, 2)
	assert.Zero(t, vecs[1].Norm)
	assert.Empty(t, vecs[1].Weights)
	assert.Zero(t, CosineSimilarity(vecs[0], vecs[1]))
}

func TestComputeTfIdf_SmoothedIdf(t *testing.T) {
	vecs := ComputeTfIdf([][]string{{"fire", "fire", "bolt"}, {"frost"}})
	idf := math.Log(3.0/2.0) + 1
	assert.InDelta(t, 2.0/3.0*idf, vecs[0].Weights["fire"], 1e-12)
	assert.Equal(t, []string{"bolt", "fire"}, vecs[0].Terms)
}

func TestCosineSimilarity_Properties(t *testing.T) {
	vecs := ComputeTfIdf([][]string{
		{"fire", "bolt", "burn"},
		{"fire", "ball", "burn", "explode"},
		{"heal", "ward"},
	})

	for _, v := range vecs {
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-12)
	}
	assert.Equal(t, CosineSimilarity(vecs[0], vecs[1]), CosineSimilarity(vecs[1], vecs[0]))
	assert.Greater(t, CosineSimilarity(vecs[0], vecs[1]), 0.0)
	assert.Zero(t, CosineSimilarity(vecs[0], vecs[2]))
}

func TestCharNgramSimilarity(t *testing.T) {
	ab := CharNgramSimilarity("Firebolt", "Fireball", 3)
	assert.Greater(t, ab, 0.0)
	assert.Equal(t, ab, CharNgramSimilarity("Fireball", "Firebolt", 3))
	assert.Zero(t, CharNgramSimilarity("ab", "abcdef", 3))
	assert.Equal(t, 1.0, CharNgramSimilarity("Fire Bolt", "firebolt", 3))
}

func TestFuzzyRatio(t *testing.T) {
	assert.Equal(t, 100, FuzzyRatio("kitten", "kitten"))
	assert.Equal(t, 100, FuzzyRatio("", ""))
	assert.Equal(t, 0, FuzzyRatio("abc", ""))
	assert.Less(t, FuzzyRatio("abc", "xyz"), 50)
	assert.Equal(t, 57, FuzzyRatio("kitten", "sitting"))
	assert.Equal(t, 100, FuzzyRatio("Fire", "FIRE"))
}

func TestFuzzyPartialRatio(t *testing.T) {
	assert.Equal(t, 100, FuzzyPartialRatio("fire", "flames of fire"))
	assert.Equal(t, 100, FuzzyPartialRatio("flames of fire", "fire"))
	assert.Equal(t, 0, FuzzyPartialRatio("", "fire"))
	assert.Less(t, FuzzyPartialRatio("heal", "frost bite"), 100)
}

func TestFuzzyTokenSetRatio_OrderInsensitive(t *testing.T) {
	assert.Equal(t, 100, FuzzyTokenSetRatio("fire bolt", "bolt fire"))
	assert.Equal(t, 100, FuzzyTokenSetRatio("fire", "fire bolt fire"))
	assert.Less(t, FuzzyTokenSetRatio("frost", "healing hands"), 50)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 0, LevenshteinDistance("", ""))
}

func TestBuildMatrix(t *testing.T) {
	items := []domain.Item{
		{FormID: "a", Name: "Firebolt", Description: "fire bolt", Effects: []domain.Effect{{Name: "Fire Damage"}}},
		{FormID: "b", Name: "Fireball", Description: "fire explosion", Effects: []domain.Effect{{Name: "Fire Damage"}}},
		{FormID: "c", Name: "Healing", Description: "restore health", EffectNames: []string{"Restore"}},
	}
	m := BuildMatrix(items)

	assert.Greater(t, m.Name("a", "b"), 0.0)
	assert.Equal(t, m.Name("a", "b"), m.Name("b", "a"))
	assert.Equal(t, 1.0, m.Effect("a", "b"))
	assert.Greater(t, m.Text("a", "b"), 0.0)
	assert.Zero(t, m.Text("a", "c"))
	assert.Zero(t, m.Name("a", "a"))
	assert.Zero(t, m.Name("a", "missing"))

	var nilMatrix *Matrix
	assert.Zero(t, nilMatrix.Text("a", "b"))
}
