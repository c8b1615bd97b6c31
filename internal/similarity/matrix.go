package similarity

import (
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/textmodel"
)

// MinStored is the smallest similarity kept in a Matrix. Smaller values
// read back as 0.
const MinStored = 0.01

const trigram = 3

// pairKey is an ordered pair of interned item indices, lo < hi.
type pairKey struct {
	lo, hi int32
}

// Matrix holds the three sparse pairwise similarity maps of one category.
// It is read-only once built.
type Matrix struct {
	index  map[string]int32
	text   map[pairKey]float64
	name   map[pairKey]float64
	effect map[pairKey]float64
}

// BuildMatrix computes text cosine, name trigram and effect trigram
// similarity for every pair of items.
func BuildMatrix(items []domain.Item) *Matrix {
	m := &Matrix{
		index:  make(map[string]int32, len(items)),
		text:   make(map[pairKey]float64),
		name:   make(map[pairKey]float64),
		effect: make(map[pairKey]float64),
	}
	docs := make([][]string, len(items))
	names := make([]map[string]struct{}, len(items))
	effects := make([][]map[string]struct{}, len(items))
	for i, it := range items {
		m.index[it.FormID] = int32(i)
		docs[i] = textmodel.Tokenize(textmodel.BuildItemText(it))
		names[i] = ngramSet(it.Name, trigram)
		for _, label := range it.EffectLabels() {
			if g := ngramSet(label, trigram); len(g) > 0 {
				effects[i] = append(effects[i], g)
			}
		}
	}
	vecs := ComputeTfIdf(docs)

	for i := range items {
		for j := i + 1; j < len(items); j++ {
			k := pairKey{int32(i), int32(j)}
			store(m.text, k, CosineSimilarity(vecs[i], vecs[j]))
			store(m.name, k, jaccard(names[i], names[j]))
			store(m.effect, k, maxPairJaccard(effects[i], effects[j]))
		}
	}
	return m
}

func maxPairJaccard(a, b []map[string]struct{}) float64 {
	best := 0.0
	for _, ga := range a {
		for _, gb := range b {
			if s := jaccard(ga, gb); s > best {
				best = s
			}
		}
	}
	return best
}

func store(dst map[pairKey]float64, k pairKey, v float64) {
	if v >= MinStored {
		dst[k] = v
	}
}

func (m *Matrix) key(a, b string) (pairKey, bool) {
	ia, okA := m.index[a]
	ib, okB := m.index[b]
	if !okA || !okB || ia == ib {
		return pairKey{}, false
	}
	if ia > ib {
		ia, ib = ib, ia
	}
	return pairKey{ia, ib}, true
}

func (m *Matrix) lookup(pick func(*Matrix) map[pairKey]float64, a, b string) float64 {
	if m == nil {
		return 0
	}
	dst := pick(m)
	k, ok := m.key(a, b)
	if !ok {
		return 0
	}
	return dst[k]
}

// Text returns the TF-IDF cosine similarity of two items.
func (m *Matrix) Text(a, b string) float64 { return m.lookup(textMap, a, b) }

// Name returns the trigram similarity of two item names.
func (m *Matrix) Name(a, b string) float64 { return m.lookup(nameMap, a, b) }

// Effect returns the best trigram similarity between any two effect names.
func (m *Matrix) Effect(a, b string) float64 { return m.lookup(effectMap, a, b) }

func textMap(m *Matrix) map[pairKey]float64   { return m.text }
func nameMap(m *Matrix) map[pairKey]float64   { return m.name }
func effectMap(m *Matrix) map[pairKey]float64 { return m.effect }

// Size reports how many pairs are stored in each map.
func (m *Matrix) Size() (text, name, effect int) {
	return len(m.text), len(m.name), len(m.effect)
}
