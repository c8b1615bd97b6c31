// Package similarity implements the vector space engine: TF-IDF vectors,
// cosine similarity, character n-gram overlap and Levenshtein-based fuzzy
// ratios, plus the per-category sparse similarity matrix.
package similarity

import (
	"math"
	"sort"
)

// Vector is a sparse TF-IDF vector. Terms holds the keys of Weights in
// sorted order so that every reduction over the vector is deterministic.
type Vector struct {
	Terms   []string
	Weights map[string]float64
	Norm    float64
}

// ComputeTfIdf vectorizes a corpus of tokenized documents with smoothed
// IDF: idf(t) = ln((N+1)/(df(t)+1)) + 1 and tf(t) = count(t)/len(doc).
// An empty document yields a zero vector.
func ComputeTfIdf(docs [][]string) []Vector {
	n := float64(len(docs))
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, tok := range doc {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	out := make([]Vector, len(docs))
	for i, doc := range docs {
		v := Vector{Weights: make(map[string]float64)}
		if len(doc) == 0 {
			out[i] = v
			continue
		}
		counts := make(map[string]int, len(doc))
		for _, tok := range doc {
			counts[tok]++
		}
		size := float64(len(doc))
		for tok, c := range counts {
			idf := math.Log((n+1)/float64(df[tok]+1)) + 1
			v.Weights[tok] = float64(c) / size * idf
			v.Terms = append(v.Terms, tok)
		}
		sort.Strings(v.Terms)
		var sum float64
		for _, tok := range v.Terms {
			w := v.Weights[tok]
			sum += w * w
		}
		v.Norm = math.Sqrt(sum)
		out[i] = v
	}
	return out
}

// CosineSimilarity returns 0 when either vector has zero norm.
func CosineSimilarity(a, b Vector) float64 {
	if a.Norm == 0 || b.Norm == 0 {
		return 0
	}
	small, large := a, b
	if len(b.Terms) < len(a.Terms) {
		small, large = b, a
	}
	var dot float64
	for _, tok := range small.Terms {
		if w, ok := large.Weights[tok]; ok {
			dot += small.Weights[tok] * w
		}
	}
	return dot / (a.Norm * b.Norm)
}
