// Package vecsim ranks candidate vectors against a query vector by cosine similarity.
//
// Everything here is pure and holds no state, so it is safe for concurrent use.
package vecsim

import (
	"math"
	"sort"
)

// Candidate is a vector to be ranked, identified by ID.
type Candidate struct {
	ID     string
	Vector []float32
}

// Match is a ranked candidate.
type Match struct {
	ID         string
	Similarity float64
}

// Cosine returns the cosine similarity of a and b computed in float64.
// ok is false when the vectors differ in length or either norm is zero,
// in which case the similarity is undefined.
func Cosine(a, b []float32) (similarity float64, ok bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0, false
	}
	return dot / denom, true
}

// TopK returns up to k candidates ordered by descending similarity to query.
// Candidates with undefined similarity are dropped rather than scored as zero.
// Equal similarities keep their input order. A k of zero or less returns nothing.
func TopK(query []float32, candidates []Candidate, k int) []Match {
	if k <= 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		sim, ok := Cosine(query, c.Vector)
		if !ok {
			continue
		}
		matches = append(matches, Match{ID: c.ID, Similarity: sim})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
