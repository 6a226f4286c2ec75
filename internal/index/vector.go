package index

import "math"

// Entry is one non-zero component of a sparse vector. Term is the term's
// position in the vocabulary.
type Entry struct {
	Term   int
	Weight float64
}

// Vector is a sparse TF-IDF vector sorted by term position. Absent terms
// have weight zero.
type Vector []Entry

// Dot merges two sorted vectors; only shared terms contribute.
func (v Vector) Dot(other Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v) && j < len(other) {
		switch {
		case v[i].Term == other[j].Term:
			sum += v[i].Weight * other[j].Weight
			i++
			j++
		case v[i].Term < other[j].Term:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the L2 magnitude.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// cosine returns the cosine similarity of two vectors with precomputed
// norms, or 0 when either norm is 0. The result is clamped to [0, 1] since
// all weights are non-negative.
func cosine(a Vector, normA float64, b Vector, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	score := a.Dot(b) / (normA * normB)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
