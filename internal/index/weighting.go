package index

import (
	"fmt"
	"strings"
)

// Weighting selects how raw term counts become term-frequency values.
// The same weighting applies to documents and queries.
type Weighting int

const (
	// WeightingRaw uses the raw count: tf = count(t, d).
	WeightingRaw Weighting = iota
	// WeightingLength divides by document length: tf = count / len(d).
	WeightingLength
	// WeightingMax divides by the most frequent term: tf = count / max count.
	WeightingMax
)

func (w Weighting) String() string {
	switch w {
	case WeightingLength:
		return "length"
	case WeightingMax:
		return "max"
	default:
		return "raw"
	}
}

// ParseWeighting maps a config value to a Weighting. Empty means raw.
func ParseWeighting(s string) (Weighting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return WeightingRaw, nil
	case "length":
		return WeightingLength, nil
	case "max":
		return WeightingMax, nil
	default:
		return WeightingRaw, fmt.Errorf("unknown term weighting %q", s)
	}
}

func (w Weighting) tf(count, length, maxCount int) float64 {
	switch w {
	case WeightingLength:
		if length == 0 {
			return 0
		}
		return float64(count) / float64(length)
	case WeightingMax:
		if maxCount == 0 {
			return 0
		}
		return float64(count) / float64(maxCount)
	default:
		return float64(count)
	}
}
