package review

import "fmt"

// Pair is a candidate comparison between two document versions.
type Pair struct {
	A int `json:"version_a"`
	B int `json:"version_b"`
}

// Label renders the pair as "vA-vB", e.g. "1-3". Audit entries carry
// this form in their version column.
func (p Pair) Label() string {
	return fmt.Sprintf("%d-%d", p.A, p.B)
}

// GeneratePairs produces the candidate comparison pairs for sorted
// distinct versions: every adjacent pair in order, then one trailing
// first-versus-last pair when more than two versions exist. Fewer than
// two versions yield no pairs.
func GeneratePairs(versions []int) []Pair {
	if len(versions) < 2 {
		return nil
	}

	pairs := make([]Pair, 0, len(versions))
	for i := 0; i < len(versions)-1; i++ {
		pairs = append(pairs, Pair{A: versions[i], B: versions[i+1]})
	}
	if len(versions) > 2 {
		pairs = append(pairs, Pair{A: versions[0], B: versions[len(versions)-1]})
	}

	return pairs
}
