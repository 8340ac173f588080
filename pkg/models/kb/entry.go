package kb

import "fmt"

const (
	VectorLen = 1536
)

type Vector []float32

// Entry is one knowledge corpus item: a text snippet and its embedding.
type Entry struct {
	Text   string
	Vector Vector
}

type Entries []Entry

// ScoredEntry is an Entry with a similarity score for one query.
type ScoredEntry struct {
	Entry
	Similarity float32
}

// Dot computes the inner product of two vectors of equal length.
func Dot(a, b Vector) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d != %d", len(a), len(b))
	}
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}
