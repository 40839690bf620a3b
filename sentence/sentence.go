// Package sentence scores text overlap as the Jaccard index of sentence sets.
//
// Tokenization splits on '.', '?' and '!', trims surrounding whitespace and
// drops empty fragments. Sentences are compared by exact string equality.
//
// A Metric memoizes tokenization keyed by (item name, field value, item
// modification timestamp). The cache lives as long as the Metric and is never
// invalidated, so create one Metric per clustering run. A Metric is not safe
// for concurrent use.
package sentence

import "strings"

// Tokenize splits text into trimmed, non-empty sentences in order of appearance.
func Tokenize(text string) []string {
	parts := strings.FieldsFunc(text, isTerminator)
	out := parts[:0]
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}

	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

// Set is a sentence set.
type Set map[string]struct{}

// NewSet builds a Set from sentences.
func NewSet(sentences []string) Set {
	s := make(Set, len(sentences))
	for _, x := range sentences {
		s[x] = struct{}{}
	}
	return s
}

// Jaccard returns |a∩b| / |a∪b|. ok is false when the union is empty, in which
// case the pair carries no signal.
func Jaccard(a, b Set) (score float64, ok bool) {
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for x := range a {
		if _, hit := b[x]; hit {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0, false
	}

	return float64(inter) / float64(union), true
}

// Key identifies one memoized tokenization.
type Key struct {
	Name     string
	Value    string
	Modified int64
}

// Metric compares text with memoized tokenization.
type Metric struct {
	cache  map[Key]Set
	hits   int
	misses int
}

// NewMetric returns a Metric with an empty cache.
func NewMetric() *Metric {
	return &Metric{cache: make(map[Key]Set)}
}

// Sentences returns the memoized sentence set for k.Value.
func (m *Metric) Sentences(k Key) Set {
	if s, ok := m.cache[k]; ok {
		m.hits++
		return s
	}
	m.misses++
	s := NewSet(Tokenize(k.Value))
	m.cache[k] = s

	return s
}

// Compare scores two keyed texts.
func (m *Metric) Compare(a, b Key) (float64, bool) {
	return Jaccard(m.Sentences(a), m.Sentences(b))
}

// Stats reports cache hits, misses and size.
func (m *Metric) Stats() (hits, misses, size int) {
	return m.hits, m.misses, len(m.cache)
}
