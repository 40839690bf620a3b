// Package metric turns per-field text metrics into the item-level similarity
// handed to the graph builder.
//
// Aggregation:
//
//	For each configured field that is non-empty in both records, score the
//	pair with the selected FieldComparer. A comparer may decline a pair (ok ==
//	false), which leaves it out. The result is the arithmetic mean of accepted
//	scores, or 0 when none was accepted.
//
// Dispatch:
//
//	Kind is the closed set of metrics selectable by name; unknown names fall
//	back to Levenshtein.
package metric

import (
	"math"
	"strings"

	"github.com/katalvlaran/simcluster/levenshtein"
	"github.com/katalvlaran/simcluster/oracle"
	"github.com/katalvlaran/simcluster/record"
	"github.com/katalvlaran/simcluster/sentence"
)

// DefaultFields are compared when a request names none.
var DefaultFields = []string{"name", "description", "scenario", "personality", "first_mes", "mes_example"}

// KnownFields lists every text field a character record is expected to carry.
var KnownFields = append(append([]string(nil), DefaultFields...),
	"system_prompt", "post_history_instructions", "creator", "creator_notes")

// Kind selects a field metric.
type Kind int

const (
	// Levenshtein is the normalized edit-distance metric.
	Levenshtein Kind = iota
	// Sentence is the sentence-set Jaccard metric.
	Sentence
)

// String returns the wire name of k.
func (k Kind) String() string {
	switch k {
	case Sentence:
		return "sentence"
	default:
		return "levenshtein"
	}
}

// ParseKind maps a wire name to a Kind. Matching is case-insensitive and any
// unrecognized name yields Levenshtein.
func ParseKind(name string) Kind {
	if strings.EqualFold(strings.TrimSpace(name), "sentence") {
		return Sentence
	}
	return Levenshtein
}

// FieldComparer scores one field of two records. Both values are non-empty.
type FieldComparer interface {
	Compare(field string, a, b record.Record) (score float64, ok bool)
}

// EditDistance compares fields by normalized Levenshtein similarity.
type EditDistance struct{}

// Compare implements FieldComparer.
func (EditDistance) Compare(field string, a, b record.Record) (float64, bool) {
	return levenshtein.Similarity(a.Field(field), b.Field(field)), true
}

// SentenceOverlap compares fields by sentence-set Jaccard with memoized tokenization.
type SentenceOverlap struct {
	m *sentence.Metric
}

// NewSentenceOverlap returns a comparer with a fresh cache.
func NewSentenceOverlap() *SentenceOverlap {
	return &SentenceOverlap{m: sentence.NewMetric()}
}

// Compare implements FieldComparer.
func (s *SentenceOverlap) Compare(field string, a, b record.Record) (float64, bool) {
	return s.m.Compare(keyOf(field, a), keyOf(field, b))
}

// Cache exposes the underlying memo for diagnostics.
func (s *SentenceOverlap) Cache() *sentence.Metric { return s.m }

func keyOf(field string, r record.Record) sentence.Key {
	return sentence.Key{Name: r.Name, Value: r.Field(field), Modified: r.Modified}
}

// New returns a fresh comparer for k. Call it once per clustering run.
func New(k Kind) FieldComparer {
	if k == Sentence {
		return NewSentenceOverlap()
	}
	return EditDistance{}
}

// Aggregate builds the item similarity over fields using cmp.
//
// Items must be record.Record or *record.Record; anything else scores NaN,
// which the oracle rejects.
//
// Complexity: O(|fields|) comparer calls per pair.
func Aggregate(fields []string, cmp FieldComparer) oracle.Func {
	return func(x, y any) float64 {
		a, okA := asRecord(x)
		b, okB := asRecord(y)
		if !okA || !okB {
			return math.NaN()
		}

		var (
			score   float64
			matched int
		)
		for _, f := range fields {
			if a.Field(f) == "" || b.Field(f) == "" {
				continue // absent or empty: skip silently
			}
			s, ok := cmp.Compare(f, a, b)
			if !ok {
				continue
			}
			score += s
			matched++
		}
		if matched == 0 {
			return 0
		}

		return score / float64(matched)
	}
}

func asRecord(v any) (record.Record, bool) {
	switch r := v.(type) {
	case record.Record:
		return r, true
	case *record.Record:
		if r != nil {
			return *r, true
		}
	}
	return record.Record{}, false
}
