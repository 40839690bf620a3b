// This file declares the request and message types and their JSON forms.

package engine

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/katalvlaran/simcluster/record"
)

// Sentinel errors for request handling.
var (
	// ErrUnknownMode indicates a mode outside the supported set.
	ErrUnknownMode = errors.New("engine: unknown mode")

	// ErrBadThreshold indicates a threshold outside [0, 1].
	ErrBadThreshold = errors.New("engine: threshold must be within [0, 1]")

	// ErrBadCount indicates a group count below 1 for a counted mode.
	ErrBadCount = errors.New("engine: count must be at least 1")

	// ErrBadDepth indicates a negative search depth.
	ErrBadDepth = errors.New("engine: search depth cannot be negative")

	// ErrBadRequest indicates request JSON that is neither an object nor an array.
	ErrBadRequest = errors.New("engine: malformed request")
)

// Mode selects the grouping query run over the similarity graph.
type Mode string

const (
	// ModeSimilar groups records connected through pairs scoring ≥ Threshold.
	ModeSimilar Mode = "similar"
	// ModeGroups searches for Count groups.
	ModeGroups Mode = "groups"
	// ModeRepresentatives returns up to Count records, one per group.
	ModeRepresentatives Mode = "representatives"
	// ModeEven grows exactly Count groups and balances the rest.
	ModeEven Mode = "even"
)

// ParseMode accepts a mode name case-insensitively. "" is ModeSimilar.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return ModeSimilar, nil
	case ModeSimilar, ModeGroups, ModeRepresentatives, ModeEven:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Counted reports whether m needs Request.Count.
func (m Mode) Counted() bool { return m != ModeSimilar && m != "" }

// Request is one clustering job.
type Request struct {
	// ID tags log lines; a random UUID is assigned when empty.
	ID string `json:"id,omitempty"`

	// Threshold is the cutoff for ModeSimilar, within [0, 1].
	Threshold float64 `json:"threshold"`

	// Characters are the records to cluster.
	Characters []record.Record `json:"characters"`

	// Method names the field metric: "levenshtein" or "sentence".
	// Anything else selects levenshtein.
	Method string `json:"method"`

	// Fields lists the compared fields; empty means metric.DefaultFields.
	Fields []string `json:"fields"`

	Mode        string `json:"mode,omitempty"`
	Count       int    `json:"count,omitempty"`
	SearchDepth int    `json:"searchDepth,omitempty"`
}

// ParseRequest decodes a request object, or a bare array of records which
// then gets zero values for everything else.
func ParseRequest(b []byte) (Request, error) {
	var req Request
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return req, fmt.Errorf("%w: empty input", ErrBadRequest)
	}

	switch trimmed[0] {
	case '{':
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return req, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	case '[':
		if err := json.Unmarshal(trimmed, &req.Characters); err != nil {
			return req, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	default:
		return req, fmt.Errorf("%w: expected object or array", ErrBadRequest)
	}

	return req, nil
}

// Type tags a Message.
type Type string

const (
	TypeProgress Type = "progress"
	TypeResult   Type = "result"
	TypeFailed   Type = "failed"
)

// Progress reports graph construction. TotalRuns is n·(n−1).
type Progress struct {
	Percent   int `json:"percent"`
	Run       int `json:"run"`
	TotalRuns int `json:"totalRuns"`
}

// Message is one element of a request's output stream. Exactly one field
// besides Type and RequestID is meaningful, selected by Type.
type Message struct {
	Type      Type
	RequestID string

	Progress Progress
	Groups   [][]record.Record
	Err      error
}

// Terminal reports whether m ends its stream.
func (m Message) Terminal() bool { return m.Type != TypeProgress }

type envelope struct {
	Type Type `json:"type"`
	Data any  `json:"data"`
}

type failure struct {
	Error string `json:"error"`
}

// MarshalJSON renders {"type": ..., "data": ...}. Result data is the list of
// groups holding the records as they were received.
func (m Message) MarshalJSON() ([]byte, error) {
	env := envelope{Type: m.Type}
	switch m.Type {
	case TypeProgress:
		env.Data = m.Progress
	case TypeResult:
		groups := m.Groups
		if groups == nil {
			groups = [][]record.Record{}
		}
		env.Data = groups
	case TypeFailed:
		msg := "unknown error"
		if m.Err != nil {
			msg = m.Err.Error()
		}
		env.Data = failure{Error: msg}
	default:
		return nil, fmt.Errorf("engine: cannot encode message type %q", m.Type)
	}

	return json.Marshal(env)
}
