// Package record models the caller's items for field-aggregated comparison.
//
// A Record keeps the original JSON object untouched (so results echo the
// caller's values verbatim) next to a flat view of its string fields.
// Text fields are read from the top level and from a nested "data" object
// (character card v2 layout); top-level values win.
package record

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrNotObject indicates a record's JSON is not an object.
var ErrNotObject = errors.New("record: JSON value is not an object")

// Keys read from the raw object besides free-form text fields.
const (
	KeyName     = "name"
	KeyData     = "data"
	KeyModified = "modified"
)

// modifiedFallbacks are consulted in order when "modified" is absent.
var modifiedFallbacks = []string{"date_last_chat", "create_date"}

// Record is one comparable item.
type Record struct {
	// Name identifies the record in memo keys and logs.
	Name string

	// Modified is the recorded modification timestamp (epoch ms); 0 if unknown.
	Modified int64

	// Fields maps field names to their string values.
	Fields map[string]string

	raw json.RawMessage
}

// New builds a Record from Go values; its JSON form is synthesized from them.
func New(name string, modified int64, fields map[string]string) Record {
	f := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		f[k] = v
	}
	if name != "" {
		f[KeyName] = name
	}

	return Record{Name: name, Modified: modified, Fields: f}
}

// Field returns the value of field key, or "" when absent.
func (r Record) Field(key string) string {
	return r.Fields[key]
}

// String implements fmt.Stringer.
func (r Record) String() string {
	if r.Name != "" {
		return r.Name
	}
	return "<unnamed>"
}

// UnmarshalJSON decodes a JSON object and retains the raw bytes.
func (r *Record) UnmarshalJSON(b []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if obj == nil {
		return ErrNotObject
	}

	fields := make(map[string]string, len(obj))
	data := dataObject(obj)
	collectStrings(data, fields)
	collectStrings(obj, fields)

	r.Name = fields[KeyName]
	r.Modified = timestamp(obj, data)
	r.Fields = fields
	r.raw = append(r.raw[:0], b...)

	return nil
}

// MarshalJSON returns the original object when the record was decoded,
// otherwise its fields plus "modified".
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	out := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	if r.Modified != 0 {
		out[KeyModified] = r.Modified
	}

	return json.Marshal(out)
}

// collectStrings copies every string-valued key of src into dst.
func collectStrings(src map[string]any, dst map[string]string) {
	for k, v := range src {
		if s, ok := v.(string); ok {
			dst[k] = s
		}
	}
}

// dataObject returns the nested card "data" object, or nil.
func dataObject(obj map[string]any) map[string]any {
	m, _ := obj[KeyData].(map[string]any)
	return m
}

// timestamp reads "modified", then the fallbacks, from obj then data.
func timestamp(obj, data map[string]any) int64 {
	keys := append([]string{KeyModified}, modifiedFallbacks...)
	for _, src := range []map[string]any{obj, data} {
		for _, k := range keys {
			if v, ok := src[k].(float64); ok {
				return int64(v)
			}
		}
	}

	return 0
}
