package collection

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Record is one backend entity. It keeps the exact bytes it was decoded from so
// that re-encoding it is lossless, alongside a decoded view of its fields.
// Numbers are kept as json.Number.
type Record struct {
	raw    json.RawMessage
	fields map[string]any
}

// NewRecord builds a Record from one JSON value. Values that are not objects
// keep their bytes but expose no fields.
func NewRecord(raw json.RawMessage) Record {
	r := Record{raw: append(json.RawMessage(nil), raw...)}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err == nil {
		r.fields = fields
	}
	return r
}

// Raw returns a copy of the bytes the record was decoded from.
func (r Record) Raw() json.RawMessage {
	return append(json.RawMessage(nil), r.raw...)
}

// MarshalJSON re-emits the bytes the record was decoded from.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw(), nil
}

// Field returns the decoded value of name.
func (r Record) Field(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// ID returns the record identifier as text, or "" when it has none.
func (r Record) ID() string {
	return r.String("id")
}

// String renders a field as text. Missing and null fields are "".
func (r Record) String(name string) string {
	v, ok := r.fields[name]
	if !ok {
		return ""
	}
	return stringify(v)
}

// Truthy reports whether a field holds a value other than null, false, zero or "".
func (r Record) Truthy(name string) bool {
	v, ok := r.fields[name]
	if !ok {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// StringOr renders a field, substituting fallback when the field is not truthy.
func (r Record) StringOr(name, fallback string) string {
	if !r.Truthy(name) {
		return fallback
	}
	return r.String(name)
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
