package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
)

// EventFields lists the record schema in output order.
var EventFields = []string{
	"date",
	"time",
	"event",
	"description",
	"mood",
	"impact",
	"historical_context",
}

var ImpactLevels = []string{"low", "medium", "high"}

var dateLayout = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var errNotObject = errors.New("record is not a JSON object")

// DedupKey identifies logically identical records across chunks. Each part
// holds the JSON text of the field value, or "" when it is missing or null.
type DedupKey struct {
	Date  string
	Event string
}

// EventRecord is a single event object exactly as the model produced it.
// Fields are never synthesized or rewritten.
type EventRecord struct {
	fields map[string]any
}

func NewEventRecord(raw json.RawMessage) (EventRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return EventRecord{}, fmt.Errorf("decode record: %w", err)
	}
	if fields == nil {
		return EventRecord{}, errNotObject
	}
	return EventRecord{fields: fields}, nil
}

func (r EventRecord) Field(key string) (any, bool) {
	v, ok := r.fields[key]
	return v, ok
}

func (r EventRecord) Len() int {
	return len(r.fields)
}

// String returns the field rendered as text. Missing and null fields yield "".
func (r EventRecord) String(key string) string {
	switch v := r.fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		b, err := encodeValue(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// Key returns the dedup key. Values are compared by their JSON text, so the
// number 1949 and the string "1949" stay distinct; missing and null are equal.
func (r EventRecord) Key() DedupKey {
	return DedupKey{
		Date:  r.keyPart("date"),
		Event: r.keyPart("event"),
	}
}

func (r EventRecord) keyPart(key string) string {
	v := r.fields[key]
	if v == nil {
		return ""
	}
	b, err := encodeValue(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Issues reports deviations from the record schema. They are diagnostics only.
func (r EventRecord) Issues() []string {
	var issues []string
	for _, f := range EventFields {
		if _, ok := r.fields[f]; !ok {
			issues = append(issues, "missing "+f)
		}
	}

	if d, ok := r.fields["date"]; ok {
		if s, isStr := d.(string); !isStr || !dateLayout.MatchString(s) {
			issues = append(issues, fmt.Sprintf("date %q is not YYYY-MM-DD", r.String("date")))
		}
	}

	if t, ok := r.fields["time"]; ok {
		n, isNum := t.(json.Number)
		hour, err := n.Int64()
		if !isNum || err != nil || hour < 0 || hour > 23 {
			issues = append(issues, fmt.Sprintf("time %q is not an hour 0-23", r.String("time")))
		}
	}

	if i, ok := r.fields["impact"]; ok {
		if s, isStr := i.(string); !isStr || !slices.Contains(ImpactLevels, s) {
			issues = append(issues, fmt.Sprintf("impact %q is not one of low, medium, high", r.String("impact")))
		}
	}

	return issues
}

// MarshalJSON writes schema fields first, in schema order, then any extra keys sorted.
// Non-ASCII text and HTML characters are written unescaped.
func (r EventRecord) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(r.fields))
	for _, f := range EventFields {
		if _, ok := r.fields[f]; ok {
			keys = append(keys, f)
		}
	}

	var extra []string
	for k := range r.fields {
		if !slices.Contains(EventFields, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := encodeValue(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := encodeValue(r.fields[k])
		if err != nil {
			return nil, fmt.Errorf("encode field %s: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
