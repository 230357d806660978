package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, raw string) EventRecord {
	t.Helper()
	r, err := NewEventRecord(json.RawMessage(raw))
	require.NoError(t, err)
	return r
}

func TestNewEventRecord_RejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"text"`, `42`, `null`, `{`} {
		_, err := NewEventRecord(json.RawMessage(raw))
		assert.Error(t, err, raw)
	}
}

func TestEventRecord_String(t *testing.T) {
	r := mustRecord(t, `{"date":"1949-10-01","time":15,"event":null,"tags":["a","b"]}`)

	assert.Equal(t, "1949-10-01", r.String("date"))
	assert.Equal(t, "15", r.String("time"))
	assert.Equal(t, "", r.String("event"))
	assert.Equal(t, "", r.String("missing"))
	assert.Equal(t, `["a","b"]`, r.String("tags"))
}

func TestEventRecord_Key(t *testing.T) {
	r := mustRecord(t, `{"date":"1945-08-15","event":"surrender","mood":"relief"}`)
	assert.Equal(t, DedupKey{Date: `"1945-08-15"`, Event: `"surrender"`}, r.Key())

	empty := mustRecord(t, `{"description":"no key fields"}`)
	assert.Equal(t, DedupKey{}, empty.Key())

	null := mustRecord(t, `{"date":null,"event":null}`)
	assert.Equal(t, empty.Key(), null.Key())
}

func TestEventRecord_KeyKeepsValueTypes(t *testing.T) {
	number := mustRecord(t, `{"date":1949,"event":"开国大典"}`)
	text := mustRecord(t, `{"date":"1949","event":"开国大典"}`)
	blank := mustRecord(t, `{"date":"","event":"开国大典"}`)
	missing := mustRecord(t, `{"event":"开国大典"}`)

	assert.NotEqual(t, number.Key(), text.Key())
	assert.NotEqual(t, blank.Key(), missing.Key())
	assert.Equal(t, text.Key(), mustRecord(t, `{"event":"开国大典","date":"1949","mood":"x"}`).Key())
}

func TestEventRecord_Issues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "complete record",
			raw: `{"date":"1948-09-12","time":9,"event":"campaign begins","description":"d",
				"mood":"resolute","impact":"high","historical_context":"c"}`,
			want: nil,
		},
		{
			name: "bad values",
			raw: `{"date":"1948-9","time":25,"event":"e","description":"d",
				"mood":"m","impact":"huge","historical_context":"c"}`,
			want: []string{
				`date "1948-9" is not YYYY-MM-DD`,
				`time "25" is not an hour 0-23`,
				`impact "huge" is not one of low, medium, high`,
			},
		},
		{
			name: "missing fields",
			raw:  `{"date":"1948-09-12","event":"e"}`,
			want: []string{
				"missing time",
				"missing description",
				"missing mood",
				"missing impact",
				"missing historical_context",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRecord(t, tt.raw).Issues())
		})
	}
}

func TestEventRecord_MarshalJSON(t *testing.T) {
	r := mustRecord(t, `{"zeta":1,"event":"开国大典","date":"1949-10-01","alpha":"<b>","time":15}`)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	// json.Marshal re-escapes HTML in marshaler output, so compare the record's own encoding.
	own, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"date":"1949-10-01","time":15,"event":"开国大典","alpha":"<b>","zeta":1}`, string(own))

	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, "<b>", roundTrip["alpha"])
}

func TestChunk_Position(t *testing.T) {
	assert.Equal(t, "1/3", Chunk{Index: 0, Total: 3}.Position())
	assert.Equal(t, "3/3", Chunk{Index: 2, Total: 3}.Position())
}
