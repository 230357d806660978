package ui

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/internal/service/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, events ...string) []core.EventRecord {
	t.Helper()
	out := make([]core.EventRecord, 0, len(events))
	for _, e := range events {
		raw, err := json.Marshal(map[string]string{"event": e, "date": "1949-10-01"})
		require.NoError(t, err)
		r, err := core.NewEventRecord(raw)
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestRenderRecords(t *testing.T) {
	recs := records(t, "开国大典", "朝鲜战争爆发", "停战协定签署")

	out, err := RenderRecords(recs, 2)
	require.NoError(t, err)
	assert.Contains(t, out, "Preview (2 of 3)")
	assert.Contains(t, out, "开国大典")
	assert.Contains(t, out, "朝鲜战争爆发")
	assert.NotContains(t, out, "停战协定签署")

	out, err = RenderRecords(recs, 10)
	require.NoError(t, err)
	assert.Contains(t, out, "停战协定签署")

	out, err = RenderRecords(nil, 2)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderChunks(t *testing.T) {
	out := RenderChunks([]ChunkRow{
		{Position: "1/2", Start: 0, End: 10, Tokens: 7, Head: "第一句话。\n第二句话。"},
		{Position: "2/2", Start: 8, End: 15, Tokens: -1, Head: "话。第三句话。"},
	})

	assert.Contains(t, out, "2 chunk(s)")
	assert.Contains(t, out, "[0:10]")
	assert.Contains(t, out, "~7 tokens")
	assert.Contains(t, out, "n/a tokens")
	assert.Contains(t, out, "第一句话。 第二句话。")
	assert.Equal(t, 1, strings.Count(out, "1/2"))
}

func TestRenderStats(t *testing.T) {
	out := RenderStats(extractor.Stats{Chunks: 4, Failed: 1, Candidates: 9, Unique: 7, Elapsed: 2 * time.Second}, "events.json")
	assert.Contains(t, out, "Extracted 7 event(s) from 4 chunk(s)")
	assert.Contains(t, out, "1 failed chunk(s)")
	assert.Contains(t, out, "events.json")

	assert.Contains(t, RenderStats(extractor.Stats{Chunks: 2}, ""), "No events extracted.")
}
