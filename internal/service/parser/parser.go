package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/pkg/log"
)

// WrapperKeys are object keys models use to wrap the event array, in lookup order.
var WrapperKeys = []string{"events", "data", "result", "items"}

const fence = "```"

// Parse turns a raw completion into record candidates. It never fails: replies
// that cannot be understood yield an empty slice.
func Parse(ctx context.Context, raw string) []core.EventRecord {
	logger := log.FromCtx(ctx)

	cleaned := StripFence(raw)
	if cleaned == "" {
		logger.Warn().Msg("empty reply, no events")
		return []core.EventRecord{}
	}

	var doc json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		repaired := repairJSON(cleaned)
		if repairErr := json.Unmarshal([]byte(repaired), &doc); repairErr != nil {
			logger.Warn().Err(err).Str("reply", truncate(cleaned, 200)).Msg("reply is not valid JSON")
			return []core.EventRecord{}
		}
		logger.Debug().Msg("reply parsed after JSON repair")
	}

	items := unwrap(doc)

	records := make([]core.EventRecord, 0, len(items))
	for i, item := range items {
		rec, err := core.NewEventRecord(item)
		if err != nil {
			logger.Debug().Err(err).Int("item", i).Msg("skipping non-object candidate")
			continue
		}
		records = append(records, rec)
	}
	return records
}

// StripFence removes a leading markdown code fence (with or without a language
// tag) and a trailing fence.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fence) {
		s = strings.TrimPrefix(s, fence)
		s = strings.TrimLeftFunc(s, isTagRune)
	}
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

func unwrap(doc json.RawMessage) []json.RawMessage {
	switch firstByte(doc) {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(doc, &items); err != nil {
			return nil
		}
		return items
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(doc, &obj); err != nil {
			return nil
		}
		for _, key := range WrapperKeys {
			v, ok := obj[key]
			if !ok || firstByte(v) != '[' {
				continue
			}
			var items []json.RawMessage
			if err := json.Unmarshal(v, &items); err == nil {
				return items
			}
		}
		return []json.RawMessage{doc}
	default:
		return nil
	}
}

func firstByte(b []byte) byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

func isTagRune(r rune) bool {
	return isLetter(r) || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '+'
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
