package extractor

import "github.com/sandevgo/annals/internal/core"

// Dedup keeps the first record of every (date, event) key in input order.
func Dedup(records []core.EventRecord) []core.EventRecord {
	seen := make(map[core.DedupKey]struct{}, len(records))
	unique := make([]core.EventRecord, 0, len(records))

	for _, r := range records {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}
