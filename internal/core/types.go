package core

import "strconv"

const (
	AnnalsName          = "Annals"
	AnnalsUserAgent     = "Annals-Extractor/0.1"
	AnnalsRepositoryURL = "https://github.com/sandevgo/annals"
	AnnalsVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chunk is a bounded window of the source text submitted as one model request.
// Start and End are rune offsets of Text inside the source.
type Chunk struct {
	Text  string
	Index int
	Total int
	Start int
	End   int
}

// Position renders the 1-based provenance marker, e.g. "3/12".
func (c Chunk) Position() string {
	return strconv.Itoa(c.Index+1) + "/" + strconv.Itoa(c.Total)
}
