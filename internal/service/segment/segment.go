package segment

import (
	"unicode"

	"github.com/sandevgo/annals/internal/core"
)

// boundaries are tried in strictly decreasing priority.
var boundaries = [][]rune{
	// paragraph break
	[]rune("\n\n"),
	// sentence end followed by a line break, list item start
	[]rune("。\n"),
	[]rune("！\n"),
	[]rune("？\n"),
	[]rune(".\n"),
	[]rune("!\n"),
	[]rune("?\n"),
	[]rune("\n-"),
	// bare line break
	[]rune("\n"),
	// bare sentence end
	[]rune("。"),
	[]rune("！"),
	[]rune("？"),
	[]rune("."),
	[]rune("!"),
	[]rune("?"),
}

// Split cuts text into overlapping chunks of at most chunkSize runes, preferring
// to end a chunk on a paragraph or sentence boundary in the second half of the
// window. Consecutive chunks share overlap runes. Whitespace-only chunks are dropped.
func Split(text string, chunkSize, overlap int) []core.Chunk {
	if chunkSize < 1 {
		chunkSize = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}

	runes := []rune(text)
	n := len(runes)

	var chunks []core.Chunk
	start := 0
	for start < n {
		end := min(start+chunkSize, n)
		if end < n {
			if cut := findBoundary(runes, start, end, chunkSize); cut > 0 {
				end = cut
			}
		}

		if c, ok := trimmed(runes, start, end); ok {
			chunks = append(chunks, c)
		}

		if end >= n {
			break
		}

		next := end - overlap
		if next <= start {
			// the boundary landed so early that the overlap would stall the window
			next = end
		}
		start = next
	}

	for i := range chunks {
		chunks[i].Index = i
		chunks[i].Total = len(chunks)
	}
	return chunks
}

// findBoundary returns the cut position right after the highest-priority marker
// found past the window midpoint, or -1.
func findBoundary(runes []rune, start, end, chunkSize int) int {
	floor := start + chunkSize/2
	for _, sep := range boundaries {
		pos := lastIndex(runes, sep, start, end)
		if pos > floor {
			return pos + len(sep)
		}
	}
	return -1
}

// lastIndex finds the last occurrence of sep lying entirely within runes[start:end].
func lastIndex(runes, sep []rune, start, end int) int {
	for p := end - len(sep); p >= start; p-- {
		match := true
		for j, r := range sep {
			if runes[p+j] != r {
				match = false
				break
			}
		}
		if match {
			return p
		}
	}
	return -1
}

func trimmed(runes []rune, start, end int) (core.Chunk, bool) {
	for start < end && unicode.IsSpace(runes[start]) {
		start++
	}
	for end > start && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if start == end {
		return core.Chunk{}, false
	}
	return core.Chunk{
		Text:  string(runes[start:end]),
		Start: start,
		End:   end,
	}, true
}
