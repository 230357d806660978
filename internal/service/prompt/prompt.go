package prompt

import (
	"fmt"

	"github.com/sandevgo/annals/internal/core"
)

const (
	TextStart = "---TEXT START---"
	TextEnd   = "---TEXT END---"
)

const systemPrompt = `You are a meticulous assistant for organising historical events. Read the input text carefully, extract the historical events it describes and output them strictly in the following JSON format.

Output format:
- The output must be a valid JSON array.
- Every event object contains exactly these fields:
  - date: the date in "YYYY-MM-DD" format; infer missing parts as well as the text allows
  - time: the hour in 24-hour clock as an integer from 0 to 23; use 12 when unknown
  - event: a short, clear title of the event
  - description: a detailed account of what happened
  - mood: the emotional state of the people involved; separate several moods with commas
  - impact: the significance of the event, exactly one of "low", "medium", "high"
  - historical_context: the historical circumstances in which the event took place

Rules:
1. Output only the JSON array, with no surrounding prose or explanation.
2. If the text contains no clear historical events, return an empty array [].
3. Every field must be present and correctly formatted.
4. Dates must always use the YYYY-MM-DD format.
5. Descriptions must be objective and based only on the text.`

func BuildSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt embeds the chunk verbatim between sentinels together with its
// position in the source.
func BuildUserPrompt(chunk string, index, total int) string {
	return fmt.Sprintf(`Analyse the following text fragment (part %d/%d) and extract the historical events it contains:

%s
%s
%s

Output the extracted events strictly as a JSON array.`, index+1, total, TextStart, chunk, TextEnd)
}

func Messages(chunk core.Chunk) []core.Message {
	return []core.Message{
		{Role: core.RoleSystem, Content: BuildSystemPrompt()},
		{Role: core.RoleUser, Content: BuildUserPrompt(chunk.Text, chunk.Index, chunk.Total)},
	}
}
