package parser

// repairJSON fixes keys that lost their opening quote, a common defect in model
// output: `{date": "1949-10-01"}` becomes `{"date": "1949-10-01"}`.
func repairJSON(s string) string {
	src := []rune(s)
	fixed := make([]rune, 0, len(src)+16)

	i := 0
	for i < len(src) {
		ch := src[i]
		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++

		for i < len(src) && (src[i] == ' ' || src[i] == '\n' || src[i] == '\t' || src[i] == '\r') {
			fixed = append(fixed, src[i])
			i++
		}

		if i >= len(src) || src[i] == '"' || !isLetter(src[i]) {
			continue
		}

		keyStart := i
		for i < len(src) && (isLetter(src[i]) || src[i] == '_') {
			i++
		}

		if i+1 < len(src) && src[i] == '"' && src[i+1] == ':' {
			fixed = append(fixed, '"')
		}
		fixed = append(fixed, src[keyStart:i]...)
	}

	return string(fixed)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
