package summarize

// repairJSON attempts to fix common JSON formatting issues in LLM
// responses, specifically keys that lost their opening quote
// (e.g. `, source":` becomes `, "source":`).
func repairJSON(s string) string {
	result := []rune(s)
	fixed := make([]rune, 0, len(result)+16)

	i := 0
	for i < len(result) {
		ch := result[i]

		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++

		for i < len(result) && (result[i] == ' ' || result[i] == '\n' || result[i] == '\t') {
			fixed = append(fixed, result[i])
			i++
		}

		// unquoted key candidate: letters up to a `":` pair
		if i < len(result) && result[i] != '"' && isASCIILetter(result[i]) {
			keyStart := i
			for i < len(result) && (isASCIILetter(result[i]) || result[i] == '_') {
				i++
			}
			if i+1 < len(result) && result[i] == '"' && result[i+1] == ':' {
				fixed = append(fixed, '"')
				fixed = append(fixed, result[keyStart:i]...)
				continue
			}
			fixed = append(fixed, result[keyStart:i]...)
		}
	}

	return string(fixed)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
