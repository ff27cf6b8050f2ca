package alias

// StripJSONC removes line comments, block comments and trailing commas from
// hand-written JSON such as tsconfig.json. String literals are left intact.
func StripJSONC(data []byte) []byte {
	out := make([]byte, 0, len(data))

	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)

			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch {
		case c == '"':
			inString = true

			out = append(out, c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}

			if i < len(data) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && (data[i] != '*' || data[i+1] != '/') {
				i++
			}

			i++
		case c == ',' && closesAfter(data, i+1):
			// trailing comma
		default:
			out = append(out, c)
		}
	}

	return out
}

// closesAfter reports whether the next significant byte from i closes an
// object or array, skipping whitespace and comments.
func closesAfter(data []byte, i int) bool {
	for i < len(data) {
		switch c := data[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && (data[i] != '*' || data[i+1] != '/') {
				i++
			}

			i += 2
		default:
			return c == '}' || c == ']'
		}
	}

	return false
}
