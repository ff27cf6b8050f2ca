package extract

import "strings"

// cStyleComments removes "//" line comments and "/* */" block comments,
// which may span lines. Double-quoted strings are respected within a line.
func cStyleComments() func(string) string {
	inBlock := false

	return func(line string) string {
		if !inBlock && !strings.Contains(line, "/") {
			return line
		}

		var b strings.Builder

		inString := false

		for i := 0; i < len(line); i++ {
			c := line[i]
			next := byte(0)

			if i+1 < len(line) {
				next = line[i+1]
			}

			switch {
			case inBlock:
				if c == '*' && next == '/' {
					inBlock = false
					i++

					b.WriteByte(' ')
				}
			case inString:
				b.WriteByte(c)

				if c == '\\' && next != 0 {
					b.WriteByte(next)
					i++
				} else if c == '"' {
					inString = false
				}
			case c == '"':
				inString = true

				b.WriteByte(c)
			case c == '/' && next == '/':
				return b.String()
			case c == '/' && next == '*':
				inBlock = true
				i++
			default:
				b.WriteByte(c)
			}
		}

		return b.String()
	}
}

// pythonComments removes "#" comments and the contents of triple-quoted
// strings, which commonly hold example code in docstrings.
func pythonComments() func(string) string {
	openDelim := ""

	return func(line string) string {
		var b strings.Builder

		for i := 0; i < len(line); {
			if openDelim != "" {
				end := strings.Index(line[i:], openDelim)
				if end < 0 {
					return b.String()
				}

				i += end + len(openDelim)
				openDelim = ""

				continue
			}

			rest := line[i:]
			if strings.HasPrefix(rest, `"""`) || strings.HasPrefix(rest, `'''`) {
				openDelim = rest[:3]
				i += 3

				continue
			}

			switch c := line[i]; c {
			case '#':
				return b.String()
			case '"', '\'':
				end := quotedEnd(line, i)
				b.WriteString(line[i:end])
				i = end
			default:
				b.WriteByte(c)
				i++
			}
		}

		return b.String()
	}
}

// rubyComments removes "#" comments and =begin/=end blocks.
func rubyComments() func(string) string {
	inBlock := false

	return func(line string) string {
		if inBlock {
			if strings.HasPrefix(line, "=end") {
				inBlock = false
			}

			return ""
		}

		if strings.HasPrefix(line, "=begin") {
			inBlock = true

			return ""
		}

		for i := 0; i < len(line); {
			switch line[i] {
			case '#':
				return line[:i]
			case '"', '\'':
				i = quotedEnd(line, i)
			default:
				i++
			}
		}

		return line
	}
}

// quotedEnd returns the index just past the string literal starting at i.
func quotedEnd(line string, i int) int {
	quote := line[i]

	j := i + 1
	for j < len(line) && line[j] != quote {
		if line[j] == '\\' {
			j++
		}

		j++
	}

	return min(j+1, len(line))
}
