package admonition

import "strings"

// Dedent strips exactly col leading space columns from every non-blank line
// of raw, enabling correct parsing of blocks nested under list items. Blank
// lines pass through unchanged. Indentation beyond col stays, it is
// significant content (nested fences, nested lists).
//
// Only spaces count as indentation columns: a tab inside the fence column, or
// a non-blank line with fewer than col leading spaces, means the document is
// malformed relative to what the fence position promised.
func Dedent(raw string, col int) (string, error) {
	if col == 0 {
		return raw, nil
	}
	lines := strings.Split(raw, "\n")
	offset := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			offset += len(line) + 1
			continue
		}
		for j := 0; j < col; j++ {
			if j >= len(line) || line[j] != ' ' {
				return "", &ParseError{
					Kind:   ErrorKindUnbalancedIndentation,
					Offset: offset + j,
					Detail: "line has fewer leading spaces than the fence column",
				}
			}
		}
		lines[i] = line[col:]
		offset += len(line) + 1
	}
	return strings.Join(lines, "\n"), nil
}

// Indent prefixes every non-blank line with col spaces. Blank lines are left
// alone so that Indent(Dedent(raw)) reproduces raw byte for byte.
func Indent(text string, col int) string {
	if col == 0 || text == "" {
		return text
	}
	pad := strings.Repeat(" ", col)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
