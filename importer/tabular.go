package importer

import "strings"

const bom = "\ufeff"

// ParseTable turns raw file text into a matrix of trimmed string cells.
// The delimiter is sniffed once per file: a tab anywhere in the first
// non-empty line makes the whole file tab-delimited, otherwise it is
// comma-delimited. Blank lines are discarded. Empty input yields an
// empty matrix.
func ParseTable(text string) [][]string {
	text = strings.TrimPrefix(text, bom)

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	tabbed := strings.ContainsRune(lines[0], '\t')

	matrix := make([][]string, 0, len(lines))
	for _, line := range lines {
		if tabbed {
			matrix = append(matrix, splitTabs(line))
		} else {
			matrix = append(matrix, splitCSVLine(line))
		}
	}
	return matrix
}

func splitTabs(line string) []string {
	parts := strings.Split(line, "\t")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// splitCSVLine splits one comma-delimited line with quote awareness:
// a double-quoted field may contain commas, and "" inside a quoted field
// collapses to one literal quote. Fields never span lines — line splitting
// has already happened.
func splitCSVLine(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if quoted && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				quoted = !quoted
			}
		case ch == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// NormalizeHeader canonicalizes a column label for fuzzy matching: BOM
// stripped, trimmed, lower-cased, with runs of whitespace or underscores
// collapsed to a single space.
func NormalizeHeader(label string) string {
	label = strings.TrimPrefix(label, bom)
	label = strings.ToLower(strings.TrimSpace(label))

	fields := strings.FieldsFunc(label, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '_'
	})
	return strings.Join(fields, " ")
}
