// Package truncate compresses multi-line story descriptions into a
// bounded summary suitable for a compact chat attachment.
package truncate

import (
	"strings"
	"unicode"
)

const ellipsis = "..."

// Description bounds text to at most maxLines lines and maxChars
// characters, counting runes. Whole lines are accumulated greedily; the
// first line that would overflow the budget is cut back to the last word
// boundary inside the remaining budget. The ellipsis marker is appended
// exactly when content was dropped, by line count or by character count,
// and never counts against the budget.
func Description(text string, maxChars, maxLines int) string {
	lines := splitAfterNewlines(text)

	truncatedByLines := false
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		truncatedByLines = true
	}

	var result strings.Builder
	length := 0
	for _, line := range lines {
		runes := []rune(line)
		if length+len(runes) <= maxChars {
			result.WriteString(line)
			length += len(runes)
			continue
		}

		result.WriteString(trimToWordBoundary(runes, maxChars-length))
		result.WriteString(ellipsis)
		return result.String()
	}

	if truncatedByLines {
		result.WriteString(ellipsis)
	}

	return result.String()
}

// trimToWordBoundary slices budget runes off the front of line and drops
// the trailing partial word plus the whitespace before it. A slice with
// no interior whitespace is kept whole: a single unbroken word longer
// than the budget gets a hard character cut.
func trimToWordBoundary(line []rune, budget int) string {
	if budget < 0 {
		budget = 0
	}
	if budget > len(line) {
		budget = len(line)
	}
	slice := line[:budget]

	end := len(slice)
	for end > 0 && !unicode.IsSpace(slice[end-1]) {
		end--
	}
	if end == 0 {
		return string(slice)
	}

	for end > 0 && unicode.IsSpace(slice[end-1]) {
		end--
	}
	if end == 0 {
		return string(slice)
	}

	return string(slice[:end])
}

// splitAfterNewlines splits text into lines keeping each terminator with
// its line, so accumulation preserves the original layout.
func splitAfterNewlines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	for {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, text)
			return lines
		}

		lines = append(lines, text[:idx+1])
		text = text[idx+1:]
		if text == "" {
			return lines
		}
	}
}
