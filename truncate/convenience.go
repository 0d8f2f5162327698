package truncate

import "strings"

// ToTokens truncates text to fit maxTokens using end truncation and the
// universal heuristic counter.
func ToTokens(text string, maxTokens int) string {
	result, _ := NewFromEnd().Truncate(text, nil, maxTokens)
	return result
}

// ToLines truncates text to a maximum number of lines, for previews.
func ToLines(text string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	return strings.Join(lines[:maxLines], "\n") + "\n..."
}
