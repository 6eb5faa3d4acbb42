package quiz

import (
	"strings"
	"unicode/utf8"
)

// TextStats summarises study material before it is sent to the model.
type TextStats struct {
	Characters int
	Words      int
}

// ContentStats counts characters and whitespace-separated words in text.
func ContentStats(text string) TextStats {
	return TextStats{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}
}
