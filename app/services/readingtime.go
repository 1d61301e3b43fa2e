package services

import (
	"regexp"
	"strings"

	"spacetraveling/app/models"
)

// WordsPerMinute is the fixed reading speed used for estimates.
const WordsPerMinute = 200

var whitespace = regexp.MustCompile(`\s+`)

// BodyPlainText renders a rich-text body to plain text by concatenating
// its span texts in order.
func BodyPlainText(spans []models.Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// countWords splits on whitespace without filtering empty tokens, so an
// empty string still counts as one word. A blank body therefore adds a
// single spurious token to the total; tests pin this quirk.
func countWords(s string) int {
	return len(whitespace.Split(s, -1))
}

// EstimateReadingTime returns the estimated minutes to read the given
// content, at WordsPerMinute, rounded up. Every block is counted
// exactly once: its heading (only when non-empty) plus its body
// rendered to plain text. Nil or empty content yields 0; the caller
// decides how to present the missing estimate.
func EstimateReadingTime(blocks []models.ContentBlock) int {
	if len(blocks) == 0 {
		return 0
	}

	total := 0
	for _, blk := range blocks {
		if blk.Heading != "" {
			total += countWords(blk.Heading)
		}
		total += countWords(BodyPlainText(blk.Body))
	}

	return (total + WordsPerMinute - 1) / WordsPerMinute
}
