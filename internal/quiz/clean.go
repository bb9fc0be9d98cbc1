// Package quiz generates quizzes from video transcripts, with a remote
// generation path and deterministic local fallbacks.
package quiz

import (
	"regexp"
	"strings"
)

var (
	bracketTimestampRe = regexp.MustCompile(`\[\d{2}:\d{2}:\d{2}\]`)
	parenTimestampRe   = regexp.MustCompile(`\(\d{2}:\d{2}\)`)
	speakerLabelRe     = regexp.MustCompile(`(?m)^Speaker \d+:\s*`)
	whitespaceRe       = regexp.MustCompile(`\s+`)
	sentenceSplitRe    = regexp.MustCompile(`[.!?]+`)
)

// CleanTranscript strips timestamps and speaker labels and collapses
// whitespace so question generation works on plain prose.
func CleanTranscript(text string) string {
	text = bracketTimestampRe.ReplaceAllString(text, " ")
	text = parenTimestampRe.ReplaceAllString(text, " ")
	text = speakerLabelRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// splitSentences returns trimmed, non-empty sentence fragments.
func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
