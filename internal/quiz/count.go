package quiz

import (
	"fmt"
	"strings"
)

// Density controls how many questions a quiz gets relative to the
// transcript's complexity.
type Density string

const (
	DensityLow    Density = "low"
	DensityMedium Density = "medium"
	DensityHigh   Density = "high"
)

// Valid returns true for a recognized density.
func (d Density) Valid() bool {
	switch d {
	case DensityLow, DensityMedium, DensityHigh:
		return true
	}
	return false
}

// ParseDensity normalizes a string into a Density.
func ParseDensity(s string) (Density, error) {
	d := Density(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid question density: %q", s)
	}
	return d, nil
}

func (d Density) multiplier() float64 {
	switch d {
	case DensityLow:
		return 0.6
	case DensityHigh:
		return 1.4
	default:
		return 1.0
	}
}

// Question count bounds.
const (
	minQuestions = 3
	maxQuestions = 20
)

// complexityScore rates a transcript 0..100 from its sentence count,
// paragraph count, vocabulary size, and length.
func complexityScore(text string) int {
	var sentences int
	for _, s := range splitSentences(text) {
		if len(s) > 20 {
			sentences++
		}
	}

	var paragraphs int
	for _, p := range strings.Split(text, "\n\n") {
		if len(strings.TrimSpace(p)) > 50 {
			paragraphs++
		}
	}

	unique := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		unique[w] = struct{}{}
	}

	score := sentences*2 + paragraphs*3 + len(unique)/10 + len(text)/100
	if score > 100 {
		score = 100
	}
	return score
}

// QuestionCount decides how many questions to generate for a transcript.
// The result is bounded by 3..20 and never exceeds the number of sentences
// long enough to ask about.
func QuestionCount(text string, density Density) int {
	base := complexityScore(text) / 10
	if base < minQuestions {
		base = minQuestions
	}
	if base > 15 {
		base = 15
	}

	n := int(float64(base) * density.multiplier())
	if n < minQuestions {
		n = minQuestions
	}
	if n > maxQuestions {
		n = maxQuestions
	}

	var askable int
	for _, s := range splitSentences(text) {
		if len(s) > 20 {
			askable++
		}
	}
	if askable > 0 && n > askable {
		n = askable
	}
	return n
}
