package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors shared by the domain types.
var (
	ErrEmptyTitle        = errors.New("title must not be empty")
	ErrEmptyTranscript   = errors.New("transcript must not be empty")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")
	ErrInvalidLength     = errors.New("invalid length option")
)

// Difficulty is the vocabulary level a summary is written for.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyNovice       Difficulty = "novice"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// Difficulties returns all difficulty levels in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{
		DifficultyBeginner,
		DifficultyNovice,
		DifficultyIntermediate,
		DifficultyAdvanced,
		DifficultyExpert,
	}
}

// Valid returns true for a recognized difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyNovice, DifficultyIntermediate,
		DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// ParseDifficulty normalizes a string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// Length is the target size of a summary.
type Length string

const (
	LengthShort    Length = "short"
	LengthNormal   Length = "normal"
	LengthLong     Length = "long"
	LengthVeryLong Length = "very_long"
)

// Lengths returns all length options in ascending order.
func Lengths() []Length {
	return []Length{LengthShort, LengthNormal, LengthLong, LengthVeryLong}
}

// Valid returns true for a recognized length.
func (l Length) Valid() bool {
	switch l {
	case LengthShort, LengthNormal, LengthLong, LengthVeryLong:
		return true
	}
	return false
}

// ParseLength normalizes a string into a Length.
func ParseLength(s string) (Length, error) {
	l := Length(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return l, nil
}

// VariantKey identifies one summary variant.
type VariantKey struct {
	Difficulty Difficulty `json:"difficulty"`
	Length     Length     `json:"length"`
}

// Valid returns true when both dimensions are recognized.
func (k VariantKey) Valid() bool {
	return k.Difficulty.Valid() && k.Length.Valid()
}

func (k VariantKey) String() string {
	return string(k.Difficulty) + "/" + string(k.Length)
}

// AllVariantKeys returns the full difficulty x length key space.
func AllVariantKeys() []VariantKey {
	keys := make([]VariantKey, 0, len(Difficulties())*len(Lengths()))
	for _, d := range Difficulties() {
		for _, l := range Lengths() {
			keys = append(keys, VariantKey{Difficulty: d, Length: l})
		}
	}
	return keys
}

// FailureMarkerPrefix prefixes matrix entries for variants that failed.
// Consumers check for it to distinguish summaries from failure records.
const FailureMarkerPrefix = "Summary generation failed"

// VariantMatrix holds one entry per generated variant: either summary text
// or a failure marker.
type VariantMatrix map[Difficulty]map[Length]string

// Set records an entry for the given key.
func (m VariantMatrix) Set(key VariantKey, text string) {
	if m[key.Difficulty] == nil {
		m[key.Difficulty] = make(map[Length]string)
	}
	m[key.Difficulty][key.Length] = text
}

// Get returns the entry for the given key.
func (m VariantMatrix) Get(key VariantKey) (string, bool) {
	text, ok := m[key.Difficulty][key.Length]
	return text, ok
}

// Len returns the total number of entries.
func (m VariantMatrix) Len() int {
	n := 0
	for _, lengths := range m {
		n += len(lengths)
	}
	return n
}

// Succeeded returns the number of entries holding real summary text.
func (m VariantMatrix) Succeeded() int {
	n := 0
	for _, lengths := range m {
		for _, text := range lengths {
			if !IsFailureMarker(text) {
				n++
			}
		}
	}
	return n
}

// IsFailureMarker reports whether a matrix entry records a failure.
func IsFailureMarker(text string) bool {
	return strings.HasPrefix(text, FailureMarkerPrefix)
}

// Summary is a persisted summary variant for a video.
type Summary struct {
	ID         string     `json:"id"`
	VideoID    string     `json:"video_id"`
	Difficulty Difficulty `json:"difficulty"`
	Length     Length     `json:"length"`
	Text       string     `json:"text"`
	Failed     bool       `json:"failed"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Validate checks the fields required before persisting a summary.
func (s *Summary) Validate() error {
	if !s.Difficulty.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, s.Difficulty)
	}
	if !s.Length.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLength, s.Length)
	}
	return nil
}

// Key returns the variant key of this summary.
func (s *Summary) Key() VariantKey {
	return VariantKey{Difficulty: s.Difficulty, Length: s.Length}
}
