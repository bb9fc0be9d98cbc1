// Package summarizer implements the transcript summarization pipeline:
// chunking, parallel chunk summarization with fallbacks, transcript
// correction, genre-aware assembly, and incremental variant generation.
package summarizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// MaxTextSize is the hard input ceiling. Larger inputs are truncated, not
// rejected, and the truncation is recorded in the ChunkReport.
const MaxTextSize = 1_000_000

// DefaultMaxChunkSize caps how large a single chunk may grow after adaptive
// re-sizing. Exceeding it means the input cannot be chunked within the
// configured limits.
const DefaultMaxChunkSize = 30_000

// ErrChunkTooLarge is returned when adaptive re-sizing would produce chunks
// beyond the per-chunk ceiling.
var ErrChunkTooLarge = errors.New("chunk size exceeds per-chunk ceiling")

// ChunkOptions configures SplitOverlapping. Zero values take defaults.
type ChunkOptions struct {
	ChunkSize    int // target chunk size in characters (default 4000)
	Overlap      int // overlap between adjacent chunks (default 800)
	MaxChunks    int // maximum number of chunks (default 50)
	MaxChunkSize int // hard per-chunk ceiling (default 30000)
}

func (o *ChunkOptions) setDefaults() {
	if o.ChunkSize <= 0 {
		o.ChunkSize = 4000
	}
	if o.Overlap < 0 || o.Overlap >= o.ChunkSize {
		o.Overlap = o.ChunkSize / 5
	}
	if o.MaxChunks <= 0 {
		o.MaxChunks = 50
	}
	if o.MaxChunkSize <= 0 {
		o.MaxChunkSize = DefaultMaxChunkSize
	}
}

// Chunk is one piece of the input text. Start and End are offsets into the
// (possibly truncated) input before whitespace trimming.
type Chunk struct {
	Index int
	Text  string
	Start int
	End   int
}

// ChunkReport describes what the chunker did to stay within limits.
type ChunkReport struct {
	// Truncated is true when the input exceeded MaxTextSize.
	Truncated bool
	// InputSize is the size actually chunked, after truncation.
	InputSize int
	// Adjusted is true when chunk size and overlap were re-derived to fit
	// MaxChunks.
	Adjusted bool
	// ChunkSize and Overlap are the effective values used.
	ChunkSize int
	Overlap   int
	// Incomplete is true when the chunk limit was reached before the end of
	// the input was covered. Processed is how many characters were covered.
	Incomplete bool
	Processed  int
}

// SplitOverlapping splits text into overlapping chunks, preferring sentence
// boundaries, then word boundaries, past each chunk's midpoint.
func SplitOverlapping(text string, opts ChunkOptions) ([]Chunk, ChunkReport, error) {
	opts.setDefaults()
	report := ChunkReport{ChunkSize: opts.ChunkSize, Overlap: opts.Overlap}

	if text == "" {
		return nil, report, nil
	}

	if len(text) > MaxTextSize {
		text = textutil.Truncate(text, MaxTextSize)
		report.Truncated = true
	}
	report.InputSize = len(text)

	chunkSize, overlap := opts.ChunkSize, opts.Overlap

	// Re-derive the chunk geometry when the naive count would exceed the
	// limit: fewer, larger chunks with at most 10% overlap.
	if estimated := float64(len(text)) / float64(chunkSize-overlap); estimated > float64(opts.MaxChunks) {
		chunkSize = len(text)/opts.MaxChunks + overlap
		if tenth := chunkSize / 10; overlap > tenth {
			overlap = tenth
		}
		report.Adjusted = true
		report.ChunkSize = chunkSize
		report.Overlap = overlap
	}

	if chunkSize > opts.MaxChunkSize {
		return nil, report, fmt.Errorf("%w: %d > %d", ErrChunkTooLarge, chunkSize, opts.MaxChunkSize)
	}

	var chunks []Chunk
	start := 0

	for start < len(text) && len(chunks) < opts.MaxChunks {
		end := start + chunkSize
		if end < len(text) {
			end = snapToBoundary(text, start, end, chunkSize)
		} else {
			end = len(text)
		}

		if trimmed := strings.TrimSpace(text[start:end]); trimmed != "" {
			chunks = append(chunks, Chunk{
				Index: len(chunks),
				Text:  trimmed,
				Start: start,
				End:   end,
			})
		}

		next := textutil.SnapRuneStart(text, end-overlap)
		if next <= start {
			// Boundary snapping plus overlap would stall; force progress.
			next = end
		}
		start = next
		if start >= len(text) {
			break
		}
	}

	report.Processed = len(text)
	if start < len(text) && len(chunks) >= opts.MaxChunks {
		report.Incomplete = true
		report.Processed = start
	}

	return chunks, report, nil
}

// snapToBoundary moves end back to a sentence break, or failing that a word
// break, but only when the break falls past the chunk midpoint. With no
// usable break the hard cut still lands on a rune boundary.
func snapToBoundary(text string, start, end, chunkSize int) int {
	mid := start + chunkSize/2
	end = textutil.SnapRuneStart(text, end)

	if period := strings.LastIndex(text[start:end], ". "); period >= 0 {
		if pos := start + period; pos > mid {
			return pos + 1 // keep the period
		}
	}

	if space := strings.LastIndex(text[start:end], " "); space >= 0 {
		if pos := start + space; pos > mid {
			return pos
		}
	}

	return end
}
