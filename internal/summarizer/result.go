package summarizer

// ResultKind tags the outcome of processing one chunk.
type ResultKind int

const (
	// KindSuccess means the remote service produced the summary.
	KindSuccess ResultKind = iota
	// KindFallback means retries exhausted and a deterministic extractive
	// summary was synthesized instead.
	KindFallback
	// KindFailed means no usable text could be produced at all.
	KindFailed
)

func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFallback:
		return "fallback"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ChunkResult is the tagged outcome for one chunk, in input order.
type ChunkResult struct {
	Index  int
	Kind   ResultKind
	Text   string // summary text for Success and Fallback
	Reason string // why the fallback was used
	Err    error  // set for Failed
}

// Valid reports whether the result carries usable summary text.
func (r ChunkResult) Valid() bool {
	return r.Kind != KindFailed && r.Text != ""
}

// SuccessResult builds a Success result.
func SuccessResult(index int, text string) ChunkResult {
	return ChunkResult{Index: index, Kind: KindSuccess, Text: text}
}

// FallbackResult builds a Fallback result.
func FallbackResult(index int, text, reason string) ChunkResult {
	return ChunkResult{Index: index, Kind: KindFallback, Text: text, Reason: reason}
}

// FailedResult builds a Failed result.
func FailedResult(index int, err error) ChunkResult {
	return ChunkResult{Index: index, Kind: KindFailed, Err: err}
}

// ProcessingStats aggregates chunk outcomes for logging.
type ProcessingStats struct {
	Succeeded int
	Fallbacks int
	Failed    int
}

// StatsFor tallies the outcome kinds across results.
func StatsFor(results []ChunkResult) ProcessingStats {
	var s ProcessingStats
	for _, r := range results {
		switch r.Kind {
		case KindSuccess:
			s.Succeeded++
		case KindFallback:
			s.Fallbacks++
		case KindFailed:
			s.Failed++
		}
	}
	return s
}
