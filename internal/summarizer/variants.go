package summarizer

import (
	"context"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/errors"
)

// ProgressStatus is the lifecycle state of one variant.
type ProgressStatus string

const (
	StatusStarted   ProgressStatus = "started"
	StatusCompleted ProgressStatus = "completed"
	StatusFailed    ProgressStatus = "failed"
)

// ProgressEvent reports one variant lifecycle transition.
type ProgressEvent struct {
	Difficulty domain.Difficulty `json:"difficulty"`
	Length     domain.Length     `json:"length"`
	Status     ProgressStatus    `json:"status"`
	// Summary carries the variant text only for completed events.
	Summary string `json:"summary,omitempty"`
}

// ProgressSink receives progress events synchronously as variants move
// through their lifecycle. A panicking sink never crashes the run.
type ProgressSink func(ProgressEvent)

// DefaultPriorityVariants is the order users most commonly request,
// generated first so the common variants become available early.
func DefaultPriorityVariants() []domain.VariantKey {
	return []domain.VariantKey{
		{Difficulty: domain.DifficultyIntermediate, Length: domain.LengthNormal},
		{Difficulty: domain.DifficultyBeginner, Length: domain.LengthNormal},
		{Difficulty: domain.DifficultyIntermediate, Length: domain.LengthShort},
		{Difficulty: domain.DifficultyIntermediate, Length: domain.LengthLong},
		{Difficulty: domain.DifficultyNovice, Length: domain.LengthNormal},
		{Difficulty: domain.DifficultyAdvanced, Length: domain.LengthNormal},
	}
}

// GenerateVariants runs the full pipeline once per variant key, priority
// keys first and the rest of the key space after. The returned matrix
// always covers every configured key: failed variants carry a failure
// marker instead of summary text.
func (s *Service) GenerateVariants(ctx context.Context, transcript, title string, priority []domain.VariantKey, sink ProgressSink) (domain.VariantMatrix, error) {
	if transcript == "" {
		return nil, errors.Validation("transcript must not be empty")
	}

	matrix := make(domain.VariantMatrix)

	for _, key := range orderedKeys(priority) {
		emit(sink, ProgressEvent{
			Difficulty: key.Difficulty,
			Length:     key.Length,
			Status:     StatusStarted,
		})

		summary, err := s.Summarize(ctx, transcript, title, key.Difficulty, key.Length)
		if err != nil {
			matrix.Set(key, domain.FailureMarkerPrefix+": "+err.Error())
			emit(sink, ProgressEvent{
				Difficulty: key.Difficulty,
				Length:     key.Length,
				Status:     StatusFailed,
			})
			continue
		}

		matrix.Set(key, summary)
		emit(sink, ProgressEvent{
			Difficulty: key.Difficulty,
			Length:     key.Length,
			Status:     StatusCompleted,
			Summary:    summary,
		})
	}

	s.logger.Info("variant generation complete",
		"total", matrix.Len(),
		"succeeded", matrix.Succeeded(),
	)

	return matrix, nil
}

// orderedKeys returns valid priority keys first, then the remainder of the
// full key space. Invalid and duplicate priority keys are dropped.
func orderedKeys(priority []domain.VariantKey) []domain.VariantKey {
	seen := make(map[domain.VariantKey]bool, len(priority))
	ordered := make([]domain.VariantKey, 0, len(domain.Difficulties())*len(domain.Lengths()))

	for _, key := range priority {
		if !key.Valid() || seen[key] {
			continue
		}
		seen[key] = true
		ordered = append(ordered, key)
	}

	for _, key := range domain.AllVariantKeys() {
		if !seen[key] {
			ordered = append(ordered, key)
		}
	}

	return ordered
}

// emit invokes the sink, recovering any panic it raises.
func emit(sink ProgressSink, event ProgressEvent) {
	if sink == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	sink(event)
}
