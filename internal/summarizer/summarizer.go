package summarizer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/errors"
	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// Service runs the full summarization pipeline: correction, chunking,
// parallel chunk summarization, and genre-aware assembly.
type Service struct {
	corrector *Corrector
	processor *ChunkProcessor
	assembler *Assembler
	logger    *slog.Logger

	maxTranscriptSize int
}

// NewService wires the pipeline stages into a service.
func NewService(corrector *Corrector, processor *ChunkProcessor, assembler *Assembler, maxTranscriptSize int, logger *slog.Logger) *Service {
	if maxTranscriptSize <= 0 {
		maxTranscriptSize = MaxTextSize
	}
	return &Service{
		corrector:         corrector,
		processor:         processor,
		assembler:         assembler,
		logger:            logger,
		maxTranscriptSize: maxTranscriptSize,
	}
}

// AdaptiveParams picks chunking parameters for a transcript size. Larger
// transcripts get bigger chunks with less overlap to bound the chunk count.
func AdaptiveParams(wordCount int) ChunkOptions {
	switch {
	case wordCount > 50_000:
		return ChunkOptions{ChunkSize: 6000, Overlap: 400, MaxChunks: 50}
	case wordCount > 20_000:
		return ChunkOptions{ChunkSize: 5000, Overlap: 600, MaxChunks: 40}
	default:
		return ChunkOptions{ChunkSize: 4000, Overlap: 800, MaxChunks: 50}
	}
}

// CorrectTranscript runs the best-effort correction pass on its own.
func (s *Service) CorrectTranscript(ctx context.Context, transcript, title string) string {
	return s.corrector.Correct(ctx, transcript, title)
}

// Summarize produces a comprehensive summary for the transcript.
// It fails only on empty input; every downstream failure degrades to a
// fallback summary with disclosure markers instead.
func (s *Service) Summarize(ctx context.Context, transcript, title string, difficulty domain.Difficulty, length domain.Length) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.Validation("transcript must not be empty")
	}
	if !difficulty.Valid() {
		difficulty = domain.DifficultyIntermediate
	}
	if !length.Valid() {
		length = domain.LengthNormal
	}

	if len(transcript) > s.maxTranscriptSize {
		s.logger.Warn("transcript exceeds size ceiling, truncating",
			"size", len(transcript),
			"ceiling", s.maxTranscriptSize,
		)
		transcript = textutil.Truncate(transcript, s.maxTranscriptSize)
	}

	wordCount := len(strings.Fields(transcript))
	opts := AdaptiveParams(wordCount)
	s.logger.Debug("configured summarization",
		"words", wordCount,
		"chunk_size", opts.ChunkSize,
		"overlap", opts.Overlap,
		"max_chunks", opts.MaxChunks,
	)

	corrected := s.corrector.Correct(ctx, transcript, title)

	chunks, report, err := SplitOverlapping(corrected, opts)
	if err != nil || len(chunks) == 0 {
		if err != nil {
			s.logger.Error("chunking failed, using basic summary", "error", err)
		}
		return BasicSummary(transcript, title), nil
	}
	if report.Truncated || report.Incomplete {
		s.logger.Warn("input not fully covered by chunks",
			"truncated", report.Truncated,
			"incomplete", report.Incomplete,
			"processed", report.Processed,
		)
	}

	results := s.processor.ProcessAll(ctx, chunks, title)

	stats := StatsFor(results)
	s.logger.Info("chunk processing complete",
		"succeeded", stats.Succeeded,
		"fallbacks", stats.Fallbacks,
		"failed", stats.Failed,
		"total", len(chunks),
	)

	summary, err := s.assembler.Assemble(ctx, results, transcript, title, difficulty, length)
	if err == nil {
		return summary, nil
	}
	s.logger.Warn("assembly failed, entering fallback chain", "error", err)

	if joined := JoinedFallback(results, title); joined != "" {
		return joined, nil
	}
	return BasicSummary(transcript, title), nil
}
