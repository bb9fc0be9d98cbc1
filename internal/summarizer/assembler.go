package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/genre"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// ErrNoValidChunks is returned when not a single chunk produced usable
// text. The caller falls back to an extractive summary of the raw input.
var ErrNoValidChunks = errors.New("no valid chunk summaries available")

// chunkSeparator joins chunk summaries in the comprehensive prompt.
const chunkSeparator = "\n---BREAK---\n"

// fallbackJoinLimit caps how many chunk summaries the emergency fallback
// concatenates.
const fallbackJoinLimit = 5

// basicSummarySample bounds the raw-transcript extract in the last-resort
// summary.
const (
	basicSummarySample  = 10_000
	basicSummaryPreview = 1000
)

// Assembler builds the comprehensive summary from chunk results.
type Assembler struct {
	completer  Completer
	deployment string
	classifier *genre.Classifier
	templates  *genre.Store
	prettify   bool
	logger     *slog.Logger
}

// NewAssembler creates a summary assembler.
func NewAssembler(completer Completer, deployment string, classifier *genre.Classifier, templates *genre.Store, prettify bool, logger *slog.Logger) *Assembler {
	return &Assembler{
		completer:  completer,
		deployment: deployment,
		classifier: classifier,
		templates:  templates,
		prettify:   prettify,
		logger:     logger,
	}
}

// Assemble produces the unified summary from chunk results. It fails with
// ErrNoValidChunks when zero chunks are usable, and with a remote error when
// the unified-narrative call cannot complete. Callers own the fallback chain.
func (a *Assembler) Assemble(ctx context.Context, results []ChunkResult, transcript, title string, difficulty domain.Difficulty, length domain.Length) (string, error) {
	var valid []string
	var notes []string

	for _, r := range results {
		if r.Valid() {
			valid = append(valid, r.Text)
		} else {
			notes = append(notes, fmt.Sprintf("- Chunk %d summary was unavailable", r.Index+1))
		}
	}

	if len(valid) == 0 {
		return "", ErrNoValidChunks
	}

	combined := strings.Join(valid, chunkSeparator)

	classification := a.classifier.Classify(ctx, transcript, title)
	snapshot := a.templates.Snapshot()
	templateName, template := genre.SelectTemplate(snapshot, classification.Genre, classification.ContentType, transcript, title)

	a.logger.Debug("assembling comprehensive summary",
		"template", templateName,
		"genre", classification.Genre,
		"valid_chunks", len(valid),
		"total_chunks", len(results),
	)

	prompt := comprehensivePrompt(comprehensivePromptInput{
		Title:          title,
		Difficulty:     difficulty,
		Length:         length,
		Classification: classification,
		TemplateName:   templateName,
		Template:       template,
		CombinedText:   combined,
		PartialData:    len(valid) < len(results),
	})

	narrative, err := a.completer.Complete(ctx, a.deployment, []llm.Message{
		{Role: "system", Content: comprehensiveSystem},
		{Role: "user", Content: prompt},
	}, llm.Params{Temperature: 0.5, MaxTokens: maxTokensFor(length)})
	if err != nil {
		return "", fmt.Errorf("comprehensive summary call: %w", err)
	}

	summary := fmt.Sprintf("%s **%s %s**\n\n%s",
		template.Emoji,
		strings.ToUpper(classification.Genre),
		strings.ToUpper(classification.ContentType),
		narrative,
	)

	if len(notes) > 0 {
		summary += "\n\n---\n\n**Note**: This summary was created with incomplete data. " +
			"The following sections could not be processed:\n" + strings.Join(notes, "\n")
	}

	if a.prettify {
		summary = a.prettifySummary(ctx, summary)
	}

	return summary, nil
}

// prettifySummary runs the optional formatting pass. Strictly best-effort:
// any failure returns the input unchanged.
func (a *Assembler) prettifySummary(ctx context.Context, summary string) string {
	pretty, err := a.completer.Complete(ctx, a.deployment, []llm.Message{
		{Role: "system", Content: prettifierSystem},
		{Role: "user", Content: prettifierPrompt(summary)},
	}, llm.Params{Temperature: 0.2, MaxTokens: 2000})
	if err != nil {
		a.logger.Warn("prettify pass failed, keeping original", "error", err)
		return summary
	}
	return pretty
}

// JoinedFallback concatenates up to the first five valid chunk summaries
// when the unified call fails. Returns "" when nothing is usable.
func JoinedFallback(results []ChunkResult, title string) string {
	var valid []string
	for _, r := range results {
		if r.Valid() {
			valid = append(valid, r.Text)
		}
	}
	if len(valid) == 0 {
		return ""
	}
	if len(valid) > fallbackJoinLimit {
		valid = valid[:fallbackJoinLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎬 **%s**\n\n**Emergency Fallback Summary**\n\n", title)
	b.WriteString("A unified summary could not be created, so here are the individual section summaries:\n\n")
	for i, summary := range valid {
		fmt.Fprintf(&b, "🎬 **Part %d of %d**\n\n%s\n\n", i+1, len(valid), summary)
	}
	return strings.TrimSpace(b.String())
}

// BasicSummary is the last-resort extractive summary built directly from
// the raw transcript. Always non-empty and always contains the title.
func BasicSummary(transcript, title string) string {
	if len(transcript) > basicSummarySample {
		transcript = textutil.Truncate(transcript, basicSummarySample)
	}
	transcript = strings.ReplaceAll(transcript, "\x00", "")

	preview := transcript
	if len(preview) > basicSummaryPreview {
		preview = textutil.Truncate(preview, basicSummaryPreview)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎬 %s\n\n**Basic Summary**\n\n%s", title, preview)
	if len(transcript) > len(preview) {
		b.WriteString("...")
	}

	wordCount := len(strings.Fields(transcript))
	fmt.Fprintf(&b, "\n\n*Transcript contains approximately %d words.*", wordCount)
	return b.String()
}
