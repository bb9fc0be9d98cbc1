package summarizer

import (
	"fmt"
	"strings"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/genre"
)

// Built-in prompt templates for the pipeline's remote calls.

const correctionSystem = `You correct errors in automatic speech recognition transcripts. ` +
	`Fix recognition mistakes, punctuation, and capitalization without changing the meaning, ` +
	`structure, or language of the original. Respond with the corrected transcript only.`

func correctionPrompt(title, transcript string) string {
	return fmt.Sprintf("Video title: %s\n\nCorrect the following transcript:\n\n%s", title, transcript)
}

func chunkCorrectionSystem(position, total int, title string) string {
	return fmt.Sprintf("You are correcting chunk %d of %d of an automatic speech recognition "+
		"transcript for the video titled %q. Fix recognition errors without introducing new ones "+
		"and keep the original language. Respond with the corrected chunk only.", position, total, title)
}

const chunkSummarySystem = `You summarize sections of video transcripts. ` +
	`Capture the key points, named concepts, and any conclusions in the section. ` +
	`Write in clear prose without referring to "the transcript" or "this section".`

func chunkSummaryPrompt(title, chunkText string, position, total int) string {
	return fmt.Sprintf("Video title: %s\nSection %d of %d.\n\nSummarize this section:\n\n%s",
		title, position, total, chunkText)
}

const comprehensiveSystem = `You write unified video summaries from section summaries. ` +
	`Produce one coherent narrative, never a list of per-section recaps.`

const knowledgeBaseInstructions = `Ground every statement in the provided section summaries. ` +
	`Where the video defines a term or concept, carry the definition into the summary so the ` +
	`reader can learn from the summary alone.`

const antiHallucinationInstructions = `Do not add facts, numbers, names, or conclusions that ` +
	`are not present in the section summaries. If the sections are ambiguous, reflect the ` +
	`ambiguity rather than inventing specifics.`

// lengthInstruction maps a summary length option to prompt guidance.
func lengthInstruction(length domain.Length) string {
	switch length {
	case domain.LengthShort:
		return "Keep the summary brief: roughly 150 words."
	case domain.LengthLong:
		return "Write a detailed summary of roughly 500 words."
	case domain.LengthVeryLong:
		return "Write an in-depth summary of roughly 800 words, covering all sections."
	default:
		return "Write a summary of roughly 300 words."
	}
}

// maxTokensFor sizes the completion budget to the requested length.
func maxTokensFor(length domain.Length) int {
	switch length {
	case domain.LengthShort:
		return 400
	case domain.LengthLong:
		return 1200
	case domain.LengthVeryLong:
		return 2000
	default:
		return 800
	}
}

type comprehensivePromptInput struct {
	Title          string
	Difficulty     domain.Difficulty
	Length         domain.Length
	Classification genre.Classification
	TemplateName   string
	Template       genre.Template
	CombinedText   string
	PartialData    bool
}

func comprehensivePrompt(in comprehensivePromptInput) string {
	var b strings.Builder

	intro := strings.ReplaceAll(in.Template.Intro, "{title_topic}", in.Title)

	tone := in.Classification.Tone
	if tone == "" {
		tone = in.Template.Tone
	}
	engagement := in.Classification.EngagementStyle
	if engagement == "" {
		engagement = "informative"
	}

	fmt.Fprintf(&b, "Create a comprehensive summary of the video %q.\n\n", in.Title)
	fmt.Fprintf(&b, "Genre: %s\nContent type: %s\nSentiment: %s\nTone: %s\nEngagement style: %s\n\n",
		in.Classification.Genre, in.Classification.ContentType, in.Classification.Sentiment, tone, engagement)
	fmt.Fprintf(&b, "Open with: %s\n\n", intro)

	if len(in.Template.Structure) > 0 {
		b.WriteString("Structure the summary with these sections:\n")
		for _, section := range in.Template.Structure {
			fmt.Fprintf(&b, "- %s\n", section)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Vocabulary difficulty: %s.\n", in.Difficulty)
	fmt.Fprintf(&b, "%s\n\n", lengthInstruction(in.Length))

	if instructional(in.Classification) {
		b.WriteString(knowledgeBaseInstructions)
		b.WriteString("\n")
		b.WriteString(antiHallucinationInstructions)
		b.WriteString("\n\n")
	}

	b.WriteString("Section summaries:\n\n")
	b.WriteString(in.CombinedText)

	if in.PartialData {
		b.WriteString("\n\nSome transcript sections could not be processed. " +
			"Note in the summary that it may be incomplete.")
	}

	return b.String()
}

// instructional reports whether the content warrants the stricter
// knowledge-base and anti-hallucination instruction blocks.
func instructional(c genre.Classification) bool {
	switch strings.ToLower(c.Genre) {
	case "educational", "tutorial", "course", "technical", "science":
		return true
	}
	switch strings.ToLower(c.ContentType) {
	case "informational", "instructional", "analytical":
		return true
	}
	return false
}

const prettifierSystem = `You reformat summaries for readability: headings, short paragraphs, ` +
	`and emphasis on key terms. Never add, remove, or reword facts. Respond with the ` +
	`reformatted summary only.`

func prettifierPrompt(summary string) string {
	return "Reformat this summary for readability:\n\n" + summary
}
