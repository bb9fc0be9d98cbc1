package genre

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/retry"
	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// Classification is the model's judgment of a video's genre and style.
type Classification struct {
	Genre           string `json:"genre"`
	ContentType     string `json:"content_type"`
	Sentiment       string `json:"sentiment"`
	Tone            string `json:"tone"`
	EngagementStyle string `json:"engagement_style"`
}

// Defaults substituted when classification is unavailable.
var (
	defaultClassification = Classification{Genre: "educational", ContentType: "informational"}
	emptyClassification   = Classification{Genre: "unknown", ContentType: "informational"}
)

// classifySample caps how much transcript goes into the classification prompt.
const classifySample = 4000

// Completer is the slice of the LLM client the classifier needs.
type Completer interface {
	Complete(ctx context.Context, deployment string, messages []llm.Message, params llm.Params) (string, error)
}

// Classifier detects genre and content type via the completion service.
type Classifier struct {
	completer  Completer
	deployment string
	logger     *slog.Logger
}

// NewClassifier creates a genre classifier using the given deployment.
func NewClassifier(completer Completer, deployment string, logger *slog.Logger) *Classifier {
	return &Classifier{
		completer:  completer,
		deployment: deployment,
		logger:     logger,
	}
}

const classifyPrompt = `Analyze this video transcript and classify it.

Video title: %s

Transcript sample:
%s

Respond with only a JSON object in this exact format:
{"genre": "...", "content_type": "...", "sentiment": "...", "tone": "...", "engagement_style": "..."}

genre: one word such as educational, tutorial, gaming, podcast, news, review, comedy, technical.
content_type: one of informational, instructional, conversational, narrative, analytical, demonstrative, entertaining, persuasive, inspirational.
sentiment: positive, neutral, or negative.
tone: a single descriptive word.
engagement_style: a single descriptive word.`

// Classify returns the model's classification of the transcript.
// Never fails: empty input yields the unknown default, remote failures and
// unparseable responses yield the educational/informational default.
func (c *Classifier) Classify(ctx context.Context, transcript, title string) Classification {
	if strings.TrimSpace(transcript) == "" {
		return emptyClassification
	}

	sample := transcript
	if len(sample) > classifySample {
		sample = textutil.Truncate(sample, classifySample)
	}

	prompt := fmt.Sprintf(classifyPrompt, title, sample)

	var result Classification
	err := retry.Do(ctx, 2, time.Second, func(ctx context.Context) error {
		response, err := c.completer.Complete(ctx, c.deployment, []llm.Message{
			{Role: "system", Content: "You classify video content. Respond with JSON only."},
			{Role: "user", Content: prompt},
		}, llm.Params{Temperature: 0.1, MaxTokens: 200})
		if err != nil {
			return err
		}
		return llm.ExtractInto(response, &result)
	})
	if err != nil {
		c.logger.Warn("genre classification failed, using default",
			"title", title,
			"error", err,
		)
		return defaultClassification
	}

	if result.Genre == "" {
		result.Genre = defaultClassification.Genre
	}
	if result.ContentType == "" {
		result.ContentType = defaultClassification.ContentType
	}
	if result.Sentiment == "" {
		result.Sentiment = "neutral"
	}

	c.logger.Debug("genre classified",
		"genre", result.Genre,
		"content_type", result.ContentType,
	)
	return result
}
