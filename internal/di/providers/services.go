package providers

import (
	"github.com/samber/do/v2"

	"github.com/vidlearn/vidlearn-server/internal/config"
	"github.com/vidlearn/vidlearn-server/internal/genre"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/logger"
	"github.com/vidlearn/vidlearn-server/internal/quiz"
	"github.com/vidlearn/vidlearn-server/internal/summarizer"
)

// ProvideSummarizer provides the summarization pipeline service.
func ProvideSummarizer(i do.Injector) (*summarizer.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*llm.Client](i)
	classifier := do.MustInvoke[*genre.Classifier](i)
	templatesHandle := do.MustInvoke[*TemplateStoreHandle](i)

	corrector := summarizer.NewCorrector(client, cfg.LLM.Deployment, log.Logger)
	processor := summarizer.NewChunkProcessor(client, cfg.LLM.Deployment, log.Logger)
	assembler := summarizer.NewAssembler(client, cfg.LLM.Deployment, classifier, templatesHandle.Store,
		cfg.Summarizer.PrettifyEnabled, log.Logger)

	return summarizer.NewService(corrector, processor, assembler, cfg.Summarizer.MaxTranscriptSize, log.Logger), nil
}

// ProvideQuizGenerator provides the quiz generator.
func ProvideQuizGenerator(i do.Injector) (*quiz.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*llm.Client](i)

	return quiz.NewGenerator(client, cfg.LLM.QuizDeployment, log.Logger), nil
}
