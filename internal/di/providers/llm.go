package providers

import (
	"context"
	"errors"

	"github.com/samber/do/v2"

	"github.com/vidlearn/vidlearn-server/internal/config"
	"github.com/vidlearn/vidlearn-server/internal/genre"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/logger"
)

// ProvideLLMClient provides the chat-completions client.
// With no endpoint configured every call fails fast and the pipeline
// degrades to its documented fallbacks.
func ProvideLLMClient(i do.Injector) (*llm.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.LLM.Endpoint == "" {
		log.Warn("no LLM endpoint configured, summaries and quizzes will use fallbacks")
	}

	return llm.New(cfg.LLM, log.Logger), nil
}

// TemplateStoreHandle wraps the template store with its watch context.
type TemplateStoreHandle struct {
	*genre.Store
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *TemplateStoreHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvideTemplateStore provides the summary template store, with hot reload
// when a template directory is configured.
func ProvideTemplateStore(i do.Injector) (*TemplateStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store := genre.NewStore(cfg.Templates.Path, log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	if cfg.Templates.Path != "" && cfg.Templates.WatchReload {
		go func() {
			if err := store.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("template watch stopped", "error", err)
			}
		}()
		log.Info("Template hot reload enabled", "path", cfg.Templates.Path)
	}

	return &TemplateStoreHandle{Store: store, cancel: cancel}, nil
}

// ProvideClassifier provides the genre classifier.
func ProvideClassifier(i do.Injector) (*genre.Classifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*llm.Client](i)

	return genre.NewClassifier(client, cfg.LLM.ReasoningDeployment, log.Logger), nil
}
