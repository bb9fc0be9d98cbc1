// Package di provides dependency injection configuration for the VidLearn server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/vidlearn/vidlearn-server/internal/config"
	"github.com/vidlearn/vidlearn-server/internal/di/providers"
	"github.com/vidlearn/vidlearn-server/internal/genre"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/logger"
	"github.com/vidlearn/vidlearn-server/internal/quiz"
	"github.com/vidlearn/vidlearn-server/internal/summarizer"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage and events
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Remote completion stack
	do.Provide(injector, providers.ProvideLLMClient)
	do.Provide(injector, providers.ProvideTemplateStore)
	do.Provide(injector, providers.ProvideClassifier)

	// Pipeline services
	do.Provide(injector, providers.ProvideSummarizer)
	do.Provide(injector, providers.ProvideQuizGenerator)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*llm.Client](injector)
	_ = do.MustInvoke[*providers.TemplateStoreHandle](injector)
	_ = do.MustInvoke[*genre.Classifier](injector)
	_ = do.MustInvoke[*summarizer.Service](injector)
	_ = do.MustInvoke[*quiz.Generator](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
