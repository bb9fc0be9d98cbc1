// Package api provides the HTTP API server and handlers for the VidLearn service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vidlearn/vidlearn-server/internal/quiz"
	"github.com/vidlearn/vidlearn-server/internal/sse"
	"github.com/vidlearn/vidlearn-server/internal/store/sqlite"
	"github.com/vidlearn/vidlearn-server/internal/summarizer"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *sqlite.Store
	summarizer *summarizer.Service
	quizzes    *quiz.Generator
	sseManager *sse.Manager
	sseHandler *sse.Handler
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// corsOrigin is the allowed origin for the web client.
func NewServer(st *sqlite.Store, summarizerService *summarizer.Service, quizGenerator *quiz.Generator, sseManager *sse.Manager, sseHandler *sse.Handler, corsOrigin string, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("VidLearn API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:      st,
		summarizer: summarizerService,
		quizzes:    quizGenerator,
		sseManager: sseManager,
		sseHandler: sseHandler,
		router:     router,
		api:        humaAPI,
		logger:     logger,
	}

	s.registerHealthRoutes()
	s.registerVideoRoutes()
	s.registerSummaryRoutes()
	s.registerQuizRoutes()

	// SSE stays outside huma: it streams instead of returning a body.
	router.Get("/api/v1/events", s.sseHandler.ServeHTTP)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
