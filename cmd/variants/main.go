// Package main provides a standalone CLI that generates the full summary
// variant matrix for a transcript.
//
// Usage: variants [-title TITLE] TRANSCRIPT_FILE
//
// Progress is streamed to stdout as one "PROGRESS:{json}" line per variant
// lifecycle event. The final matrix is printed between FINAL_RESULT_START
// and FINAL_RESULT_END markers so callers can parse it out of mixed output.
// The command fails only on unusable input: per-variant failures are
// recorded in the matrix with a failure marker instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vidlearn/vidlearn-server/internal/config"
	"github.com/vidlearn/vidlearn-server/internal/genre"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/logger"
	"github.com/vidlearn/vidlearn-server/internal/summarizer"
)

func main() {
	title := flag.String("title", "", "Video title")
	envFile := flag.String("env-file", ".env", "Path to .env file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: variants [-title TITLE] TRANSCRIPT_FILE")
		os.Exit(2)
	}

	transcript, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read transcript: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadFromEnv(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	service := buildService(cfg, log)

	sink := func(event summarizer.ProgressEvent) {
		line, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Printf("PROGRESS:%s\n", line)
	}

	matrix, err := service.GenerateVariants(context.Background(), transcript, *title,
		summarizer.DefaultPriorityVariants(), sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "variant generation failed: %v\n", err)
		os.Exit(1)
	}

	result, err := json.Marshal(matrix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("FINAL_RESULT_START")
	fmt.Println(string(result))
	fmt.Println("FINAL_RESULT_END")
}

// buildService assembles the summarization pipeline from config.
func buildService(cfg *config.Config, log *logger.Logger) *summarizer.Service {
	client := llm.New(cfg.LLM, log.Logger)
	classifier := genre.NewClassifier(client, cfg.LLM.ReasoningDeployment, log.Logger)
	templates := genre.NewStore(cfg.Templates.Path, log.Logger)

	corrector := summarizer.NewCorrector(client, cfg.LLM.Deployment, log.Logger)
	processor := summarizer.NewChunkProcessor(client, cfg.LLM.Deployment, log.Logger)
	assembler := summarizer.NewAssembler(client, cfg.LLM.Deployment, classifier, templates,
		cfg.Summarizer.PrettifyEnabled, log.Logger)

	return summarizer.NewService(corrector, processor, assembler, cfg.Summarizer.MaxTranscriptSize, log.Logger)
}

// readInput reads the transcript from a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path) //#nosec G304 -- transcript path comes from the user
	return string(data), err
}
