// Package main provides a standalone CLI for one-shot summarization.
//
// Usage: summarize [-detailed] [-title TITLE] [-difficulty LEVEL] [-length OPTION] TRANSCRIPT_FILE
//
// Reads the transcript from the given file ("-" for stdin) and writes the
// summary to stdout. The default is a fast single-call summary sized to the
// estimated video duration; -detailed runs the chunked pipeline instead,
// where -difficulty and -length apply. Remote failures degrade to fallback
// summaries, so the command only fails on unusable input.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vidlearn/vidlearn-server/internal/config"
	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/genre"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/logger"
	"github.com/vidlearn/vidlearn-server/internal/summarizer"
)

func main() {
	title := flag.String("title", "", "Video title")
	detailed := flag.Bool("detailed", false, "Run the chunked pipeline instead of the fast summary")
	difficulty := flag.String("difficulty", string(domain.DifficultyIntermediate), "Summary difficulty: beginner, novice, intermediate, advanced, expert")
	length := flag.String("length", string(domain.LengthNormal), "Summary length: short, normal, long, very_long")
	envFile := flag.String("env-file", ".env", "Path to .env file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: summarize [-detailed] [-title TITLE] [-difficulty LEVEL] [-length OPTION] TRANSCRIPT_FILE")
		os.Exit(2)
	}

	parsedDifficulty, err := domain.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid difficulty: %s\n", *difficulty)
		os.Exit(2)
	}
	parsedLength, err := domain.ParseLength(*length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid length: %s\n", *length)
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

	var summary string
	if *detailed {
		service := buildService(cfg, log)
		summary, err = service.Summarize(context.Background(), transcript, *title, parsedDifficulty, parsedLength)
	} else {
		client := llm.New(cfg.LLM, log.Logger)
		fast := summarizer.NewFastSummarizer(client, cfg.LLM.Deployment, log.Logger)
		summary, err = fast.Summarize(context.Background(), transcript, *title)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "summarization failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(summary)
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
