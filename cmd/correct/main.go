// Package main provides a standalone CLI for transcript correction.
//
// Usage: correct [-title TITLE] TRANSCRIPT_FILE
//
// Reads the transcript from the given file ("-" for stdin) and writes the
// corrected transcript to stdout. Correction is best effort: with no LLM
// endpoint configured the input passes through unchanged.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vidlearn/vidlearn-server/internal/config"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/logger"
	"github.com/vidlearn/vidlearn-server/internal/summarizer"
)

func main() {
	title := flag.String("title", "", "Video title, used as correction context")
	envFile := flag.String("env-file", ".env", "Path to .env file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: correct [-title TITLE] TRANSCRIPT_FILE")
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

	client := llm.New(cfg.LLM, log.Logger)
	corrector := summarizer.NewCorrector(client, cfg.LLM.Deployment, log.Logger)

	fmt.Println(corrector.Correct(context.Background(), transcript, *title))
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
