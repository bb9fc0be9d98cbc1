// Package main provides a standalone CLI for quiz generation.
//
// Usage: quiz [-title TITLE] [-difficulty LEVEL] [-density OPTION] [-summary FILE] TRANSCRIPT_FILE
//
// Reads the transcript from the given file ("-" for stdin) and writes the
// generated questions to stdout as JSON. Generation never produces an empty
// set: remote failures degrade to extractive questions, and an unusable
// transcript degrades to questions built from the summary and title.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vidlearn/vidlearn-server/internal/config"
	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/logger"
	"github.com/vidlearn/vidlearn-server/internal/quiz"
)

func main() {
	title := flag.String("title", "", "Video title")
	difficulty := flag.String("difficulty", string(domain.QuizMedium), "Quiz difficulty: easy, medium, hard")
	density := flag.String("density", string(quiz.DensityMedium), "Question density: low, medium, high")
	summaryFile := flag.String("summary", "", "Optional summary file used for fallback questions")
	envFile := flag.String("env-file", ".env", "Path to .env file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: quiz [-title TITLE] [-difficulty LEVEL] [-density OPTION] [-summary FILE] TRANSCRIPT_FILE")
		os.Exit(2)
	}

	parsedDifficulty, err := domain.ParseQuizDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid difficulty: %s\n", *difficulty)
		os.Exit(2)
	}
	parsedDensity, err := quiz.ParseDensity(*density)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid density: %s\n", *density)
		os.Exit(2)
	}

	transcript, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read transcript: %v\n", err)
		os.Exit(1)
	}

	var summary string
	if *summaryFile != "" {
		summary, err = readInput(*summaryFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read summary: %v\n", err)
			os.Exit(1)
		}
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
	generator := quiz.NewGenerator(client, cfg.LLM.QuizDeployment, log.Logger)

	questions := generator.Generate(context.Background(), transcript, summary, *title, parsedDifficulty, parsedDensity)

	output, err := json.MarshalIndent(map[string][]domain.Question{"questions": questions}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode questions: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path) //#nosec G304 -- file paths come from the user
	return string(data), err
}
