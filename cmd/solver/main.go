// Command solver is the stdio transport (§4.15): reads one Request as
// JSON on stdin, runs the shared engine pipeline, writes the Response
// (or error array) as JSON to stdout, and exits 0 or 1. Stdout is
// reserved for the Response document, so every log line goes to
// stderr via logger.NewStderr.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maktab-edu/timetable-solver/internal/dto"
	"github.com/maktab-edu/timetable-solver/internal/engine"
	"github.com/maktab-edu/timetable-solver/pkg/config"
	"github.com/maktab-edu/timetable-solver/pkg/logger"
)

const version = "1.0.0"

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version":
			fmt.Println(version)
			return
		case "--help":
			fmt.Println("solver reads a timetabling Request as JSON on stdin and writes a Response (or error array) as JSON to stdout.")
			return
		}
	}

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	logr, err := logger.NewStderr(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		return 1
	}
	defer logr.Sync() //nolint:errcheck

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return writeFailure(fmt.Errorf("read stdin: %w", err))
	}

	var req dto.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return writeFailure(fmt.Errorf("parse request: %w", err))
	}

	timeLimit := time.Duration(cfg.Solver.MaxTimeSeconds) * time.Second
	if timeLimit <= 0 {
		timeLimit = 60 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeLimit+10*time.Second)
	defer cancel()

	result, err := engine.Run(ctx, logr, req.ToInstance(), engine.Options{
		TimeLimit:                 timeLimit,
		DecomposeWork:             cfg.Solver.MaxConcurrentSubSolves,
		EnableGracefulDegradation: cfg.Solver.EnableGracefulDegradation,
	})
	if err != nil {
		return writeFailure(err)
	}

	return writeSuccess(dto.FromArtefact(result.Artefact, result.Warnings))
}

func writeSuccess(resp dto.SuccessResponse) int {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "encode response: %v\n", err)
		return 1
	}
	return 0
}

func writeFailure(err error) int {
	enc := json.NewEncoder(os.Stdout)
	if encErr := enc.Encode(dto.FromError(err)); encErr != nil {
		fmt.Fprintf(os.Stderr, "encode error response: %v\n", encErr)
	}
	return 1
}
