package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WhisperCLI runs the openai-whisper command line tool locally
type WhisperCLI struct {
	cmdRunner CommandRunner
	binary    string
	model     string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewWhisperCLI creates a local transcriber
func NewWhisperCLI(cmdRunner CommandRunner, binary, model string, timeout time.Duration, logger *slog.Logger) *WhisperCLI {
	if binary == "" {
		binary = "whisper"
	}
	if model == "" {
		model = "base"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &WhisperCLI{
		cmdRunner: cmdRunner,
		binary:    binary,
		model:     model,
		timeout:   timeout,
		logger:    logger,
	}
}

// Name identifies the backend in logs
func (w *WhisperCLI) Name() string {
	return fmt.Sprintf("whisper (%s)", w.model)
}

// Transcribe runs whisper with word timestamps and reads the JSON it writes
// next to the audio file
func (w *WhisperCLI) Transcribe(ctx context.Context, audioFile string, opts TranscribeOptions) (*Transcript, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	outputDir := filepath.Dir(audioFile)
	args := w.buildArgs(audioFile, outputDir, opts)

	w.logger.Debug("running whisper", "binary", w.binary, "model", w.model, "audio", audioFile)
	output, err := w.cmdRunner.Run(ctx, w.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("whisper failed: %w\nOutput: %s", err, strings.TrimSpace(string(output)))
	}

	jsonPath := whisperJSONPath(audioFile, outputDir)
	defer cleanupFiles(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("reading whisper output: %w", err)
	}

	var transcript Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("parsing whisper output: %w", err)
	}

	return &transcript, nil
}

// buildArgs constructs the whisper command arguments
func (w *WhisperCLI) buildArgs(audioFile, outputDir string, opts TranscribeOptions) []string {
	args := []string{
		audioFile,
		"--model", w.model,
		"--task", "transcribe",
		"--word_timestamps", "True",
		"--output_format", "json",
		"--output_dir", outputDir,
		"--verbose", "False",
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	if opts.Prompt != "" {
		args = append(args, "--initial_prompt", opts.Prompt)
	}
	return args
}

// whisperJSONPath mirrors whisper's "<stem>.json" output naming
func whisperJSONPath(audioFile, outputDir string) string {
	base := filepath.Base(audioFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".json")
}
