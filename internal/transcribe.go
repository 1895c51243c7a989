package internal

import (
	"context"
	"fmt"
	"log/slog"
)

// TranscribeOptions are per-call hints passed to the model
type TranscribeOptions struct {
	Language string
	Prompt   string
}

// Transcriber turns an audio file into a timed transcript
type Transcriber interface {
	Transcribe(ctx context.Context, audioFile string, opts TranscribeOptions) (*Transcript, error)
	Name() string
}

// NewTranscriber builds the transcriber selected by config.Backend
func NewTranscriber(config *Config, cmdRunner CommandRunner, audio *Audio, logger *slog.Logger) (Transcriber, error) {
	backend, err := ParseBackend(config.Backend)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendOpenAI:
		return NewOpenAITranscriberWithKey(config.OpenAIAPIKey, audio, WhisperLimit, config.TranscribeTimeout, logger), nil
	default:
		return NewWhisperCLI(cmdRunner, config.WhisperBinary, config.WhisperModel, config.TranscribeTimeout, logger), nil
	}
}

// shiftTranscript moves every timing in t by offset seconds
func shiftTranscript(t *Transcript, offset float64) {
	if offset == 0 {
		return
	}
	for i := range t.Segments {
		t.Segments[i].Start += offset
		t.Segments[i].End += offset
		for j := range t.Segments[i].Words {
			t.Segments[i].Words[j].Start += offset
			t.Segments[i].Words[j].End += offset
		}
	}
}

// mergeTranscripts concatenates chunk transcripts in order
func mergeTranscripts(parts []*Transcript) (*Transcript, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no transcript parts to merge")
	}

	merged := &Transcript{Language: parts[0].Language}
	var texts []string
	for _, part := range parts {
		merged.Segments = append(merged.Segments, part.Segments...)
		merged.Duration += part.Duration
		if text := part.PlainText(); text != "" {
			texts = append(texts, text)
		}
	}
	for i, text := range texts {
		if i > 0 {
			merged.Text += "\n"
		}
		merged.Text += text
	}
	return merged, nil
}
