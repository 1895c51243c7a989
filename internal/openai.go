package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIClientInterface defines the interface for OpenAI client operations
type OpenAIClientInterface interface {
	CreateTranscription(ctx context.Context, file *os.File, opts TranscribeOptions) (*Transcript, error)
}

// OpenAIClient wraps the official OpenAI Go SDK
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: &client}
}

// CreateTranscription requests a verbose transcription with word and segment timestamps
func (c *OpenAIClient) CreateTranscription(ctx context.Context, file *os.File, opts TranscribeOptions) (*Transcript, error) {
	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModelWhisper1,
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word", "segment"},
	}
	if opts.Language != "" {
		params.Language = openai.String(opts.Language)
	}
	if opts.Prompt != "" {
		params.Prompt = openai.String(opts.Prompt)
	}

	resp, err := c.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	return parseVerboseTranscription([]byte(resp.RawJSON()))
}

// verboseTranscription is the verbose_json response body. Words are reported
// at the top level rather than inside segments.
type verboseTranscription struct {
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Words    []Word    `json:"words"`
}

// parseVerboseTranscription converts a verbose_json body and files each word
// under the segment whose span contains its start time
func parseVerboseTranscription(body []byte) (*Transcript, error) {
	var resp verboseTranscription
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing transcription response: %w", err)
	}

	transcript := &Transcript{
		Language: resp.Language,
		Duration: resp.Duration,
		Text:     resp.Text,
		Segments: resp.Segments,
	}

	if len(resp.Words) == 0 {
		return transcript, nil
	}
	if len(transcript.Segments) == 0 {
		transcript.Segments = []Segment{{
			Start: resp.Words[0].Start,
			End:   resp.Words[len(resp.Words)-1].End,
			Text:  resp.Text,
		}}
	}

	seg := 0
	for _, w := range resp.Words {
		for seg < len(transcript.Segments)-1 && w.Start >= transcript.Segments[seg+1].Start {
			seg++
		}
		transcript.Segments[seg].Words = append(transcript.Segments[seg].Words, w)
	}

	return transcript, nil
}

// OpenAITranscriber transcribes audio with OpenAI's hosted Whisper model
type OpenAITranscriber struct {
	client       OpenAIClientInterface
	audio        *Audio
	whisperLimit int64
	timeout      time.Duration
	logger       *slog.Logger
	apiKey       string
	clientOnce   sync.Once
}

// NewOpenAITranscriber creates a transcriber around an existing client
func NewOpenAITranscriber(client OpenAIClientInterface, audio *Audio, whisperLimit int64, timeout time.Duration, logger *slog.Logger) *OpenAITranscriber {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OpenAITranscriber{
		client:       client,
		audio:        audio,
		whisperLimit: whisperLimit,
		timeout:      timeout,
		logger:       logger,
	}
}

// NewOpenAITranscriberWithKey creates a transcriber with lazy client initialization
func NewOpenAITranscriberWithKey(apiKey string, audio *Audio, whisperLimit int64, timeout time.Duration, logger *slog.Logger) *OpenAITranscriber {
	t := NewOpenAITranscriber(nil, audio, whisperLimit, timeout, logger)
	t.apiKey = apiKey
	return t
}

// Name identifies the backend in logs
func (ai *OpenAITranscriber) Name() string {
	return "openai (" + string(openai.AudioModelWhisper1) + ")"
}

// ensureClient initializes the OpenAI client if needed
func (ai *OpenAITranscriber) ensureClient() error {
	if ai.client != nil {
		return nil
	}

	if ai.apiKey == "" {
		return ValidateOpenAIAPIKey("")
	}

	ai.clientOnce.Do(func() {
		ai.client = NewOpenAIClient(ai.apiKey)
	})

	return nil
}

// Transcribe sends the audio file to the API, splitting it first when it
// exceeds the upload limit
func (ai *OpenAITranscriber) Transcribe(ctx context.Context, audioFile string, opts TranscribeOptions) (*Transcript, error) {
	if err := ai.ensureClient(); err != nil {
		return nil, err
	}

	if ai.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.timeout)
		defer cancel()
	}

	info, err := os.Stat(audioFile)
	if err != nil {
		return nil, fmt.Errorf("getting audio file info: %w", err)
	}

	numChunks := int(math.Ceil(float64(info.Size()) / float64(ai.whisperLimit)))

	chunks := []AudioChunk{{Path: audioFile}}
	if numChunks > 1 {
		chunks, err = ai.audio.Split(ctx, audioFile, filepath.Join(filepath.Dir(audioFile), "chunks"), numChunks)
		if err != nil {
			return nil, fmt.Errorf("splitting audio: %w", err)
		}
		defer cleanupFiles(chunkPaths(chunks)...)
	}

	transcript, err := ai.processAudioChunks(ctx, chunks, opts)
	if err != nil {
		return nil, fmt.Errorf("transcribing audio: %w", err)
	}
	return transcript, nil
}

// processAudioChunks transcribes audio chunks sequentially and shifts each
// chunk's timings by its offset in the original file
func (ai *OpenAITranscriber) processAudioChunks(ctx context.Context, chunks []AudioChunk, opts TranscribeOptions) (*Transcript, error) {
	numChunks := len(chunks)
	ai.logger.Debug("transcribing chunks", "count", numChunks)

	parts := make([]*Transcript, 0, numChunks)
	for i, chunk := range chunks {
		file, err := os.Open(chunk.Path)
		if err != nil {
			return nil, fmt.Errorf("opening chunk %s: %w", chunk.Path, err)
		}

		part, err := ai.client.CreateTranscription(ctx, file, opts)
		if closeErr := file.Close(); closeErr != nil {
			ai.logger.Warn("failed to close chunk", "path", chunk.Path, "error", closeErr)
		}
		if err != nil {
			return nil, fmt.Errorf("transcribing chunk %d: %w", i+1, err)
		}

		shiftTranscript(part, chunk.Offset)
		parts = append(parts, part)

		ai.logger.Debug("transcribed chunk", "chunk", i+1, "of", numChunks)
	}

	return mergeTranscripts(parts)
}
