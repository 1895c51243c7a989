package internal

import (
	"fmt"
	"strings"
)

// Backend selects the speech-to-text implementation
type Backend int

const (
	BackendUnknown Backend = iota
	BackendLocal
	BackendOpenAI
)

// String returns a human-readable representation of the backend
func (b Backend) String() string {
	switch b {
	case BackendLocal:
		return "local"
	case BackendOpenAI:
		return "openai"
	default:
		return "unknown"
	}
}

// ParseBackend maps a config or flag value to a Backend
func ParseBackend(value string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "local", "whisper", "":
		return BackendLocal, nil
	case "openai", "api":
		return BackendOpenAI, nil
	default:
		return BackendUnknown, fmt.Errorf("unsupported backend: %s (supported: local, openai)", value)
	}
}

// Word is a single transcribed word with model-reported timing
type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Segment is a contiguous span of speech reported by the model
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Transcript is the speech-to-text result for one audio file
type Transcript struct {
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// HasWords reports whether any segment carries word-level timings
func (t *Transcript) HasWords() bool {
	for _, seg := range t.Segments {
		if len(seg.Words) > 0 {
			return true
		}
	}
	return false
}

// PlainText returns the transcript text, rebuilt from segments when the model omitted it
func (t *Transcript) PlainText() string {
	if text := strings.TrimSpace(t.Text); text != "" {
		return text
	}
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// MediaInfo holds the ffprobe facts the pipeline needs
type MediaInfo struct {
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	HasVideo bool    `json:"has_video"`
	HasAudio bool    `json:"has_audio"`
}

// Request describes a single subtitling run. It is built once by the caller
// (flags or the interactive menu) and passed by value through the pipeline.
type Request struct {
	VideoPath           string
	BackgroundAudioPath string
	OutputDir           string
}

// Validate checks that the request references existing inputs
func (r Request) Validate() error {
	if strings.TrimSpace(r.VideoPath) == "" {
		return fmt.Errorf("video path is required")
	}
	if !FileExists(r.VideoPath) {
		return fmt.Errorf("video not found: %s", r.VideoPath)
	}
	if r.BackgroundAudioPath != "" && !FileExists(r.BackgroundAudioPath) {
		return fmt.Errorf("background audio not found: %s", r.BackgroundAudioPath)
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}

// String returns a formatted representation of the request
func (r Request) String() string {
	if r.BackgroundAudioPath == "" {
		return fmt.Sprintf("Request{video=%s, output=%s}", r.VideoPath, r.OutputDir)
	}
	return fmt.Sprintf("Request{video=%s, background=%s, output=%s}", r.VideoPath, r.BackgroundAudioPath, r.OutputDir)
}
