package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type runCall struct {
	Name string
	Args []string
}

// fakeRunner records invocations and answers them with handle
type fakeRunner struct {
	mu     sync.Mutex
	calls  []runCall
	handle func(name string, args []string) ([]byte, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, runCall{Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()
	if f.handle == nil {
		return nil, nil
	}
	return f.handle(name, args)
}

func (f *fakeRunner) callsTo(name string) []runCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []runCall
	for _, call := range f.calls {
		if call.Name == name {
			out = append(out, call)
		}
	}
	return out
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func argValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func containsArgs(args []string, seq ...string) bool {
	joined := "\x00" + strings.Join(args, "\x00") + "\x00"
	return strings.Contains(joined, "\x00"+strings.Join(seq, "\x00")+"\x00")
}

// testConfig mirrors the shipped defaults without reading files or env
func testConfig(t *testing.T) *Config {
	t.Helper()
	root := t.TempDir()
	return &Config{
		InputDir:        filepath.Join(root, "InputVideo"),
		OutputDir:       filepath.Join(root, "Output"),
		AudioDir:        filepath.Join(root, "BackgroundAudio"),
		Backend:         "local",
		WhisperBinary:   "whisper",
		WhisperModel:    "base",
		Segmentation:    string(SegmentWords),
		WordsPerSegment: DefaultWordsPerSegment,
		FFmpegBinary:    "ffmpeg",
		FFprobeBinary:   "ffprobe",
		Width:           1080,
		Height:          1920,
		Style: CaptionStyle{
			Font:               "Arial",
			FontSize:           80,
			BackgroundFontSize: 88,
			StrokeWidth:        12,
			Color:              "white",
			BackgroundColor:    "black",
			TwoLayer:           true,
		},
		BackgroundVolume: 0.1,
		LoopBackground:   true,
		VideoCodec:       "libx264",
		AudioCodec:       "aac",
		CacheDir:         filepath.Join(root, "cache"),
		TempDir:          filepath.Join(root, "cache", "runs"),
	}
}
