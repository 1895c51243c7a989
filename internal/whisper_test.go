package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const whisperJSON = `{
  "text": " Hello world.",
  "language": "en",
  "segments": [
    {"id": 0, "start": 0.0, "end": 1.2, "text": " Hello world.",
     "words": [
       {"word": " Hello", "start": 0.1, "end": 0.5, "probability": 0.9},
       {"word": " world.", "start": 0.6, "end": 1.1, "probability": 0.8}
     ]}
  ]
}`

func TestWhisperCLITranscribe(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "temp_audio.wav")
	writeTestFile(t, audio, "wav")

	runner := &fakeRunner{handle: func(name string, args []string) ([]byte, error) {
		out := filepath.Join(argValue(args, "--output_dir"), "temp_audio.json")
		return nil, os.WriteFile(out, []byte(whisperJSON), 0o644)
	}}
	w := NewWhisperCLI(runner, "/usr/bin/whisper", "small", 0, nil)

	transcript, err := w.Transcribe(context.Background(), audio, TranscribeOptions{Language: "en", Prompt: "names: Ada"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if len(transcript.Segments) != 1 || len(transcript.Segments[0].Words) != 2 {
		t.Fatalf("unexpected transcript: %#v", transcript)
	}
	if transcript.Segments[0].Words[1] != (Word{Start: 0.6, End: 1.1, Word: " world."}) {
		t.Fatalf("unexpected word: %#v", transcript.Segments[0].Words[1])
	}

	calls := runner.callsTo("/usr/bin/whisper")
	if len(calls) != 1 {
		t.Fatalf("expected one whisper call, got %#v", runner.calls)
	}
	args := calls[0].Args
	if args[0] != audio {
		t.Fatalf("audio must be the first argument: %v", args)
	}
	for _, seq := range [][]string{
		{"--model", "small"},
		{"--word_timestamps", "True"},
		{"--output_format", "json"},
		{"--language", "en"},
		{"--initial_prompt", "names: Ada"},
	} {
		if !containsArgs(args, seq...) {
			t.Errorf("args missing %v: %v", seq, args)
		}
	}

	if FileExists(filepath.Join(dir, "temp_audio.json")) {
		t.Fatalf("whisper json should be removed after parsing")
	}
}

func TestWhisperCLIOmitsEmptyOptions(t *testing.T) {
	w := NewWhisperCLI(&fakeRunner{}, "", "", 0, nil)
	args := w.buildArgs("a.wav", "/tmp", TranscribeOptions{})
	if containsArgs(args, "--language") || containsArgs(args, "--initial_prompt") {
		t.Fatalf("unexpected optional args: %v", args)
	}
	if !containsArgs(args, "--model", "base") {
		t.Fatalf("default model not used: %v", args)
	}
	if w.Name() != "whisper (base)" {
		t.Fatalf("unexpected name %q", w.Name())
	}
}

func TestWhisperCLIFailure(t *testing.T) {
	runner := &fakeRunner{handle: func(name string, args []string) ([]byte, error) {
		return []byte("RuntimeError: CUDA out of memory\n"), errors.New("exit status 1")
	}}
	w := NewWhisperCLI(runner, "whisper", "large", 0, nil)

	_, err := w.Transcribe(context.Background(), filepath.Join(t.TempDir(), "a.wav"), TranscribeOptions{})
	if err == nil || !strings.Contains(err.Error(), "CUDA out of memory") {
		t.Fatalf("expected whisper output in error, got %v", err)
	}
}

func TestWhisperJSONPath(t *testing.T) {
	if got := whisperJSONPath("/x/temp_audio.wav", "/out"); got != filepath.Join("/out", "temp_audio.json") {
		t.Fatalf("whisperJSONPath = %s", got)
	}
}
