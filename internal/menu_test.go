package internal

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestMenuChoose(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "valid", input: "1\n", want: 1},
		{name: "spaces", input: "  0 \n", want: 0},
		{name: "no newline", input: "1", want: 1},
		{name: "out of range", input: "2\n", wantErr: ErrInvalidChoice},
		{name: "negative", input: "-1\n", wantErr: ErrInvalidChoice},
		{name: "not a number", input: "abc\n", wantErr: ErrInvalidChoice},
		{name: "empty", input: "", wantErr: ErrInvalidChoice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			menu := NewMenu(strings.NewReader(tt.input), &out)

			got, err := menu.Choose("Pick:", []string{"a.mp4", "b.mp4"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !IsUserError(err) {
					t.Fatalf("menu errors must be user errors")
				}
				return
			}
			if err != nil {
				t.Fatalf("Choose: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Choose = %d, want %d", got, tt.want)
			}
			if !strings.Contains(out.String(), "[0] a.mp4\n[1] b.mp4\n") {
				t.Fatalf("unexpected menu output: %q", out.String())
			}
		})
	}
}

func TestMenuChooseEmpty(t *testing.T) {
	menu := NewMenu(strings.NewReader("0\n"), &bytes.Buffer{})
	if _, err := menu.Choose("Pick:", nil); !errors.Is(err, ErrNoMedia) {
		t.Fatalf("expected ErrNoMedia, got %v", err)
	}
}

func TestSelectorSelect(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "InputVideo")
	audioDir := filepath.Join(root, "BackgroundAudio")
	writeTestFile(t, filepath.Join(inputDir, "a.mp4"), "x")
	writeTestFile(t, filepath.Join(inputDir, "b.mp4"), "x")
	writeTestFile(t, filepath.Join(audioDir, "lofi.mp3"), "x")

	tests := []struct {
		name          string
		input         string
		videoPath     string
		askBackground bool
		wantVideo     string
		wantAudio     string
	}{
		{
			name:          "video and background",
			input:         "1\ny\n0\n",
			askBackground: true,
			wantVideo:     filepath.Join(inputDir, "b.mp4"),
			wantAudio:     filepath.Join(audioDir, "lofi.mp3"),
		},
		{
			name:          "background declined",
			input:         "0\nn\n",
			askBackground: true,
			wantVideo:     filepath.Join(inputDir, "a.mp4"),
		},
		{
			name:      "video given, background not asked",
			videoPath: "given.mp4",
			wantVideo: "given.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := &Selector{
				Menu:      NewMenu(strings.NewReader(tt.input), &bytes.Buffer{}),
				InputDir:  inputDir,
				AudioDir:  audioDir,
				OutputDir: "Output",
			}
			req, err := selector.Select(tt.videoPath, "", tt.askBackground)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			want := Request{VideoPath: tt.wantVideo, BackgroundAudioPath: tt.wantAudio, OutputDir: "Output"}
			if req != want {
				t.Fatalf("Select = %+v, want %+v", req, want)
			}
		})
	}
}

func TestSelectorNoVideos(t *testing.T) {
	selector := &Selector{
		Menu:     NewMenu(strings.NewReader(""), &bytes.Buffer{}),
		InputDir: t.TempDir(),
	}
	_, err := selector.Select("", "", true)
	if !errors.Is(err, ErrNoMedia) {
		t.Fatalf("expected ErrNoMedia, got %v", err)
	}
}

func TestSelectorSkipsEmptyAudioDir(t *testing.T) {
	asked := false
	selector := &Selector{
		Menu:     NewMenu(strings.NewReader(""), &bytes.Buffer{}),
		Confirm:  func(string) bool { asked = true; return true },
		AudioDir: t.TempDir(),
	}
	track, err := selector.SelectBackground()
	if err != nil || track != "" {
		t.Fatalf("expected no track, got %q, %v", track, err)
	}
	if asked {
		t.Fatalf("should not ask without tracks")
	}
}
