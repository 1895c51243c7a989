package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrNoMedia means a menu had nothing to offer
	ErrNoMedia = errors.New("no media files found")
	// ErrInvalidChoice means the user picked an index outside the menu
	ErrInvalidChoice = errors.New("invalid choice")
)

// IsUserError reports whether err came from user input rather than media processing.
// These end the run normally.
func IsUserError(err error) bool {
	return errors.Is(err, ErrNoMedia) || errors.Is(err, ErrInvalidChoice)
}

// Menu prints numbered choices and reads an index
type Menu struct {
	in  *bufio.Reader
	out io.Writer
}

// NewMenu creates a menu reading from in and printing to out
func NewMenu(in io.Reader, out io.Writer) *Menu {
	return &Menu{in: bufio.NewReader(in), out: out}
}

// Choose prints items as "[i] item" and returns the index the user enters
func (m *Menu) Choose(title string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, ErrNoMedia
	}

	fmt.Fprintln(m.out, title)
	for i, item := range items {
		fmt.Fprintf(m.out, "[%d] %s\n", i, item)
	}
	fmt.Fprint(m.out, "Enter the index: ")

	line, err := m.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return -1, fmt.Errorf("reading choice: %w", err)
	}

	choice, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || choice < 0 || choice >= len(items) {
		return -1, fmt.Errorf("%w: %q", ErrInvalidChoice, strings.TrimSpace(line))
	}
	return choice, nil
}

// Confirm asks a yes/no question; anything but an answer starting with "y" is no
func (m *Menu) Confirm(message string) bool {
	fmt.Fprintf(m.out, "%s (y/N): ", message)
	line, err := m.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
}

// Selector turns interactive menu answers into a Request
type Selector struct {
	Menu     *Menu
	Confirm  func(message string) bool
	InputDir string
	AudioDir string
	// OutputDir is copied into the request unchanged
	OutputDir string
}

// SelectVideo asks for a source video from InputDir
func (s *Selector) SelectVideo() (string, error) {
	videos, err := ListMedia(s.InputDir, VideoExtensions)
	if err != nil {
		return "", err
	}
	if len(videos) == 0 {
		return "", fmt.Errorf("%w: no videos found in %s", ErrNoMedia, s.InputDir)
	}

	choice, err := s.Menu.Choose("Choose a video to add subtitles to:", videos)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.InputDir, videos[choice]), nil
}

// SelectBackground offers the tracks in AudioDir. An empty directory or a "no"
// answer returns "" without error.
func (s *Selector) SelectBackground() (string, error) {
	tracks, err := ListMedia(s.AudioDir, AudioExtensions)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		return "", nil
	}

	confirm := s.Confirm
	if confirm == nil {
		confirm = s.Menu.Confirm
	}
	if !confirm("Do you want to add background audio?") {
		return "", nil
	}

	choice, err := s.Menu.Choose("Choose a background track:", tracks)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.AudioDir, tracks[choice]), nil
}

// Select builds a Request, asking only for the parts not already given
func (s *Selector) Select(videoPath, backgroundPath string, askBackground bool) (Request, error) {
	var err error
	if videoPath == "" {
		videoPath, err = s.SelectVideo()
		if err != nil {
			return Request{}, err
		}
	}
	if backgroundPath == "" && askBackground {
		backgroundPath, err = s.SelectBackground()
		if err != nil {
			return Request{}, err
		}
	}
	return Request{
		VideoPath:           videoPath,
		BackgroundAudioPath: backgroundPath,
		OutputDir:           s.OutputDir,
	}, nil
}
