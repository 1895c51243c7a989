package internal

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// VideoExtensions are the source formats offered by the video menu
var VideoExtensions = []string{".mp4", ".mov", ".mkv", ".webm", ".m4v"}

// AudioExtensions are the formats offered by the background audio menu
var AudioExtensions = []string{".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac"}

// OutputSuffix is appended to the source title to name the rendered video
const OutputSuffix = "wSubtitles"

// OutputExtension is the container written by the compositor
const OutputExtension = ".mp4"

// ParseArg normalizes YouTube video IDs and URLs into a URL and an ID
func ParseArg(arg string) (string, string) {
	if strings.HasPrefix(arg, "https://") {
		videoID, err := getVideoID(arg)
		if err == nil {
			return arg, videoID
		}
		return arg, arg
	}

	return "https://www.youtube.com/watch?v=" + arg, arg
}

// VideoIDExtractor extracts video IDs from YouTube URLs
type VideoIDExtractor func(string) (string, error)

// Default implementation of video ID extraction. Handles watch, youtu.be and shorts URLs.
var getVideoID VideoIDExtractor = func(youtubeURL string) (string, error) {
	youtubeURL = strings.TrimSpace(youtubeURL)
	u, err := url.Parse(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	if u.Host != "www.youtube.com" && u.Host != "youtube.com" && u.Host != "youtu.be" && u.Host != "m.youtube.com" {
		return "", fmt.Errorf("not a YouTube URL: %s", youtubeURL)
	}

	if v := u.Query().Get("v"); v != "" {
		return v, nil
	}

	parts := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
	if len(parts) > 0 && parts[len(parts)-1] != "" {
		return parts[len(parts)-1], nil
	}

	return "", fmt.Errorf("could not extract video ID from URL: %s", youtubeURL)
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	if len(id) != 11 {
		return false
	}

	matched, _ := regexp.MatchString(`^[A-Za-z0-9_-]+$`, id)
	return matched
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// RenderMarkdown renders markdown content with glamour
func RenderMarkdown(content string) (string, error) {
	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dir ...string) error {
	for _, dir := range dir {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// cleanupFiles removes temporary files
func cleanupFiles(files ...string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove file %s: %v\n", file, err)
		}
	}
}

// ListMedia returns the sorted names of files in dir with one of the given extensions
func ListMedia(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if slices.Contains(extensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// OutputTitle returns the rendered video's base name for a source video path
func OutputTitle(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + OutputSuffix
}

// UniqueOutputPath returns dir/title+ext, or the first dir/title_N+ext (N = 1, 2, ...)
// that does not exist yet
func UniqueOutputPath(dir, title, ext string) string {
	path := filepath.Join(dir, title+ext)
	for index := 1; FileExists(path); index++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", title, index, ext))
	}
	return path
}

// ValidateOpenAIAPIKey checks if the OpenAI API key is set and returns a standardized error if not
func ValidateOpenAIAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key is required - set it in config.toml or OPENAI_API_KEY environment variable")
	}
	return nil
}
