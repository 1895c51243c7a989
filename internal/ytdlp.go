package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/lrstanley/go-ytdlp"
)

// VideoMetadata contains the fields of a remote video used to name the download
type VideoMetadata struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Channel  string  `json:"channel"`
	Uploader string  `json:"uploader"`
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// YouTube downloads source videos into the input directory
type YouTube struct {
	logger  *slog.Logger
	install bool
}

// NewYouTube creates a downloader. With install set, a missing yt-dlp binary is
// fetched into the cache before the first call.
func NewYouTube(install bool, logger *slog.Logger) *YouTube {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &YouTube{logger: logger, install: install}
}

func (yt *YouTube) ensureInstalled(ctx context.Context) error {
	if !yt.install {
		return nil
	}
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("installing yt-dlp: %w", err)
	}
	return nil
}

// Metadata fetches video details without downloading media
func (yt *YouTube) Metadata(ctx context.Context, youtubeURL string) (*VideoMetadata, error) {
	if err := yt.ensureInstalled(ctx); err != nil {
		return nil, err
	}

	yt.logger.Debug("extracting video metadata", "url", youtubeURL)
	result, err := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload().
		Run(ctx, youtubeURL)
	if err != nil {
		stderr := ""
		if result != nil {
			stderr = result.Stderr
		}
		return nil, fmt.Errorf("extracting video metadata: %w\nOutput: %s", err, stderr)
	}

	return parseVideoMetadata([]byte(result.Stdout))
}

func parseVideoMetadata(body []byte) (*VideoMetadata, error) {
	var metadata VideoMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}
	if metadata.ID == "" {
		return nil, fmt.Errorf("video metadata has no id")
	}
	return &metadata, nil
}

// Download saves the video as an mp4 in destDir and returns its path. The file
// is named after the video title so the rendered output keeps a readable name.
func (yt *YouTube) Download(ctx context.Context, youtubeURL, destDir string) (string, error) {
	metadata, err := yt.Metadata(ctx, youtubeURL)
	if err != nil {
		return "", err
	}
	if err := EnsureDirs(destDir); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	name := downloadName(metadata)
	output := UniqueOutputPath(destDir, name, OutputExtension)
	stem := strings.TrimSuffix(output, OutputExtension)

	yt.logger.Info("downloading video", "id", metadata.ID, "title", metadata.Title, "output", output)
	result, err := ytdlp.New().
		Format("bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b").
		MergeOutputFormat("mp4").
		NoPlaylist().
		Output(stem+".%(ext)s").
		Run(ctx, youtubeURL)
	if err != nil {
		stderr := ""
		if result != nil {
			stderr = result.Stderr
		}
		return "", fmt.Errorf("yt-dlp failed: %w\nOutput: %s", err, stderr)
	}

	if !FileExists(output) {
		return "", fmt.Errorf("download finished but %s is missing", output)
	}
	return output, nil
}

// downloadName turns a title into a file stem safe for both the filesystem and
// yt-dlp's output template
func downloadName(metadata *VideoMetadata) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range metadata.Title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	name := strings.Trim(b.String(), "_")
	if len([]rune(name)) > 80 {
		name = strings.TrimRight(string([]rune(name)[:80]), "_")
	}
	if name == "" {
		name = metadata.ID
	}
	return filepath.Base(name)
}
