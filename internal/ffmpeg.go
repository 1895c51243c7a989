package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Audio handles media file operations using FFmpeg
type Audio struct {
	cmdRunner     CommandRunner
	ffmpegBinary  string
	ffprobeBinary string
	logger        *slog.Logger
}

// NewAudio creates a new media processor
func NewAudio(cmdRunner CommandRunner, ffmpegBinary, ffprobeBinary string, logger *slog.Logger) *Audio {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Audio{
		cmdRunner:     cmdRunner,
		ffmpegBinary:  ffmpegBinary,
		ffprobeBinary: ffprobeBinary,
		logger:        logger,
	}
}

// AudioChunk is a piece of a longer audio file and its offset in the original
type AudioChunk struct {
	Path   string
	Offset float64
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads duration, frame size and stream presence with ffprobe
func (a *Audio) Probe(ctx context.Context, mediaFile string) (MediaInfo, error) {
	output, err := a.cmdRunner.Run(ctx, a.ffprobeBinary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_entries", "stream=codec_type,width,height:format=duration",
		mediaFile)
	if err != nil {
		return MediaInfo{}, fmt.Errorf("ffprobe failed: %w\nOutput: %s", err, string(output))
	}
	return parseProbeOutput(output)
}

func parseProbeOutput(output []byte) (MediaInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return MediaInfo{}, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	var info MediaInfo
	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if !info.HasVideo {
				info.HasVideo = true
				info.Width = stream.Width
				info.Height = stream.Height
			}
		case "audio":
			info.HasAudio = true
		}
	}

	if d := strings.TrimSpace(probe.Format.Duration); d != "" {
		duration, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return MediaInfo{}, fmt.Errorf("parsing duration: %w", err)
		}
		info.Duration = duration
	}

	return info, nil
}

// Duration returns the media file duration in seconds
func (a *Audio) Duration(ctx context.Context, mediaFile string) (float64, error) {
	output, err := a.cmdRunner.Run(ctx, a.ffprobeBinary,
		"-i", mediaFile,
		"-show_entries", "format=duration",
		"-v", "quiet",
		"-of", "csv=p=0")

	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w\nOutput: %s", err, string(output))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration: %w", err)
	}

	return duration, nil
}

// Extract writes the first audio track of videoFile as mono 16 kHz PCM WAV
func (a *Audio) Extract(ctx context.Context, videoFile, audioFile string) error {
	a.logger.Debug("extracting audio", "video", videoFile, "audio", audioFile)

	output, err := a.cmdRunner.Run(ctx, a.ffmpegBinary,
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoFile,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		audioFile)
	if err != nil {
		return fmt.Errorf("ffmpeg extract: %w\nOutput: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Split divides an audio file into numChunks pieces in dir
func (a *Audio) Split(ctx context.Context, audioFile, dir string, numChunks int) ([]AudioChunk, error) {
	if err := EnsureDirs(dir); err != nil {
		return nil, fmt.Errorf("creating chunk directory: %w", err)
	}

	duration, err := a.Duration(ctx, audioFile)
	if err != nil {
		return nil, fmt.Errorf("getting audio duration: %w", err)
	}

	chunkDuration := int(math.Ceil(duration / float64(numChunks)))
	chunks := make([]AudioChunk, 0, numChunks)
	ext := filepath.Ext(audioFile)
	stem := strings.TrimSuffix(filepath.Base(audioFile), ext)

	for i := range numChunks {
		start := i * chunkDuration
		output := filepath.Join(dir, fmt.Sprintf("%s_chunk_%d%s", stem, i, ext))

		if err := a.Chunk(ctx, audioFile, start, chunkDuration, output); err != nil {
			cleanupFiles(chunkPaths(chunks)...)
			return nil, fmt.Errorf("creating chunk %d: %w", i, err)
		}
		chunks = append(chunks, AudioChunk{Path: output, Offset: float64(start)})
	}

	a.logger.Debug("split audio", "file", audioFile, "chunks", numChunks, "chunk_seconds", chunkDuration)
	return chunks, nil
}

// Chunk extracts a segment from an audio file
func (a *Audio) Chunk(ctx context.Context, audioFile string, start, duration int, output string) error {
	cmdOutput, err := a.cmdRunner.Run(ctx, a.ffmpegBinary,
		"-v", "quiet",
		"-i", audioFile,
		"-ss", strconv.Itoa(start),
		"-t", strconv.Itoa(duration),
		"-c:a", "copy",
		"-y", output)

	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(cmdOutput))
	}
	return nil
}

func chunkPaths(chunks []AudioChunk) []string {
	paths := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		paths = append(paths, chunk.Path)
	}
	return paths
}
