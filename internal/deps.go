package internal

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Requirement defines an external binary the pipeline relies on
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// DependencyStatus reports the availability of a requirement
type DependencyStatus struct {
	Requirement
	Available bool
	Path      string
	Detail    string
}

// Requirements lists the binaries used with the current configuration
func Requirements(config *Config) []Requirement {
	backend, _ := ParseBackend(config.Backend)
	return []Requirement{
		{Name: "FFmpeg", Command: config.FFmpegBinary, Description: "Extracts audio, draws captions and encodes"},
		{Name: "FFprobe", Command: config.FFprobeBinary, Description: "Reads video size and duration"},
		{Name: "Whisper", Command: config.WhisperBinary, Description: "Local speech-to-text", Optional: backend != BackendLocal},
		{Name: "yt-dlp", Command: "yt-dlp", Description: "Downloads videos for the fetch command (installed on demand)", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability
func CheckBinaries(requirements []Requirement) []DependencyStatus {
	results := make([]DependencyStatus, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		status := DependencyStatus{Requirement: req}
		if req.Command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(req.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// WarnMissingRenderer logs when the configured ffmpeg cannot be found. The run
// continues; rendering fails later if the binary is really missing.
func WarnMissingRenderer(config *Config, logger *slog.Logger) {
	status := CheckBinaries([]Requirement{{Name: "FFmpeg", Command: config.FFmpegBinary}})[0]
	if !status.Available {
		logger.Warn("text rendering binary unavailable", "ffmpeg_binary", config.FFmpegBinary, "detail", status.Detail)
	}
}
