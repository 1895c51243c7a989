package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// CaptionStyle controls how cue text is drawn over the video
type CaptionStyle struct {
	Font               string
	FontFile           string
	FontSize           int
	BackgroundFontSize int
	StrokeWidth        int
	Color              string
	BackgroundColor    string
	TwoLayer           bool
	Uppercase          bool
}

// Config holds application settings
type Config struct {
	// User configurable settings
	InputDir          string
	OutputDir         string
	AudioDir          string
	Backend           string
	WhisperBinary     string
	WhisperModel      string
	Language          string
	Segmentation      string
	WordsPerSegment   int
	Prompt            string
	FFmpegBinary      string
	FFprobeBinary     string
	Width             int
	Height            int
	Style             CaptionStyle
	BackgroundVolume  float64
	LoopBackground    bool
	VideoCodec        string
	AudioCodec        string
	TranscribeTimeout time.Duration
	LogFile           string
	Verbose           bool
	Quiet             bool
	KeepTemp          bool
	OpenAIAPIKey      string

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
	TempDir   string
}

//go:embed config.toml
var defaultFS embed.FS

// WhisperLimit is the maximum file size accepted by OpenAI's transcription API (25 MiB)
const WhisperLimit int64 = 25 << 20

const appName = "videosubtitler"

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Fprintf(os.Stderr, "Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// NewViper returns a viper instance with defaults, config search paths and env bindings
func NewViper(configDir string) *viper.Viper {
	v := viper.New()

	v.SetDefault("input_dir", "InputVideo")
	v.SetDefault("output_dir", "Output")
	v.SetDefault("audio_dir", "BackgroundAudio")
	v.SetDefault("backend", "local")
	v.SetDefault("whisper_binary", "whisper")
	v.SetDefault("whisper_model", "base")
	v.SetDefault("language", "")
	v.SetDefault("segmentation", string(SegmentWords))
	v.SetDefault("words_per_segment", DefaultWordsPerSegment)
	v.SetDefault("prompt", "")
	v.SetDefault("ffmpeg_binary", "ffmpeg")
	v.SetDefault("ffprobe_binary", "ffprobe")
	v.SetDefault("width", 1080)
	v.SetDefault("height", 1920)
	v.SetDefault("style.font", "Arial")
	v.SetDefault("style.font_file", "")
	v.SetDefault("style.font_size", 80)
	v.SetDefault("style.background_font_size", 88)
	v.SetDefault("style.stroke_width", 12)
	v.SetDefault("style.color", "white")
	v.SetDefault("style.background_color", "black")
	v.SetDefault("style.two_layer", true)
	v.SetDefault("style.uppercase", false)
	v.SetDefault("background_volume", 0.1)
	v.SetDefault("loop_background", true)
	v.SetDefault("video_codec", "libx264")
	v.SetDefault("audio_codec", "aac")
	v.SetDefault("transcribe_timeout", 30*time.Minute)
	v.SetDefault("log_file", "")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("keep_temp", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")

	// VIDEOSUBTITLER_FFMPEG_BINARY, VIDEOSUBTITLER_STYLE_FONT_SIZE, ...
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")

	return v
}

// InitConfig initializes Viper and loads configuration. An empty configFile
// searches the XDG config directory and the working directory.
func InitConfig(configFile string) *Config {
	configDir := filepath.Join(xdg.ConfigHome, appName)
	dataDir := filepath.Join(xdg.DataHome, appName)
	cacheDir := filepath.Join(xdg.CacheHome, appName)

	v := NewViper(configDir)
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := ConfigFromViper(v)
	config.ConfigDir = configDir
	config.DataDir = dataDir
	config.CacheDir = cacheDir
	config.TempDir = filepath.Join(cacheDir, "runs")

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

// ConfigFromViper copies user settings out of v
func ConfigFromViper(v *viper.Viper) *Config {
	return &Config{
		InputDir:        v.GetString("input_dir"),
		OutputDir:       v.GetString("output_dir"),
		AudioDir:        v.GetString("audio_dir"),
		Backend:         v.GetString("backend"),
		WhisperBinary:   v.GetString("whisper_binary"),
		WhisperModel:    v.GetString("whisper_model"),
		Language:        v.GetString("language"),
		Segmentation:    v.GetString("segmentation"),
		WordsPerSegment: v.GetInt("words_per_segment"),
		Prompt:          v.GetString("prompt"),
		FFmpegBinary:    v.GetString("ffmpeg_binary"),
		FFprobeBinary:   v.GetString("ffprobe_binary"),
		Width:           v.GetInt("width"),
		Height:          v.GetInt("height"),
		Style: CaptionStyle{
			Font:               v.GetString("style.font"),
			FontFile:           v.GetString("style.font_file"),
			FontSize:           v.GetInt("style.font_size"),
			BackgroundFontSize: v.GetInt("style.background_font_size"),
			StrokeWidth:        v.GetInt("style.stroke_width"),
			Color:              v.GetString("style.color"),
			BackgroundColor:    v.GetString("style.background_color"),
			TwoLayer:           v.GetBool("style.two_layer"),
			Uppercase:          v.GetBool("style.uppercase"),
		},
		BackgroundVolume:  v.GetFloat64("background_volume"),
		LoopBackground:    v.GetBool("loop_background"),
		VideoCodec:        v.GetString("video_codec"),
		AudioCodec:        v.GetString("audio_codec"),
		TranscribeTimeout: v.GetDuration("transcribe_timeout"),
		LogFile:           v.GetString("log_file"),
		Verbose:           v.GetBool("verbose"),
		Quiet:             v.GetBool("quiet"),
		KeepTemp:          v.GetBool("keep_temp"),
		OpenAIAPIKey:      v.GetString("openai_api_key"),
	}
}

// Settings returns the user configurable settings keyed like config.toml.
// The API key is never included.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		"input_dir":          c.InputDir,
		"output_dir":         c.OutputDir,
		"audio_dir":          c.AudioDir,
		"backend":            c.Backend,
		"whisper_binary":     c.WhisperBinary,
		"whisper_model":      c.WhisperModel,
		"language":           c.Language,
		"segmentation":       c.Segmentation,
		"words_per_segment":  c.WordsPerSegment,
		"prompt":             c.Prompt,
		"ffmpeg_binary":      c.FFmpegBinary,
		"ffprobe_binary":     c.FFprobeBinary,
		"width":              c.Width,
		"height":             c.Height,
		"background_volume":  c.BackgroundVolume,
		"loop_background":    c.LoopBackground,
		"video_codec":        c.VideoCodec,
		"audio_codec":        c.AudioCodec,
		"transcribe_timeout": c.TranscribeTimeout.String(),
		"log_file":           c.LogFile,
		"keep_temp":          c.KeepTemp,
		"style": map[string]any{
			"font":                 c.Style.Font,
			"font_file":            c.Style.FontFile,
			"font_size":            c.Style.FontSize,
			"background_font_size": c.Style.BackgroundFontSize,
			"stroke_width":         c.Style.StrokeWidth,
			"color":                c.Style.Color,
			"background_color":     c.Style.BackgroundColor,
			"two_layer":            c.Style.TwoLayer,
			"uppercase":            c.Style.Uppercase,
		},
	}
}
