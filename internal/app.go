package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Work directory file names
const (
	tempAudioName = "temp_audio.wav"
	tempCueName   = "temp_subs.cues"
)

// App holds the application state and dependencies
type App struct {
	audio         *Audio
	transcriber   Transcriber
	compositor    *Compositor
	promptManager *PromptManager
	config        *Config
	ui            UIManager
	logger        *slog.Logger
	cmdRunner     CommandRunner
	newRunID      func() string
}

// NewApp initializes the application
func NewApp(config *Config, logger *slog.Logger, options ...AppOption) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	app := &App{
		promptManager: NewPromptManager(config.Prompt),
		config:        config,
		logger:        logger,
		cmdRunner:     &DefaultCommandRunner{},
		newRunID:      uuid.NewString,
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	if app.ui == nil {
		app.ui = NewUIManager(config.Quiet)
	}
	if app.audio == nil {
		app.audio = NewAudio(app.cmdRunner, config.FFmpegBinary, config.FFprobeBinary, logger)
	}
	if app.compositor == nil {
		app.compositor = NewCompositor(app.cmdRunner, config, logger)
	}
	if app.transcriber == nil {
		transcriber, err := NewTranscriber(config, app.cmdRunner, app.audio, logger)
		if err != nil {
			return nil, err
		}
		app.transcriber = transcriber
	}

	return app, nil
}

// AppOption customizes App creation
type AppOption func(*App)

// WithCommandRunner sets the runner used for ffmpeg, ffprobe and whisper
func WithCommandRunner(cmdRunner CommandRunner) AppOption {
	return func(a *App) {
		a.cmdRunner = cmdRunner
	}
}

// WithAudio sets a custom audio processor
func WithAudio(audio *Audio) AppOption {
	return func(a *App) {
		a.audio = audio
	}
}

// WithTranscriber sets a custom speech-to-text backend
func WithTranscriber(transcriber Transcriber) AppOption {
	return func(a *App) {
		a.transcriber = transcriber
	}
}

// WithUI sets the status output
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// WithRunID overrides the work directory naming
func WithRunID(newRunID func() string) AppOption {
	return func(a *App) {
		a.newRunID = newRunID
	}
}

// Run performs the complete workflow: extract audio -> transcribe -> cue file ->
// render. Returns the path of the rendered video.
func (app *App) Run(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	app.logger.Info("starting run", "request", req.String())

	lock, err := AcquireRunLock(app.config.CacheDir)
	if err != nil {
		return "", err
	}
	defer app.releaseLock(lock)

	workDir, cleanup, err := app.newWorkDir()
	if err != nil {
		return "", err
	}
	defer cleanup()

	media, _, cues, err := app.transcribeVideo(ctx, req.VideoPath, workDir)
	if err != nil {
		return "", err
	}

	// the cue file is the hand-off between transcription and rendering
	cueFile := filepath.Join(workDir, tempCueName)
	if err := SaveCueFile(cueFile, cues); err != nil {
		return "", err
	}
	cues, err = LoadCueFile(cueFile)
	if err != nil {
		return "", err
	}

	return app.render(ctx, req, media, cues, workDir)
}

// Transcribe runs the extraction and transcription stages for one video
func (app *App) Transcribe(ctx context.Context, videoPath string) (*Transcript, []Cue, error) {
	if !FileExists(videoPath) {
		return nil, nil, fmt.Errorf("video not found: %s", videoPath)
	}

	workDir, cleanup, err := app.newWorkDir()
	if err != nil {
		return nil, nil, err
	}
	defer cleanup()

	_, transcript, cues, err := app.transcribeVideo(ctx, videoPath, workDir)
	if err != nil {
		return nil, nil, err
	}
	return transcript, cues, nil
}

// Burn renders an existing cue file onto the requested video
func (app *App) Burn(ctx context.Context, req Request, cueFile string) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	cues, err := LoadCueFile(cueFile)
	if err != nil {
		return "", err
	}
	app.warnCueIssues(cues)

	lock, err := AcquireRunLock(app.config.CacheDir)
	if err != nil {
		return "", err
	}
	defer app.releaseLock(lock)

	workDir, cleanup, err := app.newWorkDir()
	if err != nil {
		return "", err
	}
	defer cleanup()

	media, err := app.audio.Probe(ctx, req.VideoPath)
	if err != nil {
		return "", fmt.Errorf("probing video: %w", err)
	}
	return app.render(ctx, req, media, cues, workDir)
}

// Probe reads the metadata of a media file
func (app *App) Probe(ctx context.Context, mediaFile string) (MediaInfo, error) {
	if !FileExists(mediaFile) {
		return MediaInfo{}, fmt.Errorf("file not found: %s", mediaFile)
	}
	return app.audio.Probe(ctx, mediaFile)
}

// transcribeVideo probes the video, extracts its first audio stream into the work
// directory and turns the model output into cues
func (app *App) transcribeVideo(ctx context.Context, videoPath, workDir string) (MediaInfo, *Transcript, []Cue, error) {
	mode, err := ParseSegmentation(app.config.Segmentation)
	if err != nil {
		return MediaInfo{}, nil, nil, err
	}

	spinner := app.ui.NewSpinner("Extracting audio...")
	defer spinner.Finish()

	media, err := app.audio.Probe(ctx, videoPath)
	if err != nil {
		return MediaInfo{}, nil, nil, fmt.Errorf("probing video: %w", err)
	}
	if !media.HasAudio {
		return MediaInfo{}, nil, nil, fmt.Errorf("video has no audio stream: %s", videoPath)
	}
	app.logger.Debug("probed video",
		"video", videoPath,
		"width", media.Width,
		"height", media.Height,
		"duration", media.Duration)

	audioFile := filepath.Join(workDir, tempAudioName)
	if err := app.audio.Extract(ctx, videoPath, audioFile); err != nil {
		return MediaInfo{}, nil, nil, fmt.Errorf("extracting audio: %w", err)
	}

	prompt, err := app.promptManager.CreatePrompt(videoPath, app.config.Language)
	if err != nil {
		return MediaInfo{}, nil, nil, err
	}

	spinner.Describe(fmt.Sprintf("Transcribing with %s...", app.transcriber.Name()))
	spinner.Advance()

	transcript, err := app.transcriber.Transcribe(ctx, audioFile, TranscribeOptions{
		Language: app.config.Language,
		Prompt:   prompt,
	})
	if err != nil {
		return MediaInfo{}, nil, nil, fmt.Errorf("transcribing audio: %w", err)
	}

	cues, used := BuildCues(transcript, mode, app.config.WordsPerSegment)
	if used != mode {
		app.logger.Warn("transcript has no word timings, wrapping segments instead", "requested", mode)
	}
	app.logger.Info("transcribed video",
		"video", videoPath,
		"backend", app.transcriber.Name(),
		"language", transcript.Language,
		"segments", len(transcript.Segments),
		"cues", len(cues),
		"segmentation", used)
	app.warnCueIssues(cues)

	return media, transcript, cues, nil
}

// render composes the cues onto the video and returns the non-colliding output path
func (app *App) render(ctx context.Context, req Request, media MediaInfo, cues []Cue, workDir string) (string, error) {
	if err := EnsureDirs(req.OutputDir); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	output := UniqueOutputPath(req.OutputDir, OutputTitle(req.VideoPath), OutputExtension)

	spinner := app.ui.NewSpinner("Rendering video...")
	defer spinner.Finish()

	_, err := app.compositor.Compose(ctx, ComposeInput{
		VideoPath:           req.VideoPath,
		Media:               media,
		Cues:                cues,
		BackgroundAudioPath: req.BackgroundAudioPath,
		OutputPath:          output,
		WorkDir:             workDir,
	})
	if err != nil {
		return "", fmt.Errorf("rendering video: %w", err)
	}

	app.logger.Info("rendered video", "output", output, "cues", len(cues))
	return output, nil
}

// newWorkDir creates a fresh directory for one run's intermediate files. The
// returned cleanup removes it unless keep_temp is set.
func (app *App) newWorkDir() (string, func(), error) {
	workDir := filepath.Join(app.config.TempDir, app.newRunID())
	if err := EnsureDirs(workDir); err != nil {
		return "", nil, fmt.Errorf("creating work directory: %w", err)
	}

	cleanup := func() {
		if app.config.KeepTemp {
			app.logger.Info("keeping work directory", "path", workDir)
			return
		}
		if err := os.RemoveAll(workDir); err != nil {
			app.logger.Warn("failed to remove work directory", "path", workDir, "error", err)
		}
	}
	return workDir, cleanup, nil
}

func (app *App) releaseLock(lock *RunLock) {
	if err := lock.Release(); err != nil {
		app.logger.Warn("failed to release run lock", "error", err)
	}
}

func (app *App) warnCueIssues(cues []Cue) {
	for _, issue := range ValidateCues(cues) {
		app.logger.Warn("suspicious cue", "issue", issue.String())
	}
}
