package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Overlay layers drawn for each cue
const (
	LayerBackground = "background"
	LayerForeground = "foreground"
)

// Compositor reframes a video, draws cue overlays and encodes the result with ffmpeg
type Compositor struct {
	cmdRunner        CommandRunner
	ffmpegBinary     string
	target           Frame
	style            CaptionStyle
	backgroundVolume float64
	loopBackground   bool
	videoCodec       string
	audioCodec       string
	logger           *slog.Logger
}

// NewCompositor creates a compositor from the rendering settings in config.
// config.FFmpegBinary is the binary that rasterizes text and encodes.
func NewCompositor(cmdRunner CommandRunner, config *Config, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Compositor{
		cmdRunner:        cmdRunner,
		ffmpegBinary:     config.FFmpegBinary,
		target:           Frame{Width: config.Width, Height: config.Height},
		style:            config.Style,
		backgroundVolume: config.BackgroundVolume,
		loopBackground:   config.LoopBackground,
		videoCodec:       config.VideoCodec,
		audioCodec:       config.AudioCodec,
		logger:           logger,
	}
	if c.ffmpegBinary == "" {
		c.ffmpegBinary = "ffmpeg"
	}
	if c.videoCodec == "" {
		c.videoCodec = "libx264"
	}
	if c.audioCodec == "" {
		c.audioCodec = "aac"
	}
	return c
}

// ComposeInput is everything one render needs
type ComposeInput struct {
	VideoPath           string
	Media               MediaInfo
	Cues                []Cue
	BackgroundAudioPath string
	OutputPath          string
	WorkDir             string
}

// Overlay is one drawtext layer of one cue
type Overlay struct {
	Cue         int
	Layer       string
	Text        string
	TextFile    string
	Start       float64
	End         float64
	FontSize    int
	Color       string
	BorderWidth int
	BorderColor string
	Box         bool
}

// RenderPlan is the ffmpeg invocation derived from a ComposeInput
type RenderPlan struct {
	Reframe     ReframePlan
	Overlays    []Overlay
	TextFiles   map[string]string
	FilterGraph string
	ScriptPath  string
	Args        []string
}

// Plan builds the filter graph and ffmpeg arguments without touching the filesystem
func (c *Compositor) Plan(in ComposeInput) (*RenderPlan, error) {
	if in.VideoPath == "" || in.OutputPath == "" {
		return nil, fmt.Errorf("video and output paths are required")
	}
	if strings.Contains(in.WorkDir, "'") {
		return nil, fmt.Errorf("work directory must not contain quotes: %s", in.WorkDir)
	}
	if strings.Contains(c.style.FontFile, "'") {
		return nil, fmt.Errorf("font file must not contain quotes: %s", c.style.FontFile)
	}

	reframe, err := PlanReframe(Frame{Width: in.Media.Width, Height: in.Media.Height}, c.target)
	if err != nil {
		return nil, fmt.Errorf("planning reframe: %w", err)
	}

	plan := &RenderPlan{
		Reframe:    reframe,
		TextFiles:  make(map[string]string, len(in.Cues)),
		ScriptPath: filepath.Join(in.WorkDir, "filter_graph.txt"),
	}

	upper := cases.Upper(language.Und)
	for i, cue := range in.Cues {
		text := flattenCueText(cue.Text)
		if c.style.Uppercase {
			text = upper.String(text)
		}
		textFile := filepath.Join(in.WorkDir, fmt.Sprintf("cue_%04d.txt", i+1))
		plan.TextFiles[textFile] = text
		plan.Overlays = append(plan.Overlays, c.cueOverlays(i, cue, text, textFile)...)
	}

	videoChain := "[0:v]" + reframe.Filter()
	font := c.fontOption()
	for _, overlay := range plan.Overlays {
		videoChain += "," + overlay.drawtext(font)
	}
	graph := []string{videoChain + "[vout]"}

	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", in.VideoPath}
	hasBackground := in.BackgroundAudioPath != ""
	if hasBackground {
		if c.loopBackground {
			args = append(args, "-stream_loop", "-1")
		}
		args = append(args, "-i", in.BackgroundAudioPath)
	}
	args = append(args, "-filter_complex_script", plan.ScriptPath, "-map", "[vout]")

	volume := strconv.FormatFloat(c.backgroundVolume, 'f', -1, 64)
	encodeAudio := true
	switch {
	case hasBackground && in.Media.HasAudio:
		graph = append(graph,
			"[1:a]volume="+volume+"[bg]",
			"[0:a:0][bg]amix=inputs=2:duration=first:dropout_transition=0:normalize=0[aout]")
		args = append(args, "-map", "[aout]")
	case hasBackground:
		if in.Media.Duration > 0 {
			graph = append(graph, fmt.Sprintf("[1:a]volume=%s,atrim=end=%.3f[aout]", volume, in.Media.Duration))
			args = append(args, "-map", "[aout]")
		} else {
			graph = append(graph, "[1:a]volume="+volume+"[aout]")
			args = append(args, "-map", "[aout]", "-shortest")
		}
	case in.Media.HasAudio:
		args = append(args, "-map", "0:a:0")
	default:
		encodeAudio = false
		args = append(args, "-an")
	}

	args = append(args, "-c:v", c.videoCodec, "-pix_fmt", "yuv420p")
	if encodeAudio {
		args = append(args, "-c:a", c.audioCodec)
	}
	args = append(args, "-movflags", "+faststart", in.OutputPath)

	plan.FilterGraph = strings.Join(graph, ";\n")
	plan.Args = args
	return plan, nil
}

// Compose writes the cue text files and filter script into the work directory
// and runs ffmpeg
func (c *Compositor) Compose(ctx context.Context, in ComposeInput) (*RenderPlan, error) {
	plan, err := c.Plan(in)
	if err != nil {
		return nil, err
	}

	if err := EnsureDirs(in.WorkDir); err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	for path, text := range plan.TextFiles {
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return nil, fmt.Errorf("writing cue text: %w", err)
		}
	}
	if err := os.WriteFile(plan.ScriptPath, []byte(plan.FilterGraph), 0644); err != nil {
		return nil, fmt.Errorf("writing filter script: %w", err)
	}
	if err := EnsureDirs(filepath.Dir(in.OutputPath)); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	c.logger.Debug("rendering video",
		"video", in.VideoPath,
		"cues", len(in.Cues),
		"overlays", len(plan.Overlays),
		"background", in.BackgroundAudioPath,
		"output", in.OutputPath)

	output, err := c.cmdRunner.Run(ctx, c.ffmpegBinary, plan.Args...)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg render: %w\nOutput: %s", err, strings.TrimSpace(string(output)))
	}
	return plan, nil
}

// cueOverlays returns the layers for one cue, bottom layer first
func (c *Compositor) cueOverlays(index int, cue Cue, text, textFile string) []Overlay {
	foreground := Overlay{
		Cue:      index,
		Layer:    LayerForeground,
		Text:     text,
		TextFile: textFile,
		Start:    cue.Start,
		End:      cue.End,
		FontSize: c.style.FontSize,
		Color:    c.style.Color,
	}
	if !c.style.TwoLayer {
		foreground.Box = true
		foreground.BorderColor = c.style.BackgroundColor
		return []Overlay{foreground}
	}

	background := Overlay{
		Cue:         index,
		Layer:       LayerBackground,
		Text:        text,
		TextFile:    textFile,
		Start:       cue.Start,
		End:         cue.End,
		FontSize:    c.style.BackgroundFontSize,
		Color:       c.style.BackgroundColor,
		BorderWidth: c.style.StrokeWidth,
		BorderColor: c.style.BackgroundColor,
	}
	return []Overlay{background, foreground}
}

func (c *Compositor) fontOption() string {
	if c.style.FontFile != "" {
		return "fontfile='" + escapeFilterPath(c.style.FontFile) + "'"
	}
	if c.style.Font != "" {
		return "font='" + escapeFilterPath(c.style.Font) + "'"
	}
	return ""
}

// drawtext renders the overlay as a drawtext filter. The overlay is visible for
// start <= t < end and centered on the frame.
func (o Overlay) drawtext(font string) string {
	opts := []string{
		"textfile='" + escapeFilterPath(o.TextFile) + "'",
		"expansion=none",
	}
	if font != "" {
		opts = append(opts, font)
	}
	opts = append(opts,
		fmt.Sprintf("fontsize=%d", o.FontSize),
		"fontcolor="+o.Color,
	)
	if o.BorderWidth > 0 {
		opts = append(opts, fmt.Sprintf("borderw=%d", o.BorderWidth), "bordercolor="+o.BorderColor)
	}
	if o.Box {
		opts = append(opts, "box=1", "boxcolor="+o.BorderColor, "boxborderw=10")
	}
	opts = append(opts,
		"x=(w-text_w)/2",
		"y=(h-text_h)/2",
		fmt.Sprintf("enable='gte(t,%.3f)*lt(t,%.3f)'", o.Start, o.End),
	)
	return "drawtext=" + strings.Join(opts, ":")
}

// escapeFilterPath escapes a value placed inside single quotes of a filter option
func escapeFilterPath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.ReplaceAll(path, `\`, `\\`)
	return strings.ReplaceAll(path, ":", `\:`)
}
