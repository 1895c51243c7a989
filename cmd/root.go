package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

var (
	config   *internal.Config
	logger   = slog.New(slog.DiscardHandler)
	closeLog internal.LogCloser
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "videosubtitler [video]",
	Short: "Burn word-timed captions into vertical videos",
	Long: `videosubtitler transcribes a video's speech with Whisper and renders the
captions back onto it, reframed to a 1080x1920 portrait frame.

Without an argument it lists the videos in the input directory and asks which
one to process. When the background audio directory has tracks it also offers
to mix one under the original sound. The result is written to the output
directory as <title>wSubtitles.mp4, never overwriting an earlier render.`,
	Example: `  # Pick a video and background track interactively
  videosubtitler

  # Subtitle a specific video
  videosubtitler InputVideo/clip.mp4

  # Mix a background track at the configured volume
  videosubtitler InputVideo/clip.mp4 -b BackgroundAudio/lofi.mp3

  # Wrap transcript segments into 40 character lines instead of one word per cue
  videosubtitler clip.mp4 --segmentation wrap

  # Transcribe with the OpenAI API instead of a local whisper install
  videosubtitler clip.mp4 --backend openai`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ApplyTranscriptionFlags(cmd, config); err != nil {
			return err
		}
		if err := internal.ApplyRenderFlags(cmd, config); err != nil {
			return err
		}

		videoPath := ""
		if len(args) == 1 {
			videoPath = args[0]
		}
		background, _ := cmd.Flags().GetString("background")
		noBackground, _ := cmd.Flags().GetBool("no-background")
		askBackground := !noBackground && background == "" && (videoPath == "" || stdinIsTerminal())

		selector := &internal.Selector{
			Menu:      internal.NewMenu(cmd.InOrStdin(), cmd.OutOrStdout()),
			InputDir:  config.InputDir,
			AudioDir:  config.AudioDir,
			OutputDir: config.OutputDir,
		}
		req, err := selector.Select(videoPath, background, askBackground)
		if err != nil {
			return err
		}

		app, err := internal.NewApp(config, logger)
		if err != nil {
			return err
		}

		output, err := app.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved subtitled video to %s\n", output)
		return nil
	},
}

// setup loads configuration and the logger once flags are parsed
func setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	config = internal.InitConfig(configFile)

	if err := internal.HandleVerboseFlag(cmd, config); err != nil {
		return err
	}

	// Ensure XDG directories exist
	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		return fmt.Errorf("creating XDG directories: %w", err)
	}

	// Ensure default config exists in XDG config directory
	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	var err error
	logger, closeLog, err = internal.NewLogger(cmd.ErrOrStderr(), config.Verbose, config.Quiet, config.LogFile)
	if err != nil {
		return err
	}

	internal.WarnMissingRenderer(config, logger)
	return nil
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Create a cancellable context for the entire application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		if _, ok := <-sigCh; !ok {
			return
		}
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal. Cleaning up and shutting down...")

		// Cancelling stops ffmpeg and whisper; the run removes its work directory on the way out
		cancel()

		select {
		case <-sigCh:
		case <-time.After(5 * time.Second):
			fmt.Fprintln(os.Stderr, "Warning: Cleanup timed out, forcing exit")
		}
		os.Exit(1)
	}()

	defer func() {
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: closing log file: %v\n", err)
			}
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	internal.AddTranscriptionFlags(rootCmd)
	internal.AddRenderFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print warnings and errors")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/videosubtitler/config.toml)")
}
