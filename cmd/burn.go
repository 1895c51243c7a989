package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// burnCmd renders an existing cue file without transcribing again
var burnCmd = &cobra.Command{
	Use:   "burn [video] [cue file]",
	Short: "Render a cue file onto a video",
	Example: `  # Render hand-edited cues
  videosubtitler transcribe clip.mp4 -o clip.cues
  videosubtitler burn clip.mp4 clip.cues

  # With background audio into another directory
  videosubtitler burn clip.mp4 clip.cues -b BackgroundAudio/lofi.mp3 -o renders`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ApplyRenderFlags(cmd, config); err != nil {
			return err
		}
		background, _ := cmd.Flags().GetString("background")

		app, err := internal.NewApp(config, logger)
		if err != nil {
			return err
		}

		output, err := app.Burn(cmd.Context(), internal.Request{
			VideoPath:           args[0],
			BackgroundAudioPath: background,
			OutputDir:           config.OutputDir,
		}, args[1])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved subtitled video to %s\n", output)
		return nil
	},
}

func init() {
	internal.AddRenderFlags(burnCmd)
	rootCmd.AddCommand(burnCmd)
}
