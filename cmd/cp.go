package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// cpCmd copies the transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [video]",
	Short: "Copy a video's transcript to the clipboard",
	Example: `  # Copy what is said in a video
  videosubtitler cp InputVideo/clip.mp4

  # Use the OpenAI API for transcription
  videosubtitler cp clip.mp4 --backend openai`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newTranscribingApp(cmd)
		if err != nil {
			return err
		}

		transcript, _, err := app.Transcribe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcript.PlainText()); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
