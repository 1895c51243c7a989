package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [video]",
	Short: "Transcribe a video into a cue file",
	Example: `  # Print the cues of a video
  videosubtitler transcribe InputVideo/clip.mp4

  # Save cues to edit them before rendering
  videosubtitler transcribe clip.mp4 -o clip.cues

  # Plain transcript text or the raw model output
  videosubtitler transcribe clip.mp4 --format text
  videosubtitler transcribe clip.mp4 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "cues" && format != "text" && format != "json" {
			return fmt.Errorf("unsupported format: %s (supported: cues, text, json)", format)
		}

		app, err := newTranscribingApp(cmd)
		if err != nil {
			return err
		}

		transcript, cues, err := app.Transcribe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		switch format {
		case "text":
			buf.WriteString(transcript.PlainText() + "\n")
		case "json":
			data, err := json.MarshalIndent(transcript, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding transcript: %w", err)
			}
			buf.Write(append(data, '\n'))
		default:
			if err := internal.WriteCues(&buf, cues); err != nil {
				return err
			}
		}

		outputFile, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, outputFile, buf.Bytes())
	},
}

func init() {
	internal.AddTranscriptionFlags(transcribeCmd)
	transcribeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	transcribeCmd.Flags().String("format", "cues", "Output format: cues, text or json")
	rootCmd.AddCommand(transcribeCmd)
}
