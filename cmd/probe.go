package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe [video]",
	Short: "Show the size, duration and streams of a media file",
	Example: `  # Inspect a source video
  videosubtitler probe InputVideo/clip.mp4

  # Save metadata to file
  videosubtitler probe clip.mp4 -o clip.json

  # Format output as pretty JSON
  videosubtitler probe clip.mp4 --pretty`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := internal.NewApp(config, logger)
		if err != nil {
			return err
		}

		info, err := app.Probe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var jsonData []byte
		pretty, _ := cmd.Flags().GetBool("pretty")
		if pretty {
			jsonData, err = json.MarshalIndent(info, "", "  ")
		} else {
			jsonData, err = json.Marshal(info)
		}
		if err != nil {
			return fmt.Errorf("error converting metadata to JSON: %w", err)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, outputFile, append(jsonData, '\n'))
	},
}

func init() {
	probeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	probeCmd.Flags().Bool("pretty", false, "Format output as pretty JSON")
	rootCmd.AddCommand(probeCmd)
}
