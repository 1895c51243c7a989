package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// newTranscribingApp applies transcription flags and builds the app
func newTranscribingApp(cmd *cobra.Command) (*internal.App, error) {
	if err := internal.ApplyTranscriptionFlags(cmd, config); err != nil {
		return nil, err
	}
	return internal.NewApp(config, logger)
}

// writeOutput writes data to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
