package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show paths used by the application",
	Example: `  # Show all application paths
  videosubtitler paths`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file: %s\n", filepath.Join(config.ConfigDir, "config.toml"))
		fmt.Fprintf(out, "Data directory: %s\n", config.DataDir)
		fmt.Fprintf(out, "Cache directory: %s\n", config.CacheDir)
		fmt.Fprintf(out, "Work directories: %s\n", config.TempDir)
		fmt.Fprintf(out, "Input videos: %s\n", absPath(config.InputDir))
		fmt.Fprintf(out, "Background audio: %s\n", absPath(config.AudioDir))
		fmt.Fprintf(out, "Output directory: %s\n", absPath(config.OutputDir))
		if config.LogFile != "" {
			fmt.Fprintf(out, "Log file: %s\n", config.LogFile)
		}
	},
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
