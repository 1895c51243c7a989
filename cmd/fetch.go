package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// fetchCmd downloads a source video into the input directory
var fetchCmd = &cobra.Command{
	Use:   "fetch [YouTube URL or ID]",
	Short: "Download a video into the input directory",
	Example: `  # Download, then subtitle it from the menu
  videosubtitler fetch "https://www.youtube.com/shorts/tAP1eZYEuKA"
  videosubtitler fetch tAP1eZYEuKA

  # Download and subtitle in one go
  videosubtitler fetch tAP1eZYEuKA --run`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

// downloadVideo is swapped out in tests
var downloadVideo = func(cmd *cobra.Command, install bool, youtubeURL, destDir string) (string, error) {
	return internal.NewYouTube(install, logger).Download(cmd.Context(), youtubeURL, destDir)
}

func runFetch(cmd *cobra.Command, args []string) error {
	arg := strings.TrimSpace(args[0])
	youtubeURL, id := internal.ParseArg(arg)
	if !strings.HasPrefix(arg, "https://") && !internal.IsValidYouTubeID(id) {
		return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID", arg)
	}

	// Validate run flags before downloading
	run, _ := cmd.Flags().GetBool("run")
	if run {
		if err := internal.ApplyTranscriptionFlags(cmd, config); err != nil {
			return err
		}
		if err := internal.ApplyRenderFlags(cmd, config); err != nil {
			return err
		}
	}

	noInstall, _ := cmd.Flags().GetBool("no-install")
	videoPath, err := downloadVideo(cmd, !noInstall, youtubeURL, config.InputDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s\n", videoPath)

	if !run {
		return nil
	}

	background, _ := cmd.Flags().GetString("background")
	app, err := internal.NewApp(config, logger)
	if err != nil {
		return err
	}
	output, err := app.Run(cmd.Context(), internal.Request{
		VideoPath:           videoPath,
		BackgroundAudioPath: background,
		OutputDir:           config.OutputDir,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved subtitled video to %s\n", output)
	return nil
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("run", false, "Subtitle the video right after downloading it")
	cmd.Flags().Bool("no-install", false, "Use the yt-dlp on PATH instead of installing one")
	internal.AddTranscriptionFlags(cmd)
	internal.AddRenderFlags(cmd)
}

func init() {
	addFetchFlags(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}
