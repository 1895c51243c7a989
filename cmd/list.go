package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// listCmd shows what the interactive menus would offer
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List input videos and background tracks with their menu indices",
	Example: `  # Show the menu choices
  videosubtitler list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		videos, err := internal.ListMedia(config.InputDir, internal.VideoExtensions)
		if err != nil {
			return err
		}
		tracks, err := internal.ListMedia(config.AudioDir, internal.AudioExtensions)
		if err != nil {
			return err
		}

		renderMediaTable(cmd, "Videos ("+config.InputDir+")", videos)
		renderMediaTable(cmd, "Background audio ("+config.AudioDir+")", tracks)
		return nil
	},
}

func renderMediaTable(cmd *cobra.Command, title string, names []string) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Index", "File"})
	for i, name := range names {
		t.AppendRow(table.Row{i, name})
	}
	if len(names) == 0 {
		t.AppendRow(table.Row{"-", "(none)"})
	}
	t.Render()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
