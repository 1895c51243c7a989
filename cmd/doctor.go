package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// doctorCmd reports which external tools are available
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that ffmpeg, ffprobe and whisper can be found",
	Example: `  # Check the toolchain for the configured backend
  videosubtitler doctor

  # Check with the hosted backend in mind
  videosubtitler doctor --backend openai`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("backend") {
			config.Backend, _ = cmd.Flags().GetString("backend")
		}
		if _, err := internal.ParseBackend(config.Backend); err != nil {
			return err
		}

		statuses := internal.CheckBinaries(internal.Requirements(config))

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Tool", "Status", "Path", "Used for"})

		missing := 0
		for _, status := range statuses {
			state := "ok"
			path := status.Path
			if !status.Available {
				path = status.Detail
				if status.Optional {
					state = "optional"
				} else {
					state = "missing"
					missing++
				}
			}
			t.AppendRow(table.Row{status.Name, state, path, status.Description})
		}
		t.Render()

		if err := internal.ValidateOpenAIRequirements(config); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%v\n", err)
			missing++
		}

		if missing > 0 {
			return fmt.Errorf("%d requirement(s) missing", missing)
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().String("backend", "", "Speech-to-text backend to check: local or openai")
	rootCmd.AddCommand(doctorCmd)
}
