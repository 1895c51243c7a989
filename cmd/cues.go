package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

// cuesCmd checks a cue file and shows it as a table
var cuesCmd = &cobra.Command{
	Use:   "cues [cue file]",
	Short: "Validate and display a cue file",
	Example: `  # Review cues before rendering
  videosubtitler cues clip.cues

  # Fail when any cue has a zero or negative duration
  videosubtitler cues clip.cues --strict`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cues, err := internal.LoadCueFile(args[0])
		if err != nil {
			return err
		}
		issues := internal.ValidateCues(cues)

		plain, _ := cmd.Flags().GetBool("plain")
		content := cueMarkdown(args[0], cues, issues)
		if !plain {
			rendered, err := internal.RenderMarkdown(content)
			if err != nil {
				return err
			}
			content = rendered
		}
		fmt.Fprint(cmd.OutOrStdout(), content)

		strict, _ := cmd.Flags().GetBool("strict")
		if strict && len(issues) > 0 {
			return fmt.Errorf("%d problem cue(s) in %s", len(issues), args[0])
		}
		return nil
	},
}

func cueMarkdown(name string, cues []internal.Cue, issues []internal.CueIssue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "%d cues", len(cues))
	if len(cues) > 0 {
		fmt.Fprintf(&sb, ", %.3fs to %.3fs", cues[0].Start, cues[len(cues)-1].End)
	}
	sb.WriteString("\n\n")

	if len(cues) > 0 {
		sb.WriteString("| # | Start | End | Duration | Text |\n")
		sb.WriteString("|---:|---:|---:|---:|---|\n")
		for i, cue := range cues {
			text := strings.ReplaceAll(cue.Text, "|", `\|`)
			fmt.Fprintf(&sb, "| %d | %.3f | %.3f | %.3f | %s |\n", i+1, cue.Start, cue.End, cue.Duration(), text)
		}
		sb.WriteString("\n")
	}

	if len(issues) > 0 {
		sb.WriteString("## Problems\n\n")
		for _, issue := range issues {
			fmt.Fprintf(&sb, "- %s\n", issue.String())
		}
	}
	return sb.String()
}

func init() {
	cuesCmd.Flags().Bool("plain", false, "Print markdown without terminal styling")
	cuesCmd.Flags().Bool("strict", false, "Exit with an error when problem cues are found")
	rootCmd.AddCommand(cuesCmd)
}
