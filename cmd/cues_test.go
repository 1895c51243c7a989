package cmd

import (
	"strings"
	"testing"

	"github.com/Ahmemez28/VideoSubtitler/internal"
)

func TestCueMarkdown(t *testing.T) {
	cues := []internal.Cue{
		{Start: 1, End: 1.5, Text: "hello"},
		{Start: 2, End: 2, Text: "a|b"},
	}
	md := cueMarkdown("clip.cues", cues, internal.ValidateCues(cues))

	for _, want := range []string{
		"# clip.cues",
		"2 cues, 1.000s to 2.000s",
		"| 1 | 1.000 | 1.500 | 0.500 | hello |",
		`| 2 | 2.000 | 2.000 | 0.000 | a\|b |`,
		"## Problems",
		"zero_duration",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestCueMarkdownEmpty(t *testing.T) {
	md := cueMarkdown("empty.cues", nil, nil)
	if strings.Contains(md, "| # |") || strings.Contains(md, "Problems") {
		t.Fatalf("empty cue file should have no table: %s", md)
	}
}
