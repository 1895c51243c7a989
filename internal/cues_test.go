package internal

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCuesFormat(t *testing.T) {
	var buf bytes.Buffer
	cues := []Cue{
		{Start: 1, End: 1.5, Text: "hello"},
		{Start: 1.5, End: 2.25, Text: "two\nlines"},
	}
	if err := WriteCues(&buf, cues); err != nil {
		t.Fatalf("WriteCues: %v", err)
	}

	want := "1.000 --> 1.500\nhello\n\n1.500 --> 2.250\ntwo lines\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected cue file:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestCueFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.cues")
	cues := []Cue{
		{Start: 0, End: 0.3333, Text: "first"},
		{Start: 0.3333, End: 1.0, Text: "second cue"},
		{Start: 1.0, End: 1.0, Text: ""},
		{Start: 12.3456, End: 13.9999, Text: "ünïcödé"},
	}
	if err := SaveCueFile(path, cues); err != nil {
		t.Fatalf("SaveCueFile: %v", err)
	}

	got, err := LoadCueFile(path)
	if err != nil {
		t.Fatalf("LoadCueFile: %v", err)
	}
	if len(got) != len(cues) {
		t.Fatalf("expected %d cues, got %d: %#v", len(cues), len(got), got)
	}
	for i := range cues {
		if diff := got[i].Start - cues[i].Start; diff > 0.0005 || diff < -0.0005 {
			t.Errorf("cue %d start %.4f, want %.4f", i, got[i].Start, cues[i].Start)
		}
		if diff := got[i].End - cues[i].End; diff > 0.0005 || diff < -0.0005 {
			t.Errorf("cue %d end %.4f, want %.4f", i, got[i].End, cues[i].End)
		}
		if got[i].Text != cues[i].Text {
			t.Errorf("cue %d text %q, want %q", i, got[i].Text, cues[i].Text)
		}
	}
}

func TestReadCuesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "missing arrow", input: "1.000 1.500\nhi\n", want: "line 1"},
		{name: "bad start", input: "abc --> 1.500\nhi\n", want: "invalid start time"},
		{name: "bad end", input: "\n\n1.0 --> x\nhi\n", want: "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCues(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestReadCuesToleratesCRLF(t *testing.T) {
	cues, err := ReadCues(strings.NewReader("0.000 --> 0.500\r\nhey\r\n\r\n"))
	if err != nil {
		t.Fatalf("ReadCues: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "hey" || cues[0].End != 0.5 {
		t.Fatalf("unexpected cues: %#v", cues)
	}
}

func TestValidateCues(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 1, Text: "ok"},
		{Start: 2, End: 2, Text: "flat"},
		{Start: 3, End: 2.5, Text: "inverted"},
		{Start: 1, End: 1.5, Text: "early"},
	}

	issues := ValidateCues(cues)
	reasons := make([]string, 0, len(issues))
	for _, issue := range issues {
		reasons = append(reasons, issue.Reason)
	}

	want := []string{"zero_duration", "negative_duration", "out_of_order"}
	if strings.Join(reasons, ",") != strings.Join(want, ",") {
		t.Fatalf("reasons = %v, want %v", reasons, want)
	}
	if issues[0].Index != 1 || issues[2].Index != 3 {
		t.Fatalf("unexpected indices: %#v", issues)
	}
	if !strings.Contains(issues[1].String(), "cue 3") {
		t.Fatalf("issue string should be 1-based: %s", issues[1].String())
	}
}
