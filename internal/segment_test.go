package internal

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWordCuesUseModelTimings(t *testing.T) {
	transcript := &Transcript{Segments: []Segment{{
		Start: 0, End: 2, Text: " hello there",
		Words: []Word{
			{Start: 1.0, End: 1.5, Word: " hello"},
			{Start: 1.5, End: 1.5, Word: " "},
			{Start: 1.6, End: 1.9, Word: " there"},
		},
	}}}

	cues := WordCues(transcript)
	want := []Cue{
		{Start: 1.0, End: 1.5, Text: "hello"},
		{Start: 1.6, End: 1.9, Text: "there"},
	}
	if len(cues) != len(want) {
		t.Fatalf("got %d cues, want %d: %#v", len(cues), len(want), cues)
	}
	for i := range want {
		if cues[i] != want[i] {
			t.Errorf("cue %d = %#v, want %#v", i, cues[i], want[i])
		}
	}
}

func TestWrapCuesSplitSegmentEvenly(t *testing.T) {
	text := strings.Repeat("word ", 20) // 99 characters once trimmed
	transcript := &Transcript{Segments: []Segment{{Start: 2, End: 8, Text: text}}}

	cues := WrapCues(transcript, 4)
	if len(cues) != 3 {
		t.Fatalf("expected 3 wrapped lines, got %d: %#v", len(cues), cues)
	}

	total := 0.0
	for i, cue := range cues {
		if len(cue.Text) > 40 {
			t.Errorf("line %d longer than 40 characters: %q", i, cue.Text)
		}
		if math.Abs(cue.Duration()-2) > 1e-9 {
			t.Errorf("line %d duration %.6f, want 2", i, cue.Duration())
		}
		if i > 0 && cue.Start != cues[i-1].End {
			t.Errorf("line %d starts at %.6f, previous ended at %.6f", i, cue.Start, cues[i-1].End)
		}
		total += cue.Duration()
	}
	if cues[0].Start != 2 || cues[len(cues)-1].End != 8 {
		t.Fatalf("cues do not span the segment: %#v", cues)
	}
	if math.Abs(total-6) > 1e-9 {
		t.Fatalf("durations sum to %.6f, want 6", total)
	}
}

func TestWrapCuesSkipsEmptySegments(t *testing.T) {
	transcript := &Transcript{Segments: []Segment{
		{Start: 0, End: 1, Text: "   "},
		{Start: 1, End: 2, Text: "short line"},
	}}
	cues := WrapCues(transcript, 4)
	if len(cues) != 1 || cues[0].Text != "short line" || cues[0].Start != 1 || cues[0].End != 2 {
		t.Fatalf("unexpected cues: %#v", cues)
	}
}

func TestWrapText(t *testing.T) {
	long := "supercalifragilisticexpialidocious" + strings.Repeat("x", 22)
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "repeated letters",
			text:  strings.Repeat("a", 25),
			width: 10,
			want:  []string{"aaaaaaaaaa", "aaaaaaaaaa", "aaaaa"},
		},
		{
			name:  "hyphenated words break after the hyphen",
			text:  "a well-known state-of-the-art text-wrapping behaviour-check of hyphen-ated words",
			width: 40,
			want: []string{
				"a well-known state-of-the-art text-",
				"wrapping behaviour-check of hyphen-ated",
				"words",
			},
		},
		{
			name:  "overlong word keeps filling the line",
			text:  long + " short",
			width: 40,
			want:  []string{long[:40], long[40:] + " short"},
		},
		{
			name:  "width counts characters not bytes",
			text:  strings.Repeat("語", 45),
			width: 40,
			want:  []string{strings.Repeat("語", 40), strings.Repeat("語", 5)},
		},
		{
			name:  "double dash breaks like a space",
			text:  "wait--what happened-- really",
			width: 10,
			want:  []string{"wait--what", "happened--", "really"},
		},
		{
			name:  "numeric range stays whole",
			text:  "pages 10-20 only",
			width: 8,
			want:  []string{"pages", "10-20", "only"},
		},
		{
			name:  "whitespace collapses",
			text:  "  one \t two\nthree  ",
			width: 40,
			want:  []string{"one two three"},
		},
		{
			name:  "no width",
			text:  "keep it all",
			width: 0,
			want:  []string{"keep it all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("wrapText() = %q, want %q", got, tt.want)
			}
			for _, line := range got {
				if tt.width > 0 && utf8.RuneCountInString(line) > tt.width {
					t.Fatalf("line %q exceeds %d characters", line, tt.width)
				}
			}
		})
	}
}

func TestWrapCuesSliceCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "hyphenated", text: "a well-known state-of-the-art text-wrapping behaviour-check of hyphen-ated words", want: 3},
		{name: "overlong word", text: "supercalifragilisticexpialidocious" + strings.Repeat("x", 22) + " short", want: 2},
		{name: "cjk", text: strings.Repeat("語", 45), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcript := &Transcript{Segments: []Segment{{Start: 2, End: 8, Text: tt.text}}}
			cues := WrapCues(transcript, DefaultWordsPerSegment)
			if len(cues) != tt.want {
				t.Fatalf("expected %d cues, got %d: %#v", tt.want, len(cues), cues)
			}
			slice := 6.0 / float64(tt.want)
			for i, cue := range cues {
				if math.Abs(cue.Duration()-slice) > 1e-9 {
					t.Fatalf("cue %d lasts %.6f, want %.6f", i, cue.Duration(), slice)
				}
			}
			if cues[0].Start != 2 || cues[len(cues)-1].End != 8 {
				t.Fatalf("cues do not span the segment: %#v", cues)
			}
		})
	}
}

func TestBuildCuesFallsBackToWrap(t *testing.T) {
	transcript := &Transcript{Segments: []Segment{{Start: 0, End: 1, Text: "no word timings"}}}

	cues, used := BuildCues(transcript, SegmentWords, DefaultWordsPerSegment)
	if used != SegmentWrap {
		t.Fatalf("expected wrap fallback, got %s", used)
	}
	if len(cues) != 1 || cues[0].Text != "no word timings" {
		t.Fatalf("unexpected cues: %#v", cues)
	}
}

func TestBuildCuesNilTranscript(t *testing.T) {
	cues, used := BuildCues(nil, SegmentWords, 4)
	if cues != nil || used != SegmentWords {
		t.Fatalf("unexpected result: %#v %s", cues, used)
	}
}

func TestParseSegmentation(t *testing.T) {
	tests := []struct {
		input   string
		want    Segmentation
		wantErr bool
	}{
		{input: "", want: SegmentWords},
		{input: "word", want: SegmentWords},
		{input: "Words", want: SegmentWords},
		{input: " wrap ", want: SegmentWrap},
		{input: "sentence", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSegmentation(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseSegmentation(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSegmentation(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
