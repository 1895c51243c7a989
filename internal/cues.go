package internal

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Cue is a single timed caption entry
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// Duration returns the cue length in seconds (may be zero or negative for bad model output)
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// CueIssue describes a cue that breaks the start < end expectation
type CueIssue struct {
	Index  int
	Cue    Cue
	Reason string
}

func (i CueIssue) String() string {
	return fmt.Sprintf("cue %d (%.3f --> %.3f %q): %s", i.Index+1, i.Cue.Start, i.Cue.End, i.Cue.Text, i.Reason)
}

// ValidateCues reports cues that would render as zero-length or inverted overlays.
// Cues are reported, not removed.
func ValidateCues(cues []Cue) []CueIssue {
	var issues []CueIssue
	for i, cue := range cues {
		switch {
		case cue.End < cue.Start:
			issues = append(issues, CueIssue{Index: i, Cue: cue, Reason: "negative_duration"})
		case cue.End == cue.Start:
			issues = append(issues, CueIssue{Index: i, Cue: cue, Reason: "zero_duration"})
		}
		if i > 0 && cue.Start < cues[i-1].Start {
			issues = append(issues, CueIssue{Index: i, Cue: cue, Reason: "out_of_order"})
		}
	}
	return issues
}

// flattenCueText keeps the one-line-per-cue layout of the cue file
func flattenCueText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.TrimSpace(text)
}

// WriteCues serializes cues as "start --> end", text, blank line groups
func WriteCues(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	for _, cue := range cues {
		if _, err := fmt.Fprintf(bw, "%.3f --> %.3f\n%s\n\n", cue.Start, cue.End, flattenCueText(cue.Text)); err != nil {
			return fmt.Errorf("writing cue: %w", err)
		}
	}
	return bw.Flush()
}

// ReadCues parses a cue file back into cues
func ReadCues(r io.Reader) ([]Cue, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cue file: %w", err)
	}

	var cues []Cue
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		start, end, err := parseCueTiming(lines[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		text := ""
		if i+1 < len(lines) {
			text = strings.TrimSpace(lines[i+1])
		}
		cues = append(cues, Cue{Start: start, End: end, Text: text})
		i += 2
	}

	return cues, nil
}

// parseCueTiming parses a "1.000 --> 1.500" line
func parseCueTiming(line string) (float64, float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 || fields[1] != "-->" {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start time %q: %w", fields[0], err)
	}
	end, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end time %q: %w", fields[2], err)
	}
	return start, end, nil
}

// SaveCueFile writes cues to path
func SaveCueFile(path string, cues []Cue) error {
	var buf bytes.Buffer
	if err := WriteCues(&buf, cues); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("saving cue file: %w", err)
	}
	return nil
}

// LoadCueFile reads cues from path
func LoadCueFile(path string) ([]Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cue file: %w", err)
	}
	defer file.Close()

	cues, err := ReadCues(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cues, nil
}
