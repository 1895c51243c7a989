package internal

import (
	"fmt"
	"strings"
	"unicode"
)

// Segmentation is the policy used to turn a transcript into cues
type Segmentation string

const (
	// SegmentWords emits one cue per model-reported word
	SegmentWords Segmentation = "word"
	// SegmentWrap wraps each segment into fixed-width lines sharing the segment's span
	SegmentWrap Segmentation = "wrap"
)

// DefaultWordsPerSegment sets the wrap width to 40 characters
const DefaultWordsPerSegment = 4

// ParseSegmentation validates a config or flag value
func ParseSegmentation(value string) (Segmentation, error) {
	switch Segmentation(strings.ToLower(strings.TrimSpace(value))) {
	case SegmentWords, "words", "":
		return SegmentWords, nil
	case SegmentWrap:
		return SegmentWrap, nil
	default:
		return "", fmt.Errorf("unsupported segmentation: %s (supported: word, wrap)", value)
	}
}

// BuildCues converts a transcript into cues with the requested policy.
// Word segmentation falls back to wrapping when the model returned no word
// timings; the effective policy is returned alongside the cues.
func BuildCues(t *Transcript, mode Segmentation, wordsPerSegment int) ([]Cue, Segmentation) {
	if t == nil {
		return nil, mode
	}
	if mode == SegmentWords && !t.HasWords() {
		mode = SegmentWrap
	}
	if mode == SegmentWrap {
		return WrapCues(t, wordsPerSegment), mode
	}
	return WordCues(t), mode
}

// WordCues emits one cue per word with exact model timing
func WordCues(t *Transcript) []Cue {
	var cues []Cue
	for _, seg := range t.Segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			cues = append(cues, Cue{Start: w.Start, End: w.End, Text: text})
		}
	}
	return cues
}

// WrapCues wraps each segment to wordsPerSegment*10 characters and splits the
// segment duration evenly across the wrapped lines
func WrapCues(t *Transcript, wordsPerSegment int) []Cue {
	if wordsPerSegment <= 0 {
		wordsPerSegment = DefaultWordsPerSegment
	}
	width := wordsPerSegment * 10

	var cues []Cue
	for _, seg := range t.Segments {
		lines := wrapText(seg.Text, width)
		if len(lines) == 0 {
			continue
		}
		bounds := splitSpan(seg.Start, seg.End, len(lines))
		for i, line := range lines {
			cues = append(cues, Cue{Start: bounds[i], End: bounds[i+1], Text: line})
		}
	}
	return cues
}

// splitSpan returns k+1 boundaries dividing [start, end] into k equal slices.
// Adjacent slices share a boundary value and the last one is end itself.
func splitSpan(start, end float64, k int) []float64 {
	bounds := make([]float64, k+1)
	step := (end - start) / float64(k)
	for i := range k {
		bounds[i] = start + float64(i)*step
	}
	bounds[k] = end
	return bounds
}

// wrapText greedily packs text into lines of at most width characters.
// Lines break at spaces and after the hyphen of a compound word. Only words
// longer than width are cut, and the line keeps filling after the cut piece.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	chunks := wrapChunks(words)
	var lines []string
	for len(chunks) > 0 {
		if isSpaceChunk(chunks[0]) {
			chunks = chunks[1:]
			continue
		}

		var line []rune
		for len(chunks) > 0 && len(line)+len(chunks[0]) <= width {
			line = append(line, chunks[0]...)
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && len(chunks[0]) > width {
			chunk := chunks[0]
			end := width - len(line)
			// prefer cutting right after a hyphen inside the piece that fits
			if h := lastIndexRune(chunk[:end], '-'); h > 0 && !allHyphens(chunk[:h]) {
				end = h + 1
			}
			line = append(line, chunk[:end]...)
			chunks[0] = chunk[end:]
		}

		if n := len(line); n > 0 && line[n-1] == ' ' {
			line = line[:n-1]
		}
		if len(line) > 0 {
			lines = append(lines, string(line))
		}
	}
	return lines
}

// wrapChunks splits words into breakable pieces separated by single spaces
func wrapChunks(words []string) [][]rune {
	var chunks [][]rune
	for i, word := range words {
		if i > 0 {
			chunks = append(chunks, []rune{' '})
		}
		chunks = append(chunks, splitWord([]rune(word))...)
	}
	return chunks
}

// splitWord cuts a word at its break opportunities: after a hyphen joining
// two words ("state-", "of-", "the-", "art") and around dash runs used as
// em-dashes ("wait", "--", "what"). Leading dashes and numeric ranges stay
// whole.
func splitWord(word []rune) [][]rune {
	var parts [][]rune
	pos := 0
	for pos < len(word) {
		if pos > 0 && isWordPunct(word[pos-1]) {
			if end := dashRunEnd(word, pos); end > 0 {
				parts = append(parts, word[pos:end])
				pos = end
				continue
			}
		}
		end := pos + 1
		for ; end < len(word); end++ {
			if hyphenBreak(word, end) {
				end++
				break
			}
			if isWordPunct(word[end-1]) && dashRunEnd(word, end) > 0 {
				break
			}
		}
		parts = append(parts, word[pos:end])
		pos = end
	}
	return parts
}

// dashRunEnd returns the end of a run of two or more dashes starting at i
// that is followed by a word character, or -1
func dashRunEnd(word []rune, i int) int {
	j := i
	for j < len(word) && word[j] == '-' {
		j++
	}
	if j-i >= 2 && j < len(word) && isWordChar(word[j]) {
		return j
	}
	return -1
}

// hyphenBreak reports whether word may break right after the hyphen at i
func hyphenBreak(word []rune, i int) bool {
	if word[i] != '-' {
		return false
	}
	before := (i >= 2 && isLetter(word[i-1]) && isLetter(word[i-2])) ||
		(i >= 3 && isLetter(word[i-1]) && word[i-2] == '-' && isLetter(word[i-3]))
	if !before {
		return false
	}
	n := i + 1
	if n >= len(word) || !isLetter(word[n]) {
		return false
	}
	return (n+1 < len(word) && isLetter(word[n+1])) ||
		(n+2 < len(word) && word[n+1] == '-' && isLetter(word[n+2]))
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

func isLetter(r rune) bool {
	return isWordChar(r) && !unicode.IsDigit(r)
}

func isWordPunct(r rune) bool {
	return isWordChar(r) || strings.ContainsRune(`!"'&.,?`, r)
}

func isSpaceChunk(chunk []rune) bool {
	return len(chunk) == 1 && chunk[0] == ' '
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func allHyphens(runes []rune) bool {
	for _, r := range runes {
		if r != '-' {
			return false
		}
	}
	return true
}
