package transcript

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/northkevin/podcasts-cli/internal/fileutil"
)

// CodeBlockTag labels the fenced block that holds the transcript body.
const CodeBlockTag = "timestamp-transcript"

// Stats summarizes a rendered transcript.
type Stats struct {
	Words int `json:"words"`
	Chars int `json:"chars"`
}

// FormatTimestamp renders d as HH:MM:SS.mmm.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	h := ms / 3_600_000
	m := (ms / 60_000) % 60
	s := (ms / 1000) % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}

// Format renders cues as transcript Markdown.
func Format(cues []Cue) string {
	var b strings.Builder
	b.WriteString("# Transcript\n\n```")
	b.WriteString(CodeBlockTag)
	b.WriteByte('\n')
	for _, cue := range cues {
		fmt.Fprintf(&b, "\n[%s --> %s]\n%s\n", FormatTimestamp(cue.Start), FormatTimestamp(cue.End), cue.Text)
	}
	b.WriteString("\n```")
	return b.String()
}

// Measure counts whitespace separated words and characters in text.
func Measure(text string) Stats {
	return Stats{
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
	}
}

// Render parses a WebVTT document and formats it, returning the Markdown
// and its statistics.
func Render(vtt []byte) (string, Stats, error) {
	cues, err := ParseWebVTT(vtt)
	if err != nil {
		return "", Stats{}, err
	}
	text := Format(cues)
	return text, Measure(text), nil
}

// WriteFile writes rendered transcript Markdown to path atomically.
func WriteFile(path, markdown string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// ReadStats measures an existing transcript file.
func ReadStats(path string) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("read transcript: %w", err)
	}
	return Measure(string(data)), nil
}
