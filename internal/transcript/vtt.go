package transcript

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNoCues is returned when a caption document holds no usable cues.
var ErrNoCues = errors.New("transcript has no cues")

// Cue is one timed caption.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	entityReplace = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&nbsp;", " ", "&#39;", "'", "&quot;", `"`)
)

// rollingTransition bounds the near-zero cues auto-captions insert to hold the
// previous line on screen.
const rollingTransition = 50 * time.Millisecond

// ParseWebVTT extracts cues from a WebVTT document. Header, NOTE, STYLE and
// REGION blocks and cue identifiers are skipped. Inline tags are stripped.
//
// Rolling auto-captions repeat the previous cue's last line at the top of the
// next cue. That carried line is dropped when more text follows it, or when
// the cue is a transition shorter than rollingTransition. A single-line cue
// that repeats its predecessor at normal length is kept as spoken text.
func ParseWebVTT(data []byte) ([]Cue, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	var cues []Cue
	var prevLast string
	for _, block := range splitBlocks(content) {
		lines := strings.Split(block, "\n")
		timing := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 {
			// WEBVTT header, NOTE, STYLE, REGION, or stray text.
			continue
		}

		start, end, err := parseTiming(lines[timing])
		if err != nil {
			return nil, err
		}

		var text []string
		for _, raw := range lines[timing+1:] {
			if line := cleanLine(raw); line != "" {
				text = append(text, line)
			}
		}
		if len(text) == 0 {
			continue
		}
		last := text[len(text)-1]
		if text[0] == prevLast && (len(text) > 1 || end-start < rollingTransition) {
			text = text[1:]
		}
		prevLast = last
		if len(text) == 0 {
			continue
		}
		cues = append(cues, Cue{Start: start, End: end, Text: strings.Join(text, " ")})
	}

	if len(cues) == 0 {
		return nil, ErrNoCues
	}
	return cues, nil
}

func splitBlocks(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n\n")
}

func cleanLine(raw string) string {
	line := tagPattern.ReplaceAllString(raw, "")
	line = entityReplace.Replace(line)
	return strings.Join(strings.Fields(line), " ")
}

func parseTiming(line string) (time.Duration, time.Duration, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid cue timing %q", line)
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	// Cue settings such as "align:start position:0%" follow the end time.
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return 0, 0, fmt.Errorf("invalid cue timing %q", line)
	}
	end, err := ParseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseTimestamp reads a WebVTT timestamp, "HH:MM:SS.mmm" or "MM:SS.mmm".
// A comma is accepted as the millisecond separator.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if value == "" {
		return 0, errors.New("empty timestamp")
	}
	clock, fraction, _ := strings.Cut(value, ".")
	parts := strings.Split(clock, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		fields[i] = n
	}
	if fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	millis := 0
	if fraction != "" {
		if len(fraction) > 3 {
			fraction = fraction[:3]
		}
		for len(fraction) < 3 {
			fraction += "0"
		}
		n, err := strconv.Atoi(fraction)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		millis = n
	}

	return time.Duration(fields[0])*time.Hour +
		time.Duration(fields[1])*time.Minute +
		time.Duration(fields[2])*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
