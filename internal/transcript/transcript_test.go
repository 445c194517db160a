package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleVTT = "\ufeffWEBVTT\r\nKind: captions\r\nLanguage: en\r\n\r\n" +
	"NOTE generated by a test\r\n\r\n" +
	"STYLE\r\n::cue { color: white }\r\n\r\n" +
	"1\r\n00:00:01.000 --> 00:00:04.250 align:start position:0%\r\n<v Host>Welcome <c>back</c> to the show\r\n\r\n" +
	"2\r\n00:00:04.250 --> 00:00:06.000\r\nWelcome back to the show\r\ntoday&#39;s guest &amp; friend\r\n\r\n" +
	"01:02.500 --> 01:05.000\r\n\r\n\r\n" +
	"3\r\n01:00:00.000 --> 01:00:02.5\r\nThanks!\r\n"

func TestParseWebVTT(t *testing.T) {
	cues, err := ParseWebVTT([]byte(sampleVTT))
	if err != nil {
		t.Fatalf("ParseWebVTT: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d: %+v", len(cues), cues)
	}
	if cues[0].Start != time.Second || cues[0].End != 4250*time.Millisecond {
		t.Fatalf("unexpected timing: %+v", cues[0])
	}
	if cues[0].Text != "Welcome back to the show" {
		t.Fatalf("tags not stripped: %q", cues[0].Text)
	}
	if cues[1].Text != "today's guest & friend" {
		t.Fatalf("repeated line not dropped or entities kept: %q", cues[1].Text)
	}
	if cues[2].Start != time.Hour || cues[2].End != time.Hour+2500*time.Millisecond {
		t.Fatalf("unexpected hour timing: %+v", cues[2])
	}
}

func TestParseWebVTTKeepsRepeatedSpokenLines(t *testing.T) {
	doc := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:02.000\nYeah.\n\n" +
		"00:00:02.000 --> 00:00:03.000\nYeah.\n\n" +
		"00:00:03.000 --> 00:00:03.010\nYeah.\n\n" +
		"00:00:03.010 --> 00:00:05.000\nYeah.\nso where were we\n"
	cues, err := ParseWebVTT([]byte(doc))
	if err != nil {
		t.Fatalf("ParseWebVTT: %v", err)
	}
	var got []string
	for _, c := range cues {
		got = append(got, c.Text)
	}
	want := []string{"Yeah.", "Yeah.", "so where were we"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("cue texts = %q, want %q", got, want)
	}
}

func TestParseWebVTTNoCues(t *testing.T) {
	for _, doc := range []string{"", "WEBVTT\n\nNOTE nothing here\n"} {
		if _, err := ParseWebVTT([]byte(doc)); !errors.Is(err, ErrNoCues) {
			t.Errorf("ParseWebVTT(%q) err = %v, want ErrNoCues", doc, err)
		}
	}
}

func TestParseWebVTTInvalidTiming(t *testing.T) {
	if _, err := ParseWebVTT([]byte("WEBVTT\n\n00:00:xx.000 --> 00:00:01.000\nhi\n")); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"00:00:01.000", time.Second},
		{"01:02.5", time.Minute + 2500*time.Millisecond},
		{"10:00:00,123", 10*time.Hour + 123*time.Millisecond},
		{"00:00:05", 5 * time.Second},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseTimestamp(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "1", "00:61:00.000", "a:b:c"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", bad)
		}
	}
}

func TestFormat(t *testing.T) {
	got := Format([]Cue{
		{Start: time.Second, End: 4250 * time.Millisecond, Text: "Hello there"},
		{Start: 3723004 * time.Millisecond, End: 3724000 * time.Millisecond, Text: "Bye"},
	})
	want := "# Transcript\n\n```timestamp-transcript\n" +
		"\n[00:00:01.000 --> 00:00:04.250]\nHello there\n" +
		"\n[01:02:03.004 --> 01:02:04.000]\nBye\n" +
		"\n```"
	if got != want {
		t.Fatalf("Format mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestRenderAndWriteFile(t *testing.T) {
	text, stats, err := Render([]byte(sampleVTT))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(text, "# Transcript") || !strings.Contains(text, "```"+CodeBlockTag) {
		t.Fatalf("unexpected render: %q", text)
	}
	if stats.Words == 0 || stats.Chars != len([]rune(text)) {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	path := filepath.Join(t.TempDir(), "nested", "ep_transcript.md")
	if err := WriteFile(path, text); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != text {
		t.Fatal("written transcript differs from render")
	}
	read, err := ReadStats(path)
	if err != nil || read != stats {
		t.Fatalf("ReadStats = %+v, %v; want %+v", read, err, stats)
	}
}

func TestMeasure(t *testing.T) {
	if got := Measure("one two  three\nfour"); got.Words != 4 || got.Chars != 19 {
		t.Fatalf("Measure = %+v", got)
	}
}
