// Package transcript parses WebVTT captions and renders them as the Markdown
// transcript files stored next to episode notes.
//
// Rendered transcripts use a fenced block tagged timestamp-transcript with one
// "[HH:MM:SS.mmm --> HH:MM:SS.mmm]" header per cue.
package transcript
