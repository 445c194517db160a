package vimeo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/northkevin/podcasts-cli/internal/catalog"
)

const pageHTML = `<!doctype html><html><head>
<meta property="og:description" content="Fallback description">
<script type="application/ld+json">[{"@type":"BreadcrumbList"},{"@type":"VideoObject","name":"LD title",
"description":"Jane Doe (Example University) on circadian health.","uploadDate":"2024-01-01T08:00:00-05:00",
"author":{"name":"Owner Name"}}]</script>
</head><body>
<script>var other = {"a": 1};</script>
<script>
  window.playerConfig = {"video":{"id":76979871,"title":"The Show - Jane Doe - Light {and} Sleep","duration":3725.4,
  "owner":{"name":"Show Owner"}},"request":{"text_tracks":[
  {"id":1,"lang":"de","url":"/texttrack/1.vtt?token=a","kind":"subtitles","label":"Deutsch"},
  {"id":2,"lang":"en-x-autogen","url":"/texttrack/2.vtt?token=b","kind":"captions","label":"English (auto)"}]}};
  var after = "}";
</script></body></html>`

func TestVideoID(t *testing.T) {
	tests := map[string]string{
		"https://vimeo.com/76979871":                     "76979871",
		"https://vimeo.com/channels/staffpicks/76979871": "76979871",
		"https://player.vimeo.com/video/76979871?h=abc":  "76979871",
	}
	for in, want := range tests {
		if got, err := VideoID(in); err != nil || got != want {
			t.Errorf("VideoID(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := VideoID("https://youtube.com/watch?v=x"); !errors.Is(err, ErrNoVideoID) {
		t.Fatalf("expected ErrNoVideoID, got %v", err)
	}
}

func TestExtractPlayerConfig(t *testing.T) {
	script := `window.playerConfig = {"a":"brace } in string","b":{"c":"quote \" and {"}}; var x = {};`
	got, ok := ExtractPlayerConfig(script)
	if !ok {
		t.Fatal("expected config")
	}
	want := `{"a":"brace } in string","b":{"c":"quote \" and {"}}`
	if got != want {
		t.Fatalf("ExtractPlayerConfig = %q, want %q", got, want)
	}

	for _, bad := range []string{"", "window.playerConfig;", `window.playerConfig = {"open": 1`, "window.playerConfigX = {}"} {
		if _, ok := ExtractPlayerConfig(bad); ok {
			t.Errorf("ExtractPlayerConfig(%q) should fail", bad)
		}
	}
}

func TestMetadata(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/76979871" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(pageHTML))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, UserAgent: "podcasts-test", HTTPClient: srv.Client()}, nil)
	meta, err := client.Metadata(context.Background(), "https://vimeo.com/76979871?share=copy")
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if gotAgent != "podcasts-test" {
		t.Fatalf("user agent = %q", gotAgent)
	}
	if meta.Title != "The Show - Jane Doe - Light {and} Sleep" {
		t.Fatalf("title = %q", meta.Title)
	}
	if meta.PodcastName != "The Show" || meta.Interviewee.Name != "Jane Doe" {
		t.Fatalf("heuristics: %+v", meta)
	}
	if meta.Interviewee.Organization != "Example University" {
		t.Fatalf("organization = %q", meta.Interviewee.Organization)
	}
	if meta.DurationSeconds != 3725 {
		t.Fatalf("duration = %d", meta.DurationSeconds)
	}
	if !meta.PublishedAt.Equal(time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("published = %v", meta.PublishedAt)
	}
	if meta.URL != "https://vimeo.com/76979871" {
		t.Fatalf("url = %q", meta.URL)
	}
	if meta.WebVTTURL != "https://player.vimeo.com/texttrack/2.vtt?token=b" {
		t.Fatalf("webvtt = %q", meta.WebVTTURL)
	}
}

func TestMetadataWithoutPlayerConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>Please enable JavaScript</body></html>"))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()}, nil)
	if _, err := client.Metadata(context.Background(), "https://vimeo.com/1"); !errors.Is(err, ErrNoPlayerConfig) {
		t.Fatalf("expected ErrNoPlayerConfig, got %v", err)
	}
}

func TestMetadataFallsBackToNow(t *testing.T) {
	html := `<script>window.playerConfig = {"video":{"title":"Solo talk","duration":60},"request":{"text_tracks":[]}}</script>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(html))
	}))
	defer srv.Close()

	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	client := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client(), Now: func() time.Time { return fixed }}, nil)
	meta, err := client.Metadata(context.Background(), "https://vimeo.com/42")
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if !meta.PublishedAt.Equal(fixed) {
		t.Fatalf("published = %v", meta.PublishedAt)
	}
	if meta.WebVTTURL != "" {
		t.Fatalf("expected no text track, got %q", meta.WebVTTURL)
	}
	if meta.Interviewee.Name != "Solo talk" {
		t.Fatalf("interviewee = %q", meta.Interviewee.Name)
	}
}

func TestTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("WEBVTT\n\n00:00.000 --> 00:01.000\nhi\n"))
	}))
	defer srv.Close()

	client := New(Options{HTTPClient: srv.Client()}, nil)
	body, err := client.Transcript(context.Background(), catalog.Entry{EpisodeID: "x", WebVTTURL: srv.URL + "/t.vtt"})
	if err != nil || !strings.HasPrefix(string(body), "WEBVTT") {
		t.Fatalf("Transcript = %q, %v", body, err)
	}

	if _, err := client.Transcript(context.Background(), catalog.Entry{EpisodeID: "x"}); !errors.Is(err, ErrNoTextTrack) {
		t.Fatalf("expected ErrNoTextTrack, got %v", err)
	}
}
