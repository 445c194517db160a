package vimeo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoPlayerConfig is returned when the page embeds no player configuration.
var ErrNoPlayerConfig = errors.New("no window.playerConfig found in page")

const playerConfigMarker = "window.playerConfig"

// playerConfig is the subset of Vimeo's player configuration used here.
type playerConfig struct {
	Video struct {
		ID       json.Number `json:"id"`
		Title    string      `json:"title"`
		Duration float64     `json:"duration"`
		URL      string      `json:"url"`
		Owner    struct {
			Name string `json:"name"`
		} `json:"owner"`
	} `json:"video"`
	Request struct {
		TextTracks []textTrack `json:"text_tracks"`
	} `json:"request"`
}

type textTrack struct {
	ID    json.Number `json:"id"`
	Lang  string      `json:"lang"`
	URL   string      `json:"url"`
	Kind  string      `json:"kind"`
	Label string      `json:"label"`
}

// videoObject is the schema.org VideoObject published as ld+json.
type videoObject struct {
	Type        any    `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UploadDate  string `json:"uploadDate"`
	Author      struct {
		Name string `json:"name"`
	} `json:"author"`
}

func (v videoObject) isVideo() bool {
	switch t := v.Type.(type) {
	case string:
		return t == "VideoObject"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "VideoObject" {
				return true
			}
		}
	}
	return false
}

type page struct {
	player        playerConfig
	video         *videoObject
	ogDescription string
}

func parsePage(html string) (page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return page{}, fmt.Errorf("parse vimeo page: %w", err)
	}

	var out page
	var raw string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if !strings.Contains(text, playerConfigMarker) {
			return true
		}
		if obj, ok := ExtractPlayerConfig(text); ok {
			raw = obj
			return false
		}
		return true
	})
	if raw == "" {
		return page{}, ErrNoPlayerConfig
	}
	if err := json.Unmarshal([]byte(raw), &out.player); err != nil {
		return page{}, fmt.Errorf("decode playerConfig: %w", err)
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if obj, ok := findVideoObject([]byte(sel.Text())); ok {
			out.video = &obj
			return false
		}
		return true
	})

	if desc, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		out.ogDescription = strings.TrimSpace(desc)
	}
	return out, nil
}

// findVideoObject accepts a single object or an array of objects.
func findVideoObject(data []byte) (videoObject, bool) {
	var list []videoObject
	if err := json.Unmarshal(data, &list); err != nil {
		var single videoObject
		if err := json.Unmarshal(data, &single); err != nil {
			return videoObject{}, false
		}
		list = []videoObject{single}
	}
	for _, obj := range list {
		if obj.isVideo() {
			return obj, true
		}
	}
	return videoObject{}, false
}

// ExtractPlayerConfig returns the JSON object assigned to window.playerConfig
// in script. Braces inside string literals are ignored.
func ExtractPlayerConfig(script string) (string, bool) {
	idx := strings.Index(script, playerConfigMarker)
	if idx < 0 {
		return "", false
	}
	rest := script[idx+len(playerConfigMarker):]
	eq := strings.IndexByte(rest, '=')
	if eq < 0 || strings.TrimSpace(rest[:eq]) != "" {
		return "", false
	}
	rest = rest[eq+1:]
	start := strings.IndexByte(rest, '{')
	if start < 0 || strings.TrimSpace(rest[:start]) != "" {
		return "", false
	}
	rest = rest[start:]

	depth := 0
	inString := false
	var quote byte
	escaped := false
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == quote:
				inString = false
			}
			continue
		}
		switch ch {
		case '"', '\'':
			inString = true
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return rest[:i+1], true
			}
		}
	}
	return "", false
}
