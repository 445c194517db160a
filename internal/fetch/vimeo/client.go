package vimeo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/fetch"
	"github.com/northkevin/podcasts-cli/internal/language"
	"github.com/northkevin/podcasts-cli/internal/logging"
)

var (
	// ErrNoVideoID means the URL does not name a Vimeo video.
	ErrNoVideoID = errors.New("could not extract vimeo video id from url")
	// ErrNoTextTrack means the player config lists no usable text track.
	ErrNoTextTrack = errors.New("no text track available")
)

var videoIDPattern = regexp.MustCompile(`vimeo\.com/(?:[^?#]*/)?(\d+)`)

// playerHost resolves relative text track URLs.
const playerHost = "https://player.vimeo.com"

// VideoID extracts the numeric video identifier from a Vimeo URL.
func VideoID(rawURL string) (string, error) {
	if m := videoIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoVideoID, rawURL)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	UserAgent string
	// Language picks the preferred text track; defaults to en.
	Language   string
	HTTPClient *http.Client
	// Now stamps episodes whose page carries no upload date; defaults to time.Now.
	Now func() time.Time
}

// Client scrapes Vimeo pages.
type Client struct {
	baseURL   string
	userAgent string
	language  string
	http      *http.Client
	now       func() time.Time
	logger    *slog.Logger
}

// New builds a client.
func New(opts Options, logger *slog.Logger) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		language:  strings.ToLower(strings.TrimSpace(opts.Language)),
		http:      opts.HTTPClient,
		now:       opts.Now,
		logger:    logging.NewComponentLogger(logger, "vimeo"),
	}
	if c.baseURL == "" {
		c.baseURL = "https://vimeo.com"
	}
	if c.language == "" {
		c.language = "en"
	}
	if c.http == nil {
		c.http = fetch.NewHTTPClient(0)
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

func (c *Client) header() http.Header {
	h := http.Header{}
	if c.userAgent != "" {
		h.Set("User-Agent", c.userAgent)
	}
	h.Set("Accept-Language", c.language)
	return h
}

// Metadata loads the video page and builds episode metadata from its player
// configuration. The stored URL is the canonical https://vimeo.com/{id}.
func (c *Client) Metadata(ctx context.Context, rawURL string) (catalog.Metadata, error) {
	videoID, err := VideoID(rawURL)
	if err != nil {
		return catalog.Metadata{}, err
	}

	pageURL := c.baseURL + "/" + videoID
	body, err := fetch.Get(ctx, c.http, pageURL, c.header())
	if err != nil {
		return catalog.Metadata{}, fmt.Errorf("load vimeo page: %w", err)
	}
	c.logger.Debug("vimeo page received", logging.String("url", pageURL), logging.Int("bytes", len(body)))

	pg, err := parsePage(string(body))
	if err != nil {
		return catalog.Metadata{}, fmt.Errorf("vimeo %s: %w", videoID, err)
	}

	video := pg.player.Video
	title := strings.TrimSpace(video.Title)
	description := pg.ogDescription
	published := time.Time{}
	owner := video.Owner.Name
	if pg.video != nil {
		if title == "" {
			title = strings.TrimSpace(pg.video.Name)
		}
		if d := strings.TrimSpace(pg.video.Description); d != "" {
			description = d
		}
		if owner == "" {
			owner = pg.video.Author.Name
		}
		if pg.video.UploadDate != "" {
			if ts, perr := catalog.ParsePublished(pg.video.UploadDate); perr == nil {
				published = ts.UTC()
			} else {
				c.logger.Debug("ignoring unparseable upload date", logging.String("value", pg.video.UploadDate))
			}
		}
	}
	if published.IsZero() {
		published = c.now().UTC().Truncate(time.Second)
	}

	webvtt := ""
	if track, ok := pickTrack(pg.player.Request.TextTracks, c.language); ok {
		webvtt = resolveTrackURL(track.URL)
	} else {
		logging.WarnWithContext(c.logger, "vimeo video has no text tracks", "vimeo_no_text_track",
			logging.String("video_id", videoID),
			logging.String(logging.FieldErrorHint, "enable captions on the video or add a transcript manually"),
			logging.String(logging.FieldImpact, "process-podcast will fail for this episode"))
	}

	meta := catalog.Metadata{
		Title:       title,
		Description: description,
		PublishedAt: published,
		PodcastName: fetch.PodcastName(title, owner),
		Interviewee: catalog.Interviewee{
			Name:         fetch.IntervieweeName(title),
			Profession:   fetch.Profession(description),
			Organization: fetch.Organization(description),
		},
		URL:             "https://vimeo.com/" + videoID,
		WebVTTURL:       webvtt,
		DurationSeconds: int(math.Round(video.Duration)),
	}

	c.logger.Debug("fetched vimeo metadata",
		logging.String("video_id", videoID),
		logging.String("title", meta.Title),
		logging.Bool("has_text_track", webvtt != ""))
	return meta, nil
}

// Transcript downloads the entry's recorded WebVTT track.
func (c *Client) Transcript(ctx context.Context, entry catalog.Entry) ([]byte, error) {
	if strings.TrimSpace(entry.WebVTTURL) == "" {
		return nil, fmt.Errorf("%w for %s", ErrNoTextTrack, entry.EpisodeID)
	}
	body, err := fetch.Get(ctx, c.http, entry.WebVTTURL, c.header())
	if err != nil {
		return nil, fmt.Errorf("download vimeo text track: %w", err)
	}
	return body, nil
}

// pickTrack prefers captions or subtitles in lang, then any track in lang,
// then the first track.
func pickTrack(tracks []textTrack, lang string) (textTrack, bool) {
	var usable []textTrack
	for _, t := range tracks {
		if strings.TrimSpace(t.URL) != "" {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return textTrack{}, false
	}
	matches := func(t textTrack) bool { return language.Matches(t.Lang, lang) }
	for _, t := range usable {
		if matches(t) && (t.Kind == "captions" || t.Kind == "subtitles") {
			return t, true
		}
	}
	for _, t := range usable {
		if matches(t) {
			return t, true
		}
	}
	return usable[0], true
}

func resolveTrackURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() {
		return raw
	}
	base, _ := url.Parse(playerHost)
	return base.ResolveReference(u).String()
}
