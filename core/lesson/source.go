package lesson

import (
	"net/url"
	"path"
	"strings"
)

// SourceKind discriminates how a lesson's raw URL gets played.
type SourceKind string

const (
	KindDirectFile   SourceKind = "file"         // plain video file, native player
	KindHostedEmbed  SourceKind = "embed"        // third-party player in an iframe
	KindUnrecognized SourceKind = "unrecognized" // display state, not an error
)

// Source identifies what to play for a lesson. It is computed from the raw
// URL on every mount and never persisted.
type Source struct {
	RawURL      string     `json:"raw_url"`
	Kind        SourceKind `json:"kind"`
	PlaybackURL string     `json:"playback_url,omitempty"`
	// NoDownload asks the renderer to suppress any "allow download" UI
	// affordance on native players.
	NoDownload bool `json:"no_download,omitempty"`
}

var (
	youtubeHosts = map[string]bool{
		"youtube.com":       true,
		"www.youtube.com":   true,
		"m.youtube.com":     true,
		"music.youtube.com": true,
	}

	directFileExts = map[string]bool{
		".mp4":  true,
		".webm": true,
		".ogg":  true,
		".ogv":  true,
		".mov":  true,
		".m4v":  true,
	}

	// minimal playback chrome: no related-content suggestions, no branding,
	// default controls, provider keyboard shortcuts off.
	embedQuery = url.Values{
		"rel":            []string{"0"},
		"modestbranding": []string{"1"},
		"controls":       []string{"1"},
		"disablekb":      []string{"1"},
	}.Encode()
)

// ResolveSource turns an author-supplied URL string into a Source.
// It never fails: anything it cannot place degrades to KindUnrecognized.
func ResolveSource(rawURL string) Source {
	src := Source{RawURL: rawURL, Kind: KindUnrecognized}

	s := strings.TrimSpace(rawURL)
	if s == "" {
		return src
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return src
	}

	if id := youtubeVideoID(u); id != "" {
		src.Kind = KindHostedEmbed
		src.PlaybackURL = "https://www.youtube-nocookie.com/embed/" + id + "?" + embedQuery
		return src
	}

	if isEmbedURL(u) {
		src.Kind = KindHostedEmbed
		src.PlaybackURL = rawURL
		return src
	}

	if directFileExts[strings.ToLower(path.Ext(u.Path))] {
		src.Kind = KindDirectFile
		src.PlaybackURL = rawURL
		src.NoDownload = true
		return src
	}

	return src
}

// youtubeVideoID extracts the video ID from short-link and watch-page forms;
// empty if `u` is not one of them.
func youtubeVideoID(u *url.URL) string {
	host := strings.ToLower(u.Hostname())

	if host == "youtu.be" {
		return firstPathSegment(u)
	}

	if !youtubeHosts[host] {
		return ""
	}
	segments := splitPath(u)
	if len(segments) == 0 {
		return ""
	}
	switch segments[0] {
	case "watch":
		return u.Query().Get("v")
	case "shorts", "live", "embed":
		if len(segments) > 1 {
			return segments[1]
		}
	}
	return ""
}

func splitPath(u *url.URL) []string {
	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func firstPathSegment(u *url.URL) string {
	if segments := splitPath(u); len(segments) > 0 {
		return segments[0]
	}
	return ""
}

func hasPathSegment(u *url.URL, name string) bool {
	for _, seg := range splitPath(u) {
		if strings.EqualFold(seg, name) {
			return true
		}
	}
	return false
}

// isEmbedURL recognizes already-embeddable player URLs: an "embed" or
// "player" marker either as a path segment (site.com/embed/<id>) or as the
// leading host label (player.vimeo.com, embed.ted.com).
func isEmbedURL(u *url.URL) bool {
	if hasPathSegment(u, "embed") || hasPathSegment(u, "player") {
		return true
	}
	label := strings.ToLower(u.Hostname())
	if i := strings.IndexByte(label, '.'); i > 0 {
		label = label[:i]
	}
	return label == "embed" || label == "player"
}
