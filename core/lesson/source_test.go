package lesson

import "testing"

func TestResolveSource(t *testing.T) {
	embedSuffix := "?controls=1&disablekb=1&modestbranding=1&rel=0"

	tests := []struct {
		name           string
		rawURL         string
		wantKind       SourceKind
		wantPlayback   string
		wantNoDownload bool
	}{
		{
			name:         "short link",
			rawURL:       "https://youtu.be/dQw4w9WgXcQ",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ" + embedSuffix,
		},
		{
			name:         "short link without scheme",
			rawURL:       "youtu.be/dQw4w9WgXcQ",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ" + embedSuffix,
		},
		{
			name:         "watch page",
			rawURL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ" + embedSuffix,
		},
		{
			name:         "watch page with playlist params",
			rawURL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx&index=2",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ" + embedSuffix,
		},
		{
			name:         "mobile watch page",
			rawURL:       "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ" + embedSuffix,
		},
		{
			name:         "shorts",
			rawURL:       "https://youtube.com/shorts/abc123XYZ_-",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://www.youtube-nocookie.com/embed/abc123XYZ_-" + embedSuffix,
		},
		{
			name:         "existing embed URL passed through",
			rawURL:       "https://player.vimeo.com/video/123456",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://player.vimeo.com/video/123456",
		},
		{
			name:         "embed host label passed through",
			rawURL:       "https://embed.ted.com/talks/some_talk",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://embed.ted.com/talks/some_talk",
		},
		{
			name:         "embed path segment passed through",
			rawURL:       "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ",
			wantKind:     KindHostedEmbed,
			wantPlayback: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ",
		},
		{
			name:           "direct mp4",
			rawURL:         "https://cdn.example.com/lessons/intro.mp4",
			wantKind:       KindDirectFile,
			wantPlayback:   "https://cdn.example.com/lessons/intro.mp4",
			wantNoDownload: true,
		},
		{
			name:           "direct webm uppercase ext",
			rawURL:         "https://cdn.example.com/lessons/INTRO.WEBM",
			wantKind:       KindDirectFile,
			wantPlayback:   "https://cdn.example.com/lessons/INTRO.WEBM",
			wantNoDownload: true,
		},
		{name: "empty", rawURL: "", wantKind: KindUnrecognized},
		{name: "whitespace", rawURL: "   ", wantKind: KindUnrecognized},
		{name: "malformed", rawURL: "http://[::1]:namedport/x.mp4", wantKind: KindUnrecognized},
		{name: "random page", rawURL: "https://example.com/about", wantKind: KindUnrecognized},
		{name: "watch page without id", rawURL: "https://www.youtube.com/watch", wantKind: KindUnrecognized},
		{name: "short link without id", rawURL: "https://youtu.be/", wantKind: KindUnrecognized},
		{name: "not a url at all", rawURL: "lesson three", wantKind: KindUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ResolveSource(tt.rawURL)
			if src.Kind != tt.wantKind {
				t.Errorf("ResolveSource() kind = %v, want %v", src.Kind, tt.wantKind)
			}
			if src.PlaybackURL != tt.wantPlayback {
				t.Errorf("ResolveSource() playbackURL = %q, want %q", src.PlaybackURL, tt.wantPlayback)
			}
			if src.NoDownload != tt.wantNoDownload {
				t.Errorf("ResolveSource() noDownload = %v, want %v", src.NoDownload, tt.wantNoDownload)
			}
			if src.RawURL != tt.rawURL {
				t.Errorf("ResolveSource() rawURL = %q, want %q", src.RawURL, tt.rawURL)
			}
		})
	}
}
