package videoref

import (
	"net/url"
	"regexp"
	"strings"
)

var idRe = regexp.MustCompile(`^[\w-]{11}$`)

// VideoID extracts an 11-character video id from a watch URL, a short URL,
// an embed/shorts path or a bare id.
func VideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if idRe.MatchString(raw) {
		return raw, true
	}
	u, ok := parse(raw)
	if !ok {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	var id string
	switch host {
	case "youtu.be":
		id = firstSegment(u.Path)
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"), strings.HasPrefix(u.Path, "/shorts/"), strings.HasPrefix(u.Path, "/live/"):
			rest := u.Path[strings.Index(u.Path[1:], "/")+1:]
			id = firstSegment(rest)
		}
	}
	if idRe.MatchString(id) {
		return id, true
	}
	return "", false
}

// PlaylistID returns the list query parameter of a URL.
func PlaylistID(raw string) (string, bool) {
	u, ok := parse(strings.TrimSpace(raw))
	if !ok {
		return "", false
	}
	id := u.Query().Get("list")
	if id == "" {
		return "", false
	}
	return id, true
}

func parse(raw string) (*url.URL, bool) {
	if raw == "" {
		return nil, false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, false
	}
	return u, true
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.Index(p, "/"); i >= 0 {
		p = p[:i]
	}
	return p
}
