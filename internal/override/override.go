package override

import (
	"sort"
	"strings"
)

// Lists holds the raw identifiers a Registry is built from.
type Lists struct {
	Channels  []string `yaml:"channels" json:"channels"`
	Videos    []string `yaml:"videos" json:"videos"`
	Playlists []string `yaml:"playlists" json:"playlists"`
}

// Registry is an immutable denylist of channels, videos and playlists whose
// content is always restricted.
type Registry struct {
	channels  map[string]struct{}
	videos    map[string]struct{}
	playlists map[string]struct{}
}

// Match reports which kinds of identifier were found in the registry.
type Match struct {
	Channel  bool `json:"channel"`
	Video    bool `json:"video"`
	Playlist bool `json:"playlist"`
}

func (m Match) Any() bool { return m.Channel || m.Video || m.Playlist }

// Kinds lists the matched kinds in a fixed order.
func (m Match) Kinds() []string {
	var out []string
	if m.Channel {
		out = append(out, "channel")
	}
	if m.Video {
		out = append(out, "video")
	}
	if m.Playlist {
		out = append(out, "playlist")
	}
	return out
}

// New builds a registry. Identifiers are trimmed; blanks are dropped.
// Identifiers are case sensitive.
func New(lists Lists) *Registry {
	return &Registry{
		channels:  toSet(lists.Channels),
		videos:    toSet(lists.Videos),
		playlists: toSet(lists.Playlists),
	}
}

// Default returns the built-in denylist.
func Default() Lists {
	return Lists{
		Channels:  []string{"UC_UnqGamer"},
		Videos:    []string{"NkZFnpDhdCk"},
		Playlists: []string{"PL4Ng544E1TFTssjj8SdZbgE576EVVmjhp"},
	}
}

// Merge concatenates lists.
func Merge(a, b Lists) Lists {
	return Lists{
		Channels:  append(append([]string{}, a.Channels...), b.Channels...),
		Videos:    append(append([]string{}, a.Videos...), b.Videos...),
		Playlists: append(append([]string{}, a.Playlists...), b.Playlists...),
	}
}

// IsOverridden reports whether any of the identifiers is registered. An empty
// identifier never matches.
func (r *Registry) IsOverridden(channelID, videoID, playlistID string) bool {
	return r.Check(channelID, videoID, playlistID).Any()
}

func (r *Registry) Check(channelID, videoID, playlistID string) Match {
	if r == nil {
		return Match{}
	}
	return Match{
		Channel:  has(r.channels, channelID),
		Video:    has(r.videos, videoID),
		Playlist: has(r.playlists, playlistID),
	}
}

// Sizes returns the number of registered channels, videos and playlists.
func (r *Registry) Sizes() (channels, videos, playlists int) {
	if r == nil {
		return 0, 0, 0
	}
	return len(r.channels), len(r.videos), len(r.playlists)
}

// Lists returns the registered identifiers, sorted.
func (r *Registry) Lists() Lists {
	if r == nil {
		return Lists{}
	}
	return Lists{
		Channels:  sortedKeys(r.channels),
		Videos:    sortedKeys(r.videos),
		Playlists: sortedKeys(r.playlists),
	}
}

func has(set map[string]struct{}, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	_, ok := set[id]
	return ok
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
