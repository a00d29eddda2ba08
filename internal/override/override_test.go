package override

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOverridden(t *testing.T) {
	r := New(Default())

	cases := []struct {
		name                     string
		channel, video, playlist string
		want                     bool
	}{
		{name: "channel", channel: "UC_UnqGamer", want: true},
		{name: "video", video: "NkZFnpDhdCk", want: true},
		{name: "playlist", playlist: "PL4Ng544E1TFTssjj8SdZbgE576EVVmjhp", want: true},
		{name: "none", channel: "UCother", video: "abcdefghijk", want: false},
		{name: "all empty", want: false},
		{name: "case sensitive", channel: "uc_unqgamer", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.IsOverridden(tc.channel, tc.video, tc.playlist))
		})
	}
}

func TestEmptyIDNeverMatches(t *testing.T) {
	r := New(Lists{Channels: []string{"", "  "}, Playlists: []string{""}})
	c, v, p := r.Sizes()
	assert.Equal(t, 0, c+v+p)
	assert.False(t, r.IsOverridden("", "", ""))
}

func TestCheckKinds(t *testing.T) {
	r := New(Default())
	m := r.Check("UC_UnqGamer", "x", "PL4Ng544E1TFTssjj8SdZbgE576EVVmjhp")
	assert.True(t, m.Any())
	assert.Equal(t, []string{"channel", "playlist"}, m.Kinds())
	assert.Nil(t, Match{}.Kinds())
}

func TestMergeAndLists(t *testing.T) {
	r := New(Merge(Default(), Lists{Videos: []string{"zzzzzzzzzzz", "NkZFnpDhdCk"}}))
	c, v, p := r.Sizes()
	assert.Equal(t, 1, c)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, p)
	assert.Equal(t, []string{"NkZFnpDhdCk", "zzzzzzzzzzz"}, r.Lists().Videos)
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	assert.False(t, r.IsOverridden("UC_UnqGamer", "", ""))
}
