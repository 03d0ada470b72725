package selection

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/video-fetcher"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		ctx  Context
		want Command
	}{
		{"quit", ContextVideo, Command{Kind: Quit}},
		{"  QUIT ", ContextPlaylist, Command{Kind: Quit}},
		{"Back", ContextVideo, Command{Kind: Back}},
		{"next", ContextPlaylist, Command{Kind: Next}},
		{"Previous", ContextPlaylist, Command{Kind: Previous}},
		{"next", ContextVideo, Command{Kind: Invalid}},
		{"previous", ContextVideo, Command{Kind: Invalid}},
		{"1", ContextVideo, Command{Kind: SelectStream, Stream: 1}},
		{" 12 ", ContextPlaylist, Command{Kind: SelectStream, Stream: 12}},
		{"0", ContextVideo, Command{Kind: Invalid}},
		{"-1", ContextVideo, Command{Kind: Invalid}},
		{"+2", ContextVideo, Command{Kind: Invalid}},
		{"1.5", ContextVideo, Command{Kind: Invalid}},
		{"", ContextPlaylist, Command{Kind: Invalid}},
		{"prev", ContextPlaylist, Command{Kind: Invalid}},
		{"download 2", ContextVideo, Command{Kind: Invalid}},
	}
	for _, c := range cases {
		assert_.Equal(t, c.want, Parse(c.raw, c.ctx), "%q", c.raw)
	}
}

func TestValidateIndex(t *testing.T) {
	assert := assert_.New(t)

	for k := 1; k <= 5; k++ {
		for n := 1; n <= k; n++ {
			got, err := ValidateIndex(n, k)
			assert.NoError(err)
			assert.Equal(n, got)
		}
		for _, n := range []int{-1, 0, k + 1, k + 10} {
			_, err := ValidateIndex(n, k)
			assert.ErrorIs(err, video_fetcher.ErrInvalidSelection, "n=%d k=%d", n, k)
		}
	}
	_, err := ValidateIndex(1, 0)
	assert.ErrorIs(err, video_fetcher.ErrInvalidSelection)
}

func TestCommandString(t *testing.T) {
	assert := assert_.New(t)
	assert.Equal("select 3", Command{Kind: SelectStream, Stream: 3}.String())
	assert.Equal("previous", Command{Kind: Previous}.String())
}
