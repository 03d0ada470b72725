package util

import (
	"strings"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestFolderName(t *testing.T) {
	assert := assert_.New(t)

	assert.Equal("Lofi beats  study mix", FolderName("Lo-fi beats / study mix!"))
	assert.Equal("My Playlist 2024", FolderName("My Playlist: 2024?"))
	assert.Equal("snake_case ok", FolderName("snake_case ok"))
	assert.Equal("Café été", FolderName("Café été"))
	assert.Equal(DefaultFolderName, FolderName("?!/"))
	assert.Equal(DefaultFolderName, FolderName("   "))
}

func TestSafeFilename(t *testing.T) {
	assert := assert_.New(t)

	assert.Equal("AC_DC live.mp4", SafeFilename("AC/DC live.mp4"))
	assert.Equal("what_.webm", SafeFilename("what?.webm"))
	assert.Equal("hidden.mp4", SafeFilename("..hidden.mp4"))
	assert.Equal(DefaultFilename, SafeFilename(""))

	long := strings.Repeat("é", 150) + ".mp4"
	safe := SafeFilename(long)
	assert.LessOrEqual(len(safe), MaxFilenameLength)
	assert.True(strings.HasSuffix(safe, ".mp4"))
	assert.True(strings.HasPrefix(safe, "éé"))
}

func TestExtFromMime(t *testing.T) {
	assert := assert_.New(t)

	assert.Equal("mp4", ExtFromMime(`video/mp4; codecs="avc1.42001E, mp4a.40.2"`))
	assert.Equal("webm", ExtFromMime("video/webm"))
	assert.Equal("3gpp", ExtFromMime("video/3gpp"))
	assert.Equal(DefaultExt, ExtFromMime(""))
	assert.Equal(DefaultExt, ExtFromMime("garbage"))
}
