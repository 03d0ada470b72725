package generic

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	assert := assert_.New(t)

	s := NewSet[string]()
	assert.Equal(0, s.Count())
	assert.False(s.Contains("youtu.be"))
	assert.True(s.Add("youtu.be"))
	assert.False(s.Add("youtu.be"))
	assert.Equal(1, s.Count())
	assert.True(s.Contains("youtu.be"))
	assert.True(s.Remove("youtu.be"))
	assert.False(s.Remove("youtu.be"))
	assert.Equal(0, s.Count())

	hosts := NewSet("youtube.com", "youtu.be")
	assert.True(hosts.Contains("youtube.com", "youtu.be"))
	assert.False(hosts.Contains("youtube.com", "vimeo.com"))
}

func TestResult(t *testing.T) {
	assert := assert_.New(t)

	ok := NewResult(3, nil)
	assert.True(ok.IsOk())
	assert.Equal(3, ok.Unwrap())

	failed := NewResult(0, assertError("boom"))
	assert.False(failed.IsOk())
	assert.PanicsWithError("tried to Unwrap() an error: boom", func() { failed.Unwrap() })
	assert.Equal(5, Unwrap(5, nil))

	assert.NotPanics(func() { Unwrap_(nil) })
	assert.Panics(func() { Unwrap_(assertError("boom")) })
}

type assertError string

func (e assertError) Error() string {
	return string(e)
}
