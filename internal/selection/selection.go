// Package selection turns free-form user input into navigation commands and validates stream numbers.
package selection

import (
	"strconv"
	"strings"

	"github.com/alanbriolat/video-fetcher"
)

type Kind int

const (
	Invalid Kind = iota
	Quit
	Back
	Next
	Previous
	SelectStream
)

func (k Kind) String() string {
	switch k {
	case Quit:
		return "quit"
	case Back:
		return "back"
	case Next:
		return "next"
	case Previous:
		return "previous"
	case SelectStream:
		return "select"
	default:
		return "invalid"
	}
}

// Command is a parsed line of input. Stream is only set for SelectStream.
type Command struct {
	Kind   Kind
	Stream int
}

func (c Command) String() string {
	if c.Kind == SelectStream {
		return "select " + strconv.Itoa(c.Stream)
	}
	return c.Kind.String()
}

// Context says where the input was read, since next and previous only mean something inside a playlist.
type Context int

const (
	ContextVideo Context = iota
	ContextPlaylist
)

var keywords = map[string]Kind{
	"quit":     Quit,
	"back":     Back,
	"next":     Next,
	"previous": Previous,
}

// Parse recognises the keywords quit, back, next and previous (case-insensitive), then positive integers.
// Anything else, including next/previous outside a playlist, is Invalid.
func Parse(raw string, ctx Context) Command {
	s := strings.ToLower(strings.TrimSpace(raw))
	if kind, ok := keywords[s]; ok {
		if (kind == Next || kind == Previous) && ctx != ContextPlaylist {
			return Command{Kind: Invalid}
		}
		return Command{Kind: kind}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || strings.HasPrefix(s, "+") {
		return Command{Kind: Invalid}
	}
	return Command{Kind: SelectStream, Stream: n}
}

// ValidateIndex returns n if 1 <= n <= upper, otherwise video_fetcher.ErrInvalidSelection.
func ValidateIndex(n int, upper int) (int, error) {
	if n < 1 || n > upper {
		return 0, video_fetcher.ErrInvalidSelection
	}
	return n, nil
}
