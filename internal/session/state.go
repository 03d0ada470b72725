package session

import (
	"errors"
	"fmt"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/internal/selection"
)

var (
	ErrEmptyPlaylist = errors.New("playlist has no videos")
	ErrNoNext        = errors.New("no next video")
	ErrNoPrevious    = errors.New("no previous video")
)

// PlaylistState is the position of a session within a playlist. Items never change after load and Cursor always
// indexes Items.
type PlaylistState struct {
	Title  string
	Items  []video_fetcher.VideoRef
	Cursor int
}

func NewPlaylistState(playlist *video_fetcher.Playlist) (PlaylistState, error) {
	if len(playlist.Items) == 0 {
		return PlaylistState{}, ErrEmptyPlaylist
	}
	return PlaylistState{Title: playlist.Title, Items: playlist.Items}, nil
}

func (s PlaylistState) Current() video_fetcher.VideoRef {
	return s.Items[s.Cursor]
}

// Position is the 1-based position, e.g. "2 of 5".
func (s PlaylistState) Position() string {
	return fmt.Sprintf("%d of %d", s.Cursor+1, len(s.Items))
}

func (s PlaylistState) IsLast() bool {
	return s.Cursor == len(s.Items)-1
}

// Advance moves to the next item. ok is false if the cursor was already at the last item.
func (s PlaylistState) Advance() (next PlaylistState, ok bool) {
	if s.IsLast() {
		return s, false
	}
	s.Cursor++
	return s, true
}

func (s PlaylistState) Retreat() (prev PlaylistState, ok bool) {
	if s.Cursor == 0 {
		return s, false
	}
	s.Cursor--
	return s, true
}

// An Action tells the session loop what to do after a command has been applied.
type Action int

const (
	// Stay re-prompts at the same item; the accompanying error says why.
	Stay Action = iota
	// Moved means the cursor changed and the new item must be resolved.
	Moved
	// Download the selected stream, then advance.
	Download
	Exit
	ReturnToPrompt
)

func (a Action) String() string {
	switch a {
	case Stay:
		return "stay"
	case Moved:
		return "moved"
	case Download:
		return "download"
	case Exit:
		return "exit"
	case ReturnToPrompt:
		return "return"
	default:
		return "unknown"
	}
}

// Apply computes the transition for cmd at the current item, where streams is the number of streams listed for it.
func Apply(state PlaylistState, cmd selection.Command, streams int) (PlaylistState, Action, error) {
	switch cmd.Kind {
	case selection.Quit:
		return state, Exit, nil
	case selection.Back:
		return state, ReturnToPrompt, nil
	case selection.Next:
		if next, ok := state.Advance(); ok {
			return next, Moved, nil
		}
		return state, Stay, ErrNoNext
	case selection.Previous:
		if prev, ok := state.Retreat(); ok {
			return prev, Moved, nil
		}
		return state, Stay, ErrNoPrevious
	case selection.SelectStream:
		if _, err := selection.ValidateIndex(cmd.Stream, streams); err != nil {
			return state, Stay, err
		}
		return state, Download, nil
	default:
		return state, Stay, video_fetcher.ErrInvalidSelection
	}
}
