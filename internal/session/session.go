// Package session walks a playlist one video at a time, letting the user pick a stream to download or navigate.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/r3labs/diff/v3"
	"go.uber.org/zap"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/download"
	"github.com/alanbriolat/video-fetcher/generic"
	"github.com/alanbriolat/video-fetcher/internal/selection"
	"github.com/alanbriolat/video-fetcher/util"
)

// Console is the user-facing side of a session.
type Console interface {
	download.Reporter
	Prompt(text string) (string, error)
	Title(msg string)
}

type Downloader interface {
	Download(ctx context.Context, res *video_fetcher.Resolution, index int, destDir string, opt *download.Options) (string, error)
}

var _ Downloader = (*download.Orchestrator)(nil)

type Config struct {
	Catalog    video_fetcher.StreamCatalog
	Console    Console
	Downloader Downloader
}

type Session struct {
	id         string
	catalog    video_fetcher.StreamCatalog
	console    Console
	downloader Downloader
	log        *zap.SugaredLogger

	folder string
}

func New(config Config) *Session {
	id := generic.Unwrap(uuid.NewRandom()).String()
	return &Session{
		id:         id,
		catalog:    config.Catalog,
		console:    config.Console,
		downloader: config.Downloader,
		log:        zap.S().Named("session").With("session_id", id),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Folder is the directory that downloads are saved to, empty until PrepareFolder succeeds.
func (s *Session) Folder() string {
	return s.folder
}

// PrepareFolder creates a directory named after the playlist title inside destDir, which must already exist. An
// existing directory is reused, and once prepared the folder never changes for the life of the Session.
func (s *Session) PrepareFolder(destDir string, title string) (string, error) {
	if s.folder != "" {
		return s.folder, nil
	}
	if info, err := os.Stat(destDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", video_fetcher.ErrInvalidDestination, destDir)
	}
	folder := filepath.Join(destDir, util.FolderName(title))
	if err := os.Mkdir(folder, 0775); err != nil && !errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("failed to create playlist folder: %w", err)
	}
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", video_fetcher.ErrInvalidDestination, folder)
	}
	s.log.Debugf("playlist folder is %s", folder)
	s.folder = folder
	return folder, nil
}

// Run processes items starting at state.Cursor until the user quits, goes back, or the playlist is exhausted.
// Input ending is treated as quitting. Downloads go to the folder set up by PrepareFolder.
// Running out of items returns ReturnToURLPrompt even when the last item could not be resolved; only quitting
// terminates.
func (s *Session) Run(ctx context.Context, state PlaylistState) Outcome {
	s.log.Infof("starting playlist %q at %s", state.Title, state.Position())
	for {
		if ctx.Err() != nil {
			s.log.Debugf("context done: %v", ctx.Err())
			return Terminate
		}
		res, ok := s.resolve(ctx, state)
		if !ok {
			next, ok := state.Advance()
			if !ok {
				s.log.Debug("playlist exhausted after unavailable item")
				return ReturnToURLPrompt
			}
			state = s.transition(state, next)
			continue
		}
		ListStreams(s.console, res)

		next, action := s.prompt(ctx, state, res)
		switch action {
		case Exit:
			return Terminate
		case ReturnToPrompt:
			return ReturnToURLPrompt
		case Moved:
			state = s.transition(state, next)
		case Download:
			next, ok := state.Advance()
			if !ok {
				s.log.Debug("playlist exhausted")
				return ReturnToURLPrompt
			}
			state = s.transition(state, next)
		}
	}
}

// resolve reports unavailable items and returns ok only if the item has streams to choose from.
func (s *Session) resolve(ctx context.Context, state PlaylistState) (*video_fetcher.Resolution, bool) {
	item := state.Current()
	s.console.Info(fmt.Sprintf("\nVideo %s", state.Position()))
	res, err := s.catalog.Resolve(ctx, item)
	if err != nil {
		s.log.With("video_id", item.ID).Warnf("resolve failed: %v", err)
		s.console.Error(fmt.Sprintf("Error: %v", err))
		return nil, false
	}
	if !res.HasStreams() {
		s.console.Error("No available streams.")
		return nil, false
	}
	return res, true
}

// prompt reads commands until one leaves the current item, downloading along the way if a stream is selected.
func (s *Session) prompt(ctx context.Context, state PlaylistState, res *video_fetcher.Resolution) (PlaylistState, Action) {
	text := fmt.Sprintf("[%s] Enter stream number, next, previous, back or quit: ", state.Position())
	for {
		raw, err := s.console.Prompt(text)
		if err != nil {
			s.log.Debugf("input closed: %v", err)
			return state, Exit
		}
		cmd := selection.Parse(raw, selection.ContextPlaylist)
		s.log.Debugf("command: %v", cmd)
		next, action, err := Apply(state, cmd, len(res.Streams))
		switch action {
		case Stay:
			s.console.Error(stayMessage(err))
			continue
		case Download:
			_, _ = s.downloader.Download(ctx, res, cmd.Stream, s.folder, &download.Options{Playlist: state.Title})
		}
		return next, action
	}
}

func (s *Session) transition(from PlaylistState, to PlaylistState) PlaylistState {
	changes, err := diff.Diff(from, to)
	if err != nil {
		s.log.Errorf("failed to diff playlist state: %v", err)
		return to
	}
	for _, change := range changes {
		s.log.Debugf("%v: %#v -> %#v", change.Path, change.From, change.To)
	}
	return to
}

func stayMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoNext):
		return "No next video."
	case errors.Is(err, ErrNoPrevious):
		return "No previous video."
	default:
		return "Invalid stream number."
	}
}

// ListStreams shows the title of a resolved video and its numbered streams.
func ListStreams(c Console, res *video_fetcher.Resolution) {
	c.Title(fmt.Sprintf("\nTitle: %s", res.Video.Title))
	c.Info("\nAvailable streams:")
	for _, stream := range res.Streams {
		c.Info(stream.String())
	}
}
