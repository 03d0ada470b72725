// Package shell is the outer read-eval loop: it asks for a URL, classifies it and runs the single video or playlist
// flow until the user quits.
package shell

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/internal/selection"
	"github.com/alanbriolat/video-fetcher/internal/session"
)

const (
	urlPrompt    = "\nEnter the URL of the video or playlist you want to download (or quit): "
	streamPrompt = "Enter the number of the stream you want to download (or back, quit): "
)

type Config struct {
	Registry   *video_fetcher.ProviderRegistry
	Catalog    video_fetcher.StreamCatalog
	Playlists  video_fetcher.PlaylistLoader
	Console    session.Console
	Downloader session.Downloader
	// TargetDir is used when the download path prompt is left empty.
	TargetDir string
}

type Shell struct {
	config Config
	log    *zap.SugaredLogger
}

func New(config Config) *Shell {
	if config.Registry == nil {
		config.Registry = &video_fetcher.DefaultProviderRegistry
	}
	return &Shell{
		config: config,
		log:    zap.S().Named("shell"),
	}
}

// Run loops until the user quits, the input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		raw, err := s.config.Console.Prompt(urlPrompt)
		if err != nil {
			s.log.Debugf("input closed: %v", err)
			return nil
		}
		if s.Handle(ctx, raw) == session.Terminate {
			return nil
		}
	}
	return ctx.Err()
}

// Handle processes one line of input from the URL prompt.
func (s *Shell) Handle(ctx context.Context, raw string) session.Outcome {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return session.ReturnToURLPrompt
	}
	if strings.EqualFold(raw, "quit") {
		return session.Terminate
	}
	match, err := s.config.Registry.Match(raw)
	if err != nil {
		s.log.Debugf("no match for %q: %v", raw, err)
		s.config.Console.Error("Invalid URL.")
		return session.ReturnToURLPrompt
	}
	s.log.Debugf("matched %q with provider %s as %v", raw, match.ProviderName, match.Kind)
	switch match.Kind {
	case video_fetcher.KindSingleVideo:
		return s.singleVideo(ctx, match.Target)
	case video_fetcher.KindPlaylist:
		return s.playlist(ctx, match.Target)
	default:
		s.config.Console.Error("Invalid URL.")
		return session.ReturnToURLPrompt
	}
}

func (s *Shell) singleVideo(ctx context.Context, target video_fetcher.Target) session.Outcome {
	c := s.config.Console
	res, err := s.config.Catalog.Resolve(ctx, video_fetcher.VideoRef{ID: target.ID, URL: target.URL})
	if err != nil {
		c.Error(fmt.Sprintf("Error: %v", err))
		return session.ReturnToURLPrompt
	}
	if !res.HasStreams() {
		c.Error("No available streams.")
		return session.ReturnToURLPrompt
	}
	session.ListStreams(c, res)

	for {
		raw, err := c.Prompt(streamPrompt)
		if err != nil {
			return session.Terminate
		}
		cmd := selection.Parse(raw, selection.ContextVideo)
		switch cmd.Kind {
		case selection.Quit:
			return session.Terminate
		case selection.Back:
			return session.ReturnToURLPrompt
		case selection.SelectStream:
			if _, err := selection.ValidateIndex(cmd.Stream, len(res.Streams)); err == nil {
				dest, err := s.destination()
				if err != nil {
					return session.Terminate
				}
				_, _ = s.config.Downloader.Download(ctx, res, cmd.Stream, dest, nil)
				return session.ReturnToURLPrompt
			}
		}
		c.Error("Invalid stream number.")
	}
}

func (s *Shell) playlist(ctx context.Context, target video_fetcher.Target) session.Outcome {
	c := s.config.Console
	playlist, err := s.config.Playlists.LoadPlaylist(ctx, target.URL)
	if err != nil {
		c.Error(fmt.Sprintf("Error: %v", err))
		return session.ReturnToURLPrompt
	}
	state, err := session.NewPlaylistState(playlist)
	if err != nil {
		c.Error("Playlist has no videos.")
		return session.ReturnToURLPrompt
	}
	c.Title(fmt.Sprintf("\nPlaylist: %s (%d videos)", playlist.Title, len(playlist.Items)))

	dest, err := s.destination()
	if err != nil {
		return session.Terminate
	}
	ses := session.New(session.Config{
		Catalog:    s.config.Catalog,
		Console:    c,
		Downloader: s.config.Downloader,
	})
	folder, err := ses.PrepareFolder(dest, playlist.Title)
	if err != nil {
		s.log.Warnf("failed to prepare playlist folder: %v", err)
		c.Error("Invalid download path.")
		return session.ReturnToURLPrompt
	}
	c.Info(fmt.Sprintf("Saving to: %s", folder))
	outcome := ses.Run(ctx, state)
	s.log.With("session_id", ses.ID()).Debugf("playlist session finished: %v", outcome)
	return outcome
}

// destination asks for the download directory, defaulting to the configured target.
func (s *Shell) destination() (string, error) {
	text := "Enter the download path: "
	if s.config.TargetDir != "" {
		text = fmt.Sprintf("Enter the download path [%s]: ", s.config.TargetDir)
	}
	dest, err := s.config.Console.Prompt(text)
	if err != nil {
		return "", err
	}
	if dest == "" {
		dest = s.config.TargetDir
	}
	return dest, nil
}
