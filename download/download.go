// Package download validates a chosen stream and destination, then runs the transfer with progress reporting.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/internal/history"
)

// Reporter is where user-facing download output goes.
type Reporter interface {
	Info(msg string)
	Error(msg string)
	Success(msg string)
	// Progress starts a new in-place progress display.
	Progress() ProgressSink
}

type ProgressSink interface {
	Update(done int64, total int64)
	Finish()
}

type Options struct {
	// Playlist is recorded in history for downloads that are part of a playlist.
	Playlist string
}

type Orchestrator struct {
	catalog  video_fetcher.StreamCatalog
	reporter Reporter
	history  history.Store
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewOrchestrator(catalog video_fetcher.StreamCatalog, reporter Reporter, store history.Store) *Orchestrator {
	if store == nil {
		store = history.NilStore{}
	}
	return &Orchestrator{
		catalog:  catalog,
		reporter: reporter,
		history:  store,
		log:      zap.S().Named("download"),
		now:      time.Now,
	}
}

// Download checks that destDir exists and index selects one of res.Streams, then transfers that stream into
// destDir. Every outcome is reported; the returned error is informational and never needs to stop the caller.
func (o *Orchestrator) Download(ctx context.Context, res *video_fetcher.Resolution, index int, destDir string, opt *Options) (string, error) {
	if opt == nil {
		opt = &Options{}
	}
	if err := checkDestination(destDir); err != nil {
		o.reporter.Error("Invalid download path.")
		return "", err
	}
	stream, err := res.Stream(index)
	if err != nil {
		o.reporter.Error("Invalid stream number.")
		return "", err
	}
	log := o.log.With("video_id", res.Video.ID)

	o.reporter.Info(fmt.Sprintf("\nDownloading: %s", stream.Summary()))
	log.Debugf("transferring itag %d into %s", stream.Itag, destDir)
	sink := o.reporter.Progress()
	path, err := o.catalog.Transfer(ctx, res.Video, stream, destDir, func(done, total int64) {
		sink.Update(done, total)
	})
	sink.Finish()

	record := &history.Record{
		VideoID:  res.Video.ID,
		Title:    res.Video.Title,
		Playlist: opt.Playlist,
		Stream:   stream.Summary(),
		Path:     path,
		Status:   history.StatusComplete,
		AddedAt:  o.now(),
	}
	if err != nil {
		err = &video_fetcher.TransferError{Err: err}
		record.Status = history.StatusFailed
		record.Error = err.Error()
		log.Warnf("transfer failed: %v", err)
		o.reporter.Error(fmt.Sprintf("Error: %v", err))
	} else {
		log.Infof("saved %s", path)
		o.reporter.Success("Download complete!")
	}
	if histErr := o.history.Add(record); histErr != nil {
		log.Errorf("failed to record download history: %v", histErr)
	}
	return path, err
}

func checkDestination(dir string) error {
	if dir == "" {
		return video_fetcher.ErrInvalidDestination
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", video_fetcher.ErrInvalidDestination, dir)
		}
		return fmt.Errorf("%w: %v", video_fetcher.ErrInvalidDestination, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", video_fetcher.ErrInvalidDestination, dir)
	}
	return nil
}
