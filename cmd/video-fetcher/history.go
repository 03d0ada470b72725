package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/database"
	"github.com/alanbriolat/video-fetcher/internal/boltdb"
	"github.com/alanbriolat/video-fetcher/internal/config"
	"github.com/alanbriolat/video-fetcher/internal/history"
)

// openHistory opens the configured store. With readOnly a bolt database is neither created nor written.
func openHistory(cfg video_fetcher.Config, readOnly bool) (history.Store, error) {
	if cfg.HistoryDriver == video_fetcher.HistoryDriverNone {
		return history.NilStore{}, nil
	}
	path, err := config.HistoryPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to locate download history: %w", err)
	}
	switch cfg.HistoryDriver {
	case video_fetcher.HistoryDriverSQLite:
		return database.Open(path)
	default:
		if readOnly {
			return boltdb.NewReadOnly(path)
		}
		return boltdb.New(path)
	}
}

func listHistory(w io.Writer, cfg video_fetcher.Config) (err error) {
	store, err := openHistory(cfg, true)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); err == nil {
			err = closeErr
		}
	}()
	records, err := store.List()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSTATUS\tVIDEO\tSTREAM\tPATH")
	for _, r := range records {
		detail := r.Path
		if r.Status == history.StatusFailed {
			detail = r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.AddedAt.Format("2006-01-02 15:04:05"), r.Status, r.Title, r.Stream, detail)
	}
	return tw.Flush()
}
