// Package history records every download attempt so past downloads can be listed later.
package history

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alanbriolat/video-fetcher/generic"
)

type RecordID string

func NewRecordID() RecordID {
	return RecordID(generic.Unwrap(uuid.NewRandom()).String())
}

type Status string

const (
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

type Record struct {
	ID       RecordID
	VideoID  string
	Title    string
	Playlist string
	Stream   string
	Path     string
	Status   Status
	Error    string
	AddedAt  time.Time
}

type Store interface {
	Add(*Record) error
	List() ([]Record, error)
	Close() error
}

// NilStore discards everything.
type NilStore struct{}

func (NilStore) Add(_ *Record) error {
	return nil
}

func (NilStore) List() ([]Record, error) {
	return nil, nil
}

func (NilStore) Close() error {
	return nil
}

// SortNewestFirst orders records by AddedAt, newest first.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AddedAt.After(records[j].AddedAt)
	})
}
