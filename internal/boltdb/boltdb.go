package boltdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.etcd.io/bbolt"

	"github.com/alanbriolat/video-fetcher/internal/history"
)

var Buckets = struct {
	Metadata []byte
	History  []byte
}{
	Metadata: []byte("__metadata__"),
	History:  []byte("history"),
}

var MetadataKeys = struct {
	Version []byte
}{
	Version: []byte("version"),
}

const currentVersion = 1

type database struct {
	*bbolt.DB
}

// ErrInUse is returned when another process holds the database open for writing.
var ErrInUse = errors.New("history database is in use")

// OpenTimeout bounds how long opening waits for the file lock.
var OpenTimeout = time.Second

// New opens (creating if necessary) a bbolt history database at path.
func New(path string) (_ history.Store, err error) {
	db, err := open(path, &bbolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) (err error) {
		// Ensure buckets exist
		var metadata *bbolt.Bucket
		if metadata, err = tx.CreateBucketIfNotExists(Buckets.Metadata); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(Buckets.History); err != nil {
			return err
		}
		if err := checkVersion(metadata); err != nil {
			return err
		}

		// Set the current version of the database
		if versionBytes, err := json.Marshal(currentVersion); err != nil {
			return err
		} else if err = metadata.Put(MetadataKeys.Version, versionBytes); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &database{db}, nil
}

// NewReadOnly opens an existing database for listing. A missing file is an empty history.
func NewReadOnly(path string) (history.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return history.NilStore{}, nil
	}
	db, err := open(path, &bbolt.Options{Timeout: OpenTimeout, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	err = db.View(func(tx *bbolt.Tx) error {
		if metadata := tx.Bucket(Buckets.Metadata); metadata != nil {
			return checkVersion(metadata)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &database{db}, nil
}

func open(path string, options *bbolt.Options) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, options)
	if errors.Is(err, bbolt.ErrTimeout) {
		return nil, fmt.Errorf("%w: %s", ErrInUse, path)
	}
	return db, err
}

func checkVersion(metadata *bbolt.Bucket) error {
	var version int
	if versionBytes := metadata.Get(MetadataKeys.Version); versionBytes == nil {
		version = 0
	} else if err := json.Unmarshal(versionBytes, &version); err != nil {
		return err
	}
	if version > currentVersion {
		return fmt.Errorf("history database version %d is newer than supported version %d", version, currentVersion)
	}
	return nil
}

func (d database) List() (records []history.Record, err error) {
	err = d.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(Buckets.History)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var record history.Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("corrupt history record %s: %w", k, err)
			} else {
				records = append(records, record)
				return nil
			}
		})
	})
	if err != nil {
		return nil, err
	}
	history.SortNewestFirst(records)
	return records, nil
}

func (d database) Add(record *history.Record) error {
	if record.ID == "" {
		record.ID = history.NewRecordID()
	}
	if data, err := json.Marshal(record); err != nil {
		return err
	} else {
		return d.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(Buckets.History).Put([]byte(record.ID), data)
		})
	}
}
