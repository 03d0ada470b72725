package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"github.com/alanbriolat/video-fetcher/internal/history"
)

type Database struct {
	db *gorm.DB
}

var _ history.Store = (*Database)(nil)

// NewDatabase opens the sqlite database at path, logging SQL through the global zap logger.
func NewDatabase(path string) (*Database, error) {
	logger := zapgorm2.New(zap.L().Named("gorm"))
	logger.SetAsDefault()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger})
	if err != nil {
		return nil, err
	}
	return &Database{db}, nil
}

// Open is NewDatabase followed by Migrate.
func Open(path string) (*Database, error) {
	d, err := NewDatabase(path)
	if err != nil {
		return nil, err
	}
	if err := d.Migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) Migrate() error {
	zap.S().Named("gorm").Debug("running database migrations")
	return d.db.AutoMigrate(&Download{})
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Add inserts a history record, generating its ID if unset.
func (d *Database) Add(record *history.Record) error {
	if record.ID == "" {
		record.ID = history.NewRecordID()
	}
	row := newDownload(record)
	return d.db.Create(&row).Error
}

// List returns all history records, newest first.
func (d *Database) List() ([]history.Record, error) {
	var rows []Download
	if err := d.db.Order("added_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]history.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return records, nil
}

// Download is one row of the download history table.
type Download struct {
	ID       string `gorm:"primaryKey"`
	VideoID  string `gorm:"index"`
	Title    string
	Playlist string
	Stream   string
	Path     string
	Status   string
	Error    string
	AddedAt  time.Time `gorm:"index"`
}

func newDownload(r *history.Record) Download {
	return Download{
		ID:       string(r.ID),
		VideoID:  r.VideoID,
		Title:    r.Title,
		Playlist: r.Playlist,
		Stream:   r.Stream,
		Path:     r.Path,
		Status:   string(r.Status),
		Error:    r.Error,
		AddedAt:  r.AddedAt,
	}
}

func (d Download) record() history.Record {
	return history.Record{
		ID:       history.RecordID(d.ID),
		VideoID:  d.VideoID,
		Title:    d.Title,
		Playlist: d.Playlist,
		Stream:   d.Stream,
		Path:     d.Path,
		Status:   history.Status(d.Status),
		Error:    d.Error,
		AddedAt:  d.AddedAt,
	}
}
