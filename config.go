package video_fetcher

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/alanbriolat/video-fetcher/util"
)

const DefaultFileTemplate = "{{.Title}} [{{.ID}}].{{.Ext}}"

type ProgressStyle string

const (
	ProgressStyleLine  ProgressStyle = "line"
	ProgressStyleBlock ProgressStyle = "block"
	ProgressStyleBytes ProgressStyle = "bytes"
)

type HistoryDriver string

const (
	HistoryDriverBolt   HistoryDriver = "bolt"
	HistoryDriverSQLite HistoryDriver = "sqlite"
	HistoryDriverNone   HistoryDriver = "none"
)

// Config is the fully resolved application configuration.
type Config struct {
	// TargetDir is offered as the default answer to the download path prompt.
	TargetDir     string
	FileTemplate  string
	ProgressStyle ProgressStyle
	HistoryDriver HistoryDriver
	// HistoryPath is the database file; empty means a file in the user data directory.
	HistoryPath string
	Verbose     bool
}

func DefaultConfig() Config {
	return Config{
		TargetDir:     ".",
		FileTemplate:  DefaultFileTemplate,
		ProgressStyle: ProgressStyleLine,
		HistoryDriver: HistoryDriverBolt,
	}
}

// Validate checks the enumerated options.
func (c *Config) Validate() error {
	switch c.ProgressStyle {
	case ProgressStyleLine, ProgressStyleBlock, ProgressStyleBytes:
	default:
		return fmt.Errorf("unknown progress style %q", c.ProgressStyle)
	}
	switch c.HistoryDriver {
	case HistoryDriverBolt, HistoryDriverSQLite, HistoryDriverNone:
	default:
		return fmt.Errorf("unknown history driver %q", c.HistoryDriver)
	}
	if _, err := NewDownloadConfig(c.FileTemplate); err != nil {
		return err
	}
	return nil
}

type DownloadConfig interface {
	GetTargetFilename(video VideoRef, stream StreamDescriptor) (string, error)
}

type downloadConfig struct {
	TargetFileTemplate *template.Template
}

func NewDownloadConfig(fileTemplate string) (DownloadConfig, error) {
	if fileTemplate == "" {
		fileTemplate = DefaultFileTemplate
	}
	tmpl, err := template.New("target_file").Option("missingkey=error").Parse(fileTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid file template: %w", err)
	}
	return &downloadConfig{TargetFileTemplate: tmpl}, nil
}

// GetTargetFilename renders the file template and makes the result safe to use as a single path element.
func (c *downloadConfig) GetTargetFilename(video VideoRef, stream StreamDescriptor) (string, error) {
	args := targetFileTemplateArgs{
		ID:         video.ID,
		Title:      video.Title,
		Ext:        util.ExtFromMime(stream.MimeType),
		Resolution: stream.Resolution,
		Itag:       stream.Itag,
	}
	builder := strings.Builder{}
	if err := c.TargetFileTemplate.Execute(&builder, &args); err != nil {
		return "", err
	}
	return util.SafeFilename(builder.String()), nil
}

type targetFileTemplateArgs struct {
	ID         string
	Title      string
	Ext        string
	Resolution string
	Itag       int
}
