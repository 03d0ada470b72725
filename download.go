package video_fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const maxFileSuffix = 1000

type Download interface {
	// AddDownloadedBytes increases how many bytes have been successfully downloaded so far.
	AddDownloadedBytes(n int64)

	// AddExpectedBytes increases how many bytes are expected to be downloaded.
	AddExpectedBytes(n int64)

	// Context is the cancellable context of this Download.
	Context() context.Context

	// CreateFile creates a new file in the target directory, never replacing an existing one: if filename is taken,
	// " (2)", " (3)", ... is inserted before the extension. Returns the path actually used.
	CreateFile(filename string) (io.WriteCloser, string, error)

	// Path returns the full path of the last file saved with SaveStream.
	Path() string

	// Progress returns the downloaded and expected bytes of the download.
	Progress() (int64, int64)

	// SaveStream will download the stream to the named file, calling AddDownloadedBytes as necessary. A partially
	// written file is removed if the copy fails.
	SaveStream(filename string, stream io.Reader) error

	// Write will ignore the data but will send the byte count to AddDownloadedBytes. Allows progress tracking using
	// io.MultiWriter (but ensure the Download is the last writer to avoid counting failed writes).
	Write(p []byte) (n int, err error)
}

type download struct {
	ctx              context.Context
	progressCallback ProgressFunc
	targetDir        string
	path             string
	expectedBytes    int64
	downloadedBytes  int64
}

func (d *download) AddDownloadedBytes(n int64) {
	d.downloadedBytes += n
	if d.progressCallback != nil {
		d.progressCallback(d.Progress())
	}
}

func (d *download) AddExpectedBytes(n int64) {
	d.expectedBytes += n
	if d.progressCallback != nil {
		d.progressCallback(d.Progress())
	}
}

func (d *download) Context() context.Context {
	return d.ctx
}

func (d *download) CreateFile(filename string) (io.WriteCloser, string, error) {
	targetPath := d.targetPath(filename)
	if err := os.MkdirAll(filepath.Dir(targetPath), 0775); err != nil {
		return nil, "", err
	}
	ext := filepath.Ext(targetPath)
	base := strings.TrimSuffix(targetPath, ext)
	for n := 1; n <= maxFileSuffix; n++ {
		path := targetPath
		if n > 1 {
			path = fmt.Sprintf("%s (%d)%s", base, n, ext)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0664)
		if err == nil {
			return f, path, nil
		} else if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("too many files named like %s", targetPath)
}

func (d *download) Path() string {
	return d.path
}

func (d *download) Progress() (int64, int64) {
	return d.downloadedBytes, d.expectedBytes
}

func (d *download) SaveStream(filename string, stream io.Reader) error {
	f, targetPath, err := d.CreateFile(filename)
	if err != nil {
		return fmt.Errorf("failed to open target file: %w", err)
	}

	_, err = io.Copy(io.MultiWriter(f, d), &readerContext{ctx: d.ctx, r: stream})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(targetPath)
		return fmt.Errorf("failed to save stream: %w", err)
	}
	d.path = targetPath
	return nil
}

func (d *download) Write(p []byte) (n int, err error) {
	n = len(p)
	d.AddDownloadedBytes(int64(n))
	return n, nil
}

func (d *download) targetPath(filename string) string {
	return filepath.Join(d.targetDir, filename)
}

type DownloadBuilder interface {
	Build() (Download, error)
	WithContext(ctx context.Context) DownloadBuilder
	WithProgressCallback(f ProgressFunc) DownloadBuilder
	WithTargetDir(dir string) DownloadBuilder
}

type downloadBuilder struct {
	ctx              context.Context
	progressCallback ProgressFunc
	targetDir        string
}

func NewDownloadBuilder() DownloadBuilder {
	return &downloadBuilder{
		ctx:       context.Background(),
		targetDir: ".",
	}
}

func (b *downloadBuilder) Build() (Download, error) {
	if b.targetDir == "" {
		return nil, fmt.Errorf("%w: empty target directory", ErrInvalidDestination)
	}
	d := download{
		ctx:              b.ctx,
		progressCallback: b.progressCallback,
		targetDir:        b.targetDir,
	}
	return &d, nil
}

func (b *downloadBuilder) WithContext(ctx context.Context) DownloadBuilder {
	b.ctx = ctx
	return b
}

func (b *downloadBuilder) WithProgressCallback(f ProgressFunc) DownloadBuilder {
	b.progressCallback = f
	return b
}

func (b *downloadBuilder) WithTargetDir(dir string) DownloadBuilder {
	b.targetDir = dir
	return b
}
