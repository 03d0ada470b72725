package video_fetcher

import (
	"context"
	"fmt"
	"math"
)

// A VideoRef identifies one remote video. Title is empty until the video has been resolved.
type VideoRef struct {
	ID    string
	URL   string
	Title string
}

func (r VideoRef) String() string {
	if r.Title != "" {
		return fmt.Sprintf("%s [%s]", r.Title, r.ID)
	}
	return r.ID
}

// A StreamDescriptor is one selectable variant of a video. Index is 1-based and only meaningful against the
// Resolution it was issued with.
type StreamDescriptor struct {
	Index      int
	Resolution string
	FrameRate  int
	MimeType   string
	SizeBytes  int64
	// Itag identifies the variant to the catalog that issued it.
	Itag int
}

// SizeMB is the size in MiB, rounded to 2 decimal places.
func (d StreamDescriptor) SizeMB() float64 {
	return math.Round(float64(d.SizeBytes)/(1024*1024)*100) / 100
}

// Summary is the short form used when a download starts.
func (d StreamDescriptor) Summary() string {
	return fmt.Sprintf("%s, %dfps, %s", d.Resolution, d.FrameRate, d.MimeType)
}

func (d StreamDescriptor) String() string {
	return fmt.Sprintf("%d. %s, Size: %vMB", d.Index, d.Summary(), d.SizeMB())
}

// A Resolution is the result of resolving a VideoRef. An empty Streams list means the video exists but has no
// progressive streams.
type Resolution struct {
	Video   VideoRef
	Streams []StreamDescriptor
}

func (r *Resolution) HasStreams() bool {
	return len(r.Streams) > 0
}

// Stream returns the descriptor with the given 1-based index, or ErrInvalidSelection.
func (r *Resolution) Stream(index int) (StreamDescriptor, error) {
	if index < 1 || index > len(r.Streams) {
		return StreamDescriptor{}, ErrInvalidSelection
	}
	return r.Streams[index-1], nil
}

// A Playlist is an ordered, named collection of videos. Items are fixed once loaded.
type Playlist struct {
	ID     string
	Title  string
	Author string
	Items  []VideoRef
}

// ProgressFunc receives (bytesDone, bytesTotal) samples while a transfer runs.
type ProgressFunc func(done int64, total int64)

// StreamCatalog resolves videos into progressive stream descriptors and transfers a chosen descriptor to disk.
type StreamCatalog interface {
	// Resolve fetches the title and progressive streams of a video. Ordinals are assigned in the order returned.
	Resolve(ctx context.Context, ref VideoRef) (*Resolution, error)
	// Transfer saves one stream into destDir, returning the path of the written file.
	Transfer(ctx context.Context, ref VideoRef, stream StreamDescriptor, destDir string, onProgress ProgressFunc) (string, error)
}

// PlaylistLoader fetches the ordered item list of a playlist.
type PlaylistLoader interface {
	LoadPlaylist(ctx context.Context, url string) (*Playlist, error)
}
