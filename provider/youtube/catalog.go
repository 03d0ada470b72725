package youtube

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"github.com/alanbriolat/video-fetcher"
)

// Client is the subset of *youtube.Client used by Catalog.
type Client interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetPlaylistContext(ctx context.Context, url string) (*youtube.Playlist, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

var _ Client = (*youtube.Client)(nil)

// Catalog implements video_fetcher.StreamCatalog and video_fetcher.PlaylistLoader on top of a YouTube client.
type Catalog struct {
	client Client
	config video_fetcher.DownloadConfig
	log    *zap.SugaredLogger

	mu sync.Mutex
	// Most recent resolution of each video, so Transfer uses the same format list the descriptors came from.
	videos map[string]*youtube.Video
}

func NewCatalog(client Client, config video_fetcher.DownloadConfig) *Catalog {
	if client == nil {
		client = &youtube.Client{}
	}
	return &Catalog{
		client: client,
		config: config,
		log:    zap.S().Named("youtube"),
		videos: make(map[string]*youtube.Video),
	}
}

func (c *Catalog) Resolve(ctx context.Context, ref video_fetcher.VideoRef) (*video_fetcher.Resolution, error) {
	log := c.log.With("video_id", ref.ID)
	log.Debug("resolving video")
	video, err := c.client.GetVideoContext(ctx, refURL(ref))
	if err != nil {
		log.Debugf("failed to get video info: %v", err)
		return nil, video_fetcher.ResolveError(ref.ID, err)
	}
	c.mu.Lock()
	c.videos[video.ID] = video
	c.mu.Unlock()

	streams := ProgressiveStreams(video.Formats)
	log.Debugf("resolved %q with %d of %d formats progressive", video.Title, len(streams), len(video.Formats))
	return &video_fetcher.Resolution{
		Video: video_fetcher.VideoRef{
			ID:    video.ID,
			URL:   VideoURL(video.ID),
			Title: video.Title,
		},
		Streams: streams,
	}, nil
}

func (c *Catalog) Transfer(ctx context.Context, ref video_fetcher.VideoRef, stream video_fetcher.StreamDescriptor, destDir string, onProgress video_fetcher.ProgressFunc) (string, error) {
	video, err := c.video(ctx, ref)
	if err != nil {
		return "", err
	}
	format := findFormat(video.Formats, stream.Itag)
	if format == nil {
		return "", fmt.Errorf("format itag %d no longer available for %s", stream.Itag, ref.ID)
	}
	if ref.Title == "" {
		ref.Title = video.Title
	}
	filename, err := c.config.GetTargetFilename(ref, stream)
	if err != nil {
		return "", fmt.Errorf("failed to build filename: %w", err)
	}

	d, err := video_fetcher.NewDownloadBuilder().
		WithContext(ctx).
		WithTargetDir(destDir).
		WithProgressCallback(onProgress).
		Build()
	if err != nil {
		return "", err
	}

	reader, size, err := c.client.GetStreamContext(d.Context(), video, format)
	if err != nil {
		return "", fmt.Errorf("failed to get stream: %w", err)
	}
	defer reader.Close()
	d.AddExpectedBytes(size)
	c.log.With("video_id", ref.ID).Debugf("saving itag %d (%d bytes) to %s", format.ItagNo, size, filename)
	if err := d.SaveStream(filename, reader); err != nil {
		return "", err
	}
	return d.Path(), nil
}

func (c *Catalog) LoadPlaylist(ctx context.Context, url string) (*video_fetcher.Playlist, error) {
	c.log.Debugf("loading playlist %s", url)
	playlist, err := c.client.GetPlaylistContext(ctx, url)
	if err != nil {
		return nil, video_fetcher.ResolveError(url, err)
	}
	items := make([]video_fetcher.VideoRef, 0, len(playlist.Videos))
	for _, entry := range playlist.Videos {
		if entry == nil || entry.ID == "" {
			continue
		}
		items = append(items, video_fetcher.VideoRef{
			ID:    entry.ID,
			URL:   VideoURL(entry.ID),
			Title: entry.Title,
		})
	}
	return &video_fetcher.Playlist{
		ID:     playlist.ID,
		Title:  playlist.Title,
		Author: playlist.Author,
		Items:  items,
	}, nil
}

func (c *Catalog) video(ctx context.Context, ref video_fetcher.VideoRef) (*youtube.Video, error) {
	c.mu.Lock()
	video, ok := c.videos[ref.ID]
	c.mu.Unlock()
	if ok {
		return video, nil
	}
	video, err := c.client.GetVideoContext(ctx, refURL(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}
	c.mu.Lock()
	c.videos[video.ID] = video
	c.mu.Unlock()
	return video, nil
}

// ProgressiveStreams keeps the formats that carry both audio and video, numbering them from 1 in list order.
func ProgressiveStreams(formats youtube.FormatList) []video_fetcher.StreamDescriptor {
	var streams []video_fetcher.StreamDescriptor
	for _, format := range formats {
		if !isProgressive(format) {
			continue
		}
		streams = append(streams, video_fetcher.StreamDescriptor{
			Index:      len(streams) + 1,
			Resolution: resolution(format),
			FrameRate:  format.FPS,
			MimeType:   strings.SplitN(format.MimeType, ";", 2)[0],
			SizeBytes:  format.ContentLength,
			Itag:       format.ItagNo,
		})
	}
	return streams
}

func isProgressive(format youtube.Format) bool {
	return format.AudioChannels > 0 && strings.HasPrefix(format.MimeType, "video/")
}

func resolution(format youtube.Format) string {
	if format.QualityLabel != "" {
		return format.QualityLabel
	}
	if format.Height > 0 {
		return fmt.Sprintf("%dp", format.Height)
	}
	return format.Quality
}

func findFormat(formats youtube.FormatList, itag int) *youtube.Format {
	for i := range formats {
		if formats[i].ItagNo == itag {
			return &formats[i]
		}
	}
	return nil
}

func refURL(ref video_fetcher.VideoRef) string {
	if ref.URL != "" {
		return ref.URL
	}
	return VideoURL(ref.ID)
}
