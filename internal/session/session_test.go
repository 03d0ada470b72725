package session

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/download"
)

type fakeCatalog struct {
	// Stream counts by video ID; missing IDs fail to resolve.
	streams  map[string]int
	resolved []string
}

func (c *fakeCatalog) Resolve(_ context.Context, ref video_fetcher.VideoRef) (*video_fetcher.Resolution, error) {
	c.resolved = append(c.resolved, ref.ID)
	n, ok := c.streams[ref.ID]
	if !ok {
		return nil, video_fetcher.ResolveError(ref.ID, errors.New("video is private"))
	}
	res := &video_fetcher.Resolution{Video: video_fetcher.VideoRef{ID: ref.ID, Title: "Title " + ref.ID}}
	for i := 1; i <= n; i++ {
		res.Streams = append(res.Streams, video_fetcher.StreamDescriptor{Index: i, Resolution: "720p", FrameRate: 30, MimeType: "video/mp4"})
	}
	return res, nil
}

func (c *fakeCatalog) Transfer(context.Context, video_fetcher.VideoRef, video_fetcher.StreamDescriptor, string, video_fetcher.ProgressFunc) (string, error) {
	return "", errors.New("not used")
}

type fakeConsole struct {
	inputs  []string
	prompts []string
	output  []string
	errors  []string
}

func (c *fakeConsole) Prompt(text string) (string, error) {
	c.prompts = append(c.prompts, text)
	if len(c.inputs) == 0 {
		return "", io.EOF
	}
	line := c.inputs[0]
	c.inputs = c.inputs[1:]
	return line, nil
}

func (c *fakeConsole) Title(msg string)   { c.output = append(c.output, msg) }
func (c *fakeConsole) Info(msg string)    { c.output = append(c.output, msg) }
func (c *fakeConsole) Success(msg string) { c.output = append(c.output, msg) }
func (c *fakeConsole) Error(msg string)   { c.errors = append(c.errors, msg) }
func (c *fakeConsole) Progress() download.ProgressSink {
	return nopSink{}
}

type nopSink struct{}

func (nopSink) Update(int64, int64) {}
func (nopSink) Finish()             {}

type downloadCall struct {
	videoID string
	index   int
	destDir string
}

type fakeDownloader struct {
	calls []downloadCall
	err   error
}

func (d *fakeDownloader) Download(_ context.Context, res *video_fetcher.Resolution, index int, destDir string, _ *download.Options) (string, error) {
	d.calls = append(d.calls, downloadCall{res.Video.ID, index, destDir})
	return "", d.err
}

type fixture struct {
	catalog    *fakeCatalog
	console    *fakeConsole
	downloader *fakeDownloader
	session    *Session
}

func newFixture(streams map[string]int, inputs ...string) *fixture {
	f := &fixture{
		catalog:    &fakeCatalog{streams: streams},
		console:    &fakeConsole{inputs: inputs},
		downloader: &fakeDownloader{},
	}
	f.session = New(Config{Catalog: f.catalog, Console: f.console, Downloader: f.downloader})
	f.session.folder = "/downloads/Mix"
	return f
}

func threeItems() PlaylistState {
	return PlaylistState{
		Title: "Mix",
		Items: []video_fetcher.VideoRef{{ID: "one"}, {ID: "two"}, {ID: "three"}},
	}
}

func TestRunQuitTerminates(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 2, "two": 2, "three": 2}, "next", "QUIT")

	assert.Equal(Terminate, f.session.Run(context.Background(), threeItems()))
	assert.Equal([]string{"one", "two"}, f.catalog.resolved)
	assert.Empty(f.downloader.calls)
	assert.Contains(f.console.prompts[1], "[2 of 3]")
}

func TestRunBackReturnsToPrompt(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 2}, "back")

	assert.Equal(ReturnToURLPrompt, f.session.Run(context.Background(), threeItems()))
}

func TestRunExhaustionReturnsToPrompt(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 2, "two": 2, "three": 2}, "1", "2", "1")

	assert.Equal(ReturnToURLPrompt, f.session.Run(context.Background(), threeItems()))
	assert.Equal([]downloadCall{
		{"one", 1, "/downloads/Mix"},
		{"two", 2, "/downloads/Mix"},
		{"three", 1, "/downloads/Mix"},
	}, f.downloader.calls)
}

func TestRunNextAtEnd(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 1, "two": 1, "three": 1}, "next", "next", "next", "next", "previous", "quit")

	assert.Equal(Terminate, f.session.Run(context.Background(), threeItems()))
	assert.Equal([]string{"No next video.", "No next video."}, f.console.errors)
	assert.Equal([]string{"one", "two", "three", "two"}, f.catalog.resolved)
}

func TestRunPreviousAtStart(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 1}, "previous", "quit")

	assert.Equal(Terminate, f.session.Run(context.Background(), threeItems()))
	assert.Equal([]string{"No previous video."}, f.console.errors)
	assert.Equal([]string{"one"}, f.catalog.resolved, "staying does not resolve again")
}

func TestRunSkipsItemWithoutStreams(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 2, "two": 0, "three": 2}, "next", "quit")

	assert.Equal(Terminate, f.session.Run(context.Background(), threeItems()))
	assert.Equal([]string{"one", "two", "three"}, f.catalog.resolved)
	assert.Equal([]string{"No available streams."}, f.console.errors)
	assert.Len(f.console.prompts, 2, "item without streams is never offered for selection")
	assert.Contains(f.console.prompts[1], "[3 of 3]")
}

func TestRunSkipsUnresolvableLastItem(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 1, "two": 1}, "1", "1")

	assert.Equal(ReturnToURLPrompt, f.session.Run(context.Background(), threeItems()))
	require.Len(t, f.console.errors, 1)
	assert.True(strings.HasPrefix(f.console.errors[0], "Error: "))
	assert.Contains(f.console.errors[0], "video is private")
	assert.Len(f.downloader.calls, 2)
}

func TestRunInvalidSelectionReprompts(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 2, "two": 2}, "3", "0", "abc", "2", "quit")

	assert.Equal(Terminate, f.session.Run(context.Background(), threeItems()))
	assert.Equal([]string{"Invalid stream number.", "Invalid stream number.", "Invalid stream number."}, f.console.errors)
	assert.Equal([]downloadCall{{"one", 2, "/downloads/Mix"}}, f.downloader.calls)
	assert.Equal([]string{"one", "two"}, f.catalog.resolved)
}

func TestRunDownloadFailureContinues(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 1, "two": 1, "three": 1}, "1", "1", "quit")
	f.downloader.err = &video_fetcher.TransferError{Err: errors.New("connection reset")}

	assert.Equal(Terminate, f.session.Run(context.Background(), threeItems()))
	assert.Len(f.downloader.calls, 2)
	assert.Equal([]string{"one", "two", "three"}, f.catalog.resolved)
}

func TestRunEndOfInputTerminates(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 1})

	assert.Equal(Terminate, f.session.Run(context.Background(), threeItems()))
}

func TestRunCancelledContext(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 1}, "1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(Terminate, f.session.Run(ctx, threeItems()))
	assert.Empty(f.catalog.resolved)
}

func TestRunShowsStreams(t *testing.T) {
	assert := assert_.New(t)
	f := newFixture(map[string]int{"one": 2}, "quit")

	f.session.Run(context.Background(), threeItems())
	assert.Equal([]string{
		"\nVideo 1 of 3",
		"\nTitle: Title one",
		"\nAvailable streams:",
		"1. 720p, 30fps, video/mp4, Size: 0MB",
		"2. 720p, 30fps, video/mp4, Size: 0MB",
	}, f.console.output)
}

func TestPrepareFolder(t *testing.T) {
	assert := assert_.New(t)
	dest := t.TempDir()
	s := New(Config{})

	folder, err := s.PrepareFolder(dest, "Lo-fi: beats/2024!")
	require.NoError(t, err)
	assert.Equal(filepath.Join(dest, "Lofi beats2024"), folder)
	assert.DirExists(folder)
	assert.Equal(folder, s.Folder())

	// Once prepared the folder is fixed
	again, err := s.PrepareFolder(t.TempDir(), "Other")
	require.NoError(t, err)
	assert.Equal(folder, again)

	// An existing folder is reused
	other := New(Config{})
	reused, err := other.PrepareFolder(dest, "Lo-fi: beats/2024!")
	require.NoError(t, err)
	assert.Equal(folder, reused)
	assert.NotEqual(s.ID(), other.ID())
}

func TestPrepareFolderInvalid(t *testing.T) {
	assert := assert_.New(t)
	dest := t.TempDir()
	s := New(Config{})

	_, err := s.PrepareFolder(filepath.Join(dest, "missing"), "Mix")
	assert.ErrorIs(err, video_fetcher.ErrInvalidDestination)
	assert.Empty(s.Folder())

	require.NoError(t, os.WriteFile(filepath.Join(dest, "Mix"), nil, 0644))
	_, err = s.PrepareFolder(dest, "Mix")
	assert.ErrorIs(err, video_fetcher.ErrInvalidDestination)
}
