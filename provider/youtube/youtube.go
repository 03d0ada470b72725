package youtube

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/generic"
)

const (
	VideoProviderName    = "youtube"
	PlaylistProviderName = "youtube-playlist"
)

var (
	ErrUnrecognisedHost = errors.New("unrecognised hostname")
	ErrNoVideoID        = errors.New("could not extract video ID")
	ErrNoPlaylistID     = errors.New("could not extract playlist ID")
)

var (
	hosts           = generic.NewSet("youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com")
	shortHosts      = generic.NewSet("youtu.be")
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	listIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	videoPathPrefix = []string{"/v/", "/embed/", "/shorts/", "/live/"}
)

func VideoURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}

func PlaylistURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/playlist?list=%s", id)
}

// MatchVideo recognises single video URLs.
//
// Allowed URL formats:
//
//	http(s?)://(www|m|music).youtube.com/watch?v={VIDEO_ID}
//	http(s?)://(www|m).youtube.com/(v|embed|shorts|live)/{VIDEO_ID}
//	http(s?)://youtu.be/{VIDEO_ID}
//
// The scheme may be omitted.
func MatchVideo(s string) (*video_fetcher.Target, error) {
	u, host, err := parseURL(s)
	if err != nil {
		return nil, err
	}
	var id string
	switch {
	case hosts.Contains(host):
		if u.Path == "/watch" {
			id = u.Query().Get("v")
		} else {
			for _, prefix := range videoPathPrefix {
				if strings.HasPrefix(u.Path, prefix) {
					id = strings.SplitN(strings.TrimPrefix(u.Path, prefix), "/", 2)[0]
					break
				}
			}
		}
	case shortHosts.Contains(host):
		id = strings.Trim(u.Path, "/")
	default:
		return nil, ErrUnrecognisedHost
	}
	if !videoIDPattern.MatchString(id) {
		return nil, ErrNoVideoID
	}
	return &video_fetcher.Target{Kind: video_fetcher.KindSingleVideo, ID: id, URL: VideoURL(id)}, nil
}

// MatchPlaylist recognises playlist URLs, i.e. http(s?)://(www|m|music).youtube.com/playlist?list={PLAYLIST_ID}.
func MatchPlaylist(s string) (*video_fetcher.Target, error) {
	u, host, err := parseURL(s)
	if err != nil {
		return nil, err
	}
	if !hosts.Contains(host) {
		return nil, ErrUnrecognisedHost
	}
	if strings.TrimRight(u.Path, "/") != "/playlist" {
		return nil, fmt.Errorf("missing /playlist path")
	}
	id := u.Query().Get("list")
	if !listIDPattern.MatchString(id) {
		return nil, ErrNoPlaylistID
	}
	return &video_fetcher.Target{Kind: video_fetcher.KindPlaylist, ID: id, URL: PlaylistURL(id)}, nil
}

func parseURL(s string) (*url.URL, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", fmt.Errorf("empty input")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("unknown URL scheme %v", u.Scheme)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return u, host, nil
}

// Providers returns the playlist and video providers; the playlist provider always matches first.
func Providers() []video_fetcher.Provider {
	return []video_fetcher.Provider{
		video_fetcher.Provider{Name: PlaylistProviderName, Match: MatchPlaylist}.WithPriority(video_fetcher.PriorityHighest),
		{Name: VideoProviderName, Match: MatchVideo, Priority: video_fetcher.PriorityDefault},
	}
}

func init() {
	for _, p := range Providers() {
		video_fetcher.DefaultProviderRegistry.MustAdd(p)
	}
}
