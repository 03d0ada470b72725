package util

import "strings"

const DefaultExt = "mp4"

// ExtFromMime returns the file extension (without dot) for a mime type such as `video/mp4; codecs="avc1"`.
func ExtFromMime(mime string) string {
	base := strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])
	parts := strings.SplitN(base, "/", 2)
	if len(parts) == 2 && parts[1] != "" {
		return strings.ToLower(parts[1])
	}
	return DefaultExt
}
