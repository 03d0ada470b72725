package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxFilenameLength is the maximum length in bytes of a generated filename.
	MaxFilenameLength = 200
	DefaultFilename   = "video"
	DefaultFolderName = "playlist"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]+`)
	nonWordChars        = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
)

// FolderName strips everything outside the word and whitespace character classes, e.g. for turning a playlist
// title into a directory name.
func FolderName(title string) string {
	name := strings.TrimSpace(nonWordChars.ReplaceAllString(title, ""))
	if name == "" {
		return DefaultFolderName
	}
	return name
}

// SafeFilename replaces path separators and other characters that are invalid in filenames on common platforms.
func SafeFilename(name string) string {
	name = strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(name, "_"))
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return DefaultFilename
	}
	if len(name) > MaxFilenameLength {
		name = truncate(name, MaxFilenameLength)
	}
	return name
}

// truncate shortens s to at most n bytes without splitting a rune, keeping any extension.
func truncate(s string, n int) string {
	ext := ""
	if i := strings.LastIndex(s, "."); i > 0 && len(s)-i <= 10 {
		ext = s[i:]
		s = s[:i]
	}
	limit := n - len(ext)
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return strings.TrimSpace(s[:limit]) + ext
}
