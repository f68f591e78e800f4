package parse

import "strings"

// irrelevantExtensions lists path suffixes that never point at crawlable
// pages: images, stylesheets, scripts, fonts, archives, media, data files.
var irrelevantExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".css", ".js", ".ico",
	".svg", ".woff", ".ttf", ".otf", ".eot", ".pdf", ".zip", ".txt",
	".xml", ".mp4", ".webm", ".avi", ".mp3", ".json",
}

// IsRelevantURL reports whether the URL path does not end in a denylisted
// extension. The check is case-insensitive.
func IsRelevantURL(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range irrelevantExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}
