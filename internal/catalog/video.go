package catalog

import "regexp"

var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/.*v=|youtu\.be/)([^&\n?#]+)`)

// VideoID extracts the YouTube video ID from a watch or short URL.
// Returns "" when the URL carries no recognizable ID.
func VideoID(url string) string {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
