package classsearch

import "strings"

// extractBetween returns the text between the closest occurrence of start
// preceding the last occurrence of end. skipEnd skips that many trailing
// occurrences of end first, which is how the progress line's second-to-last
// counter is reached when two counters share a line.
//
// An empty string means no field is present on the line. Missing markers are
// expected on noisy lines and are never an error.
func extractBetween(line, start, end string, skipEnd int) string {
	hi := len(line)
	for i := 0; i <= skipEnd; i++ {
		j := strings.LastIndex(line[:hi], end)
		if j < 0 {
			return ""
		}
		hi = j
	}
	lo := strings.LastIndex(line[:hi], start)
	if lo < 0 {
		return ""
	}
	return line[lo+len(start) : hi]
}
