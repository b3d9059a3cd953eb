// Package terms maps human term labels to the numeric codes the class
// search feed understands. The table is static; labels are validated here
// before a scrape is ever started so garbage never reaches the feed.
package terms

import (
	"fmt"
	"sort"
	"strings"
)

var byLabel = map[string]int{
	"spring2023": 2232,
	"winter2023": 2230,
	"fall2022":   2228,
}

// Resolve returns the feed code for a label like "fall2022". Labels are
// case-insensitive.
func Resolve(label string) (int, error) {
	code, ok := byLabel[strings.ToLower(label)]
	if !ok {
		return 0, fmt.Errorf("terms: %q is not a supported term (known: %v)", label, Labels())
	}
	return code, nil
}

// Labels lists the supported term labels in sorted order.
func Labels() []string {
	out := make([]string, 0, len(byLabel))
	for label := range byLabel {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
