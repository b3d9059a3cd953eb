package classsearch

import (
	"strconv"
	"strings"
)

type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldProgress
	fieldHeading
	fieldNumber
	fieldInstructors
	fieldLocation
	fieldDayTime
	fieldMode
)

func (k fieldKind) String() string {
	switch k {
	case fieldProgress:
		return "progress"
	case fieldHeading:
		return "heading"
	case fieldNumber:
		return "number"
	case fieldInstructors:
		return "instructors"
	case fieldLocation:
		return "location"
	case fieldDayTime:
		return "day and time"
	case fieldMode:
		return "mode"
	}
	return "none"
}

// field is one classified line, with only the members for its kind set.
type field struct {
	kind fieldKind

	current, total int
	code, name     string
	number         int
	instructors    []string
	location       string
	times          []string
	mode           string
}

// lineRule pairs a fixed markup fragment with the extractor that applies
// when a line contains it. The rule set is ordered; the first match wins.
// This is deliberately coupled to the feed's markup: the feed is not valid
// HTML end-to-end, so format drift is handled by editing this table.
type lineRule struct {
	marker string
	parse  func(line string) (field, bool)
}

var feedRules = []lineRule{
	{marker: "</b> - <b>", parse: parseProgress},
	{marker: `<div class="panel-heading panel-heading-custom">`, parse: parseHeading},
	{marker: "Class Number:", parse: parseNumber},
	{marker: "Instructor:", parse: parseInstructors},
	{marker: "Location:", parse: parseLocation},
	{marker: "Day and Time:", parse: parseDayTime},
	{marker: "Instruction Mode:", parse: parseMode},
}

// classify inspects one line of the feed and extracts whichever field it
// carries. Lines matching no rule, and lines whose markers turn out to be
// incomplete, are inert.
func classify(line string) (field, bool) {
	for _, rule := range feedRules {
		if !strings.Contains(line, rule.marker) {
			continue
		}
		return rule.parse(line)
	}
	return field{}, false
}

// The progress line holds two counters: the number of classes shown so far
// and the total, each wrapped in a <b>. The total is the last one.
func parseProgress(line string) (field, bool) {
	total, err := strconv.Atoi(extractBetween(line, ">", "</b>", 0))
	if err != nil {
		return field{}, false
	}
	current, err := strconv.Atoi(extractBetween(line, ">", "</b>", 1))
	if err != nil {
		return field{}, false
	}
	return field{kind: fieldProgress, current: current, total: total}, true
}

func parseHeading(line string) (field, bool) {
	s := extractBetween(line, ">", "</a>", 0)
	code, name, found := strings.Cut(s, "&nbsp;&nbsp;&nbsp;")
	if !found {
		return field{}, false
	}
	return field{
		kind: fieldHeading,
		code: strings.ReplaceAll(code, " ", ""),
		name: strings.ReplaceAll(name, "&amp;", "&"),
	}, true
}

func parseNumber(line string) (field, bool) {
	number, err := strconv.Atoi(extractBetween(line, ">", "</a>", 0))
	if err != nil {
		return field{}, false
	}
	return field{kind: fieldNumber, number: number}, true
}

// The instructor block sits between the label's closing tag and the cell's
// </div>; scanning back to the "/" of that closing tag leaves "b> " in
// front, so three characters are dropped. Entries are <br>-separated and
// kept verbatim, placeholder "Staff" entries included.
func parseInstructors(line string) (field, bool) {
	s := extractBetween(line, "/", "</div>", 0)
	if len(s) < 3 {
		return field{}, false
	}
	return field{kind: fieldInstructors, instructors: strings.Split(s[3:], "<br>")}, true
}

// A bare three-letter value is a room-type abbreviation with no room
// attached (fully online sessions); anything longer carries a five
// character "TYP: " prefix in front of the room name.
func parseLocation(line string) (field, bool) {
	location := strings.Trim(extractBetween(line, ">", "</div>", 0), " ")
	if location == "" {
		return field{}, false
	}
	if len(location) == 3 {
		location = ""
	} else if len(location) > 5 {
		location = location[5:]
	} else {
		location = ""
	}
	return field{kind: fieldLocation, location: location}, true
}

func parseDayTime(line string) (field, bool) {
	s := extractBetween(line, "/", "</div>", 0)
	if len(s) < 2 {
		return field{}, false
	}
	s = strings.Trim(s[2:], " ")
	s = strings.ReplaceAll(s, "&nbsp;", "")
	s = strings.ReplaceAll(s, "Cancelled Cancelled", "Cancelled")
	times := strings.Split(s, "<br>")
	for i := range times {
		times[i] = strings.Trim(times[i], " ")
	}
	return field{kind: fieldDayTime, times: times}, true
}

func parseMode(line string) (field, bool) {
	mode := extractBetween(line, ">", "</b>", 0)
	if mode == "" {
		return field{}, false
	}
	return field{kind: fieldMode, mode: mode}, true
}
