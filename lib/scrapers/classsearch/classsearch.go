// Package classsearch scrapes the UCSC Class Search feed into a structured
// class document. The feed is paginated, form-POST driven, and returns
// markup that is not well-formed end-to-end, so extraction works line by
// line against known fragments instead of parsing an HTML tree.
package classsearch

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("scrapers/classsearch")

// Meeting is one location/time pairing for a class session. Location is
// empty for fully remote sessions.
type Meeting struct {
	Location string
	Time     string
}

// ClassRecord is the structured representation of one course offering.
// Number is the authoritative identifier within a term; Code is the
// human-readable catalog code and is not unique across terms.
type ClassRecord struct {
	Code        string
	Name        string
	Number      int
	Instructors []string
	Meetings    []Meeting
	Mode        string
	LastUpdated string
}
