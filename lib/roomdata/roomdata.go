// Package roomdata cleans class listings copy-pasted from the enrollment
// portal into csv rows for the database loader, and resolves scraped
// locations against known building names.
package roomdata

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/antzucaro/matchr"
)

// Row is one class in the loader's csv column order.
type Row struct {
	Code       string
	Name       string
	Number     string
	Instructor string
	Room       string
	Days       string
}

// lines the portal interleaves with the data that carry nothing
var noiseLines = map[string]bool{
	"Instructor:":         true,
	"Location:":           true,
	"Instruction Mode:":   true,
	"Add to Cart":         true,
	"Textbooks":           true,
	"Course Readers":      true,
	"In Person":           true,
	"Synchronous Online":  true,
	"Asynchronous Online": true,
	"Hybrid":              true,
}

const dayTimeLabel = "Day and Time:"

// ParsePaste reads raw text copy-pasted from the portal. A line ending in
// "Enrolled" separates classes; label-only lines are noise; the
// "Day and Time:" label runs onto the following line and is rejoined.
func ParsePaste(r io.Reader) ([]Row, error) {
	var classes []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			classes = append(classes, current.String())
			current.Reset()
		}
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.HasSuffix(line, "Enrolled"):
			flush()
		case noiseLines[line]:
		case line == dayTimeLabel:
			current.WriteString(line + " ")
		default:
			current.WriteString(line + "|")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	var rows []Row
	for _, class := range classes {
		row, err := parseClass(class)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseClass splits one pipe-joined class into columns. The first field is
// the heading ("01 CSE 115A   Intro Software Eng"): an enumeration token,
// the spaced-out code, a triple-space gap, then the name.
func parseClass(class string) (Row, error) {
	fields := strings.Split(class, "|")
	if len(fields) < 5 {
		return Row{}, fmt.Errorf("roomdata: class %q has %d fields, want at least 5", class, len(fields))
	}

	heading, name, found := strings.Cut(fields[0], "   ")
	if !found {
		return Row{}, fmt.Errorf("roomdata: heading %q has no code/name separator", fields[0])
	}
	words := strings.Split(heading, " ")
	code := strings.Join(words[1:], "")

	numberWords := strings.Split(fields[1], " ")
	if len(numberWords) < 3 {
		return Row{}, fmt.Errorf("roomdata: %q is not a class number line", fields[1])
	}

	// the room line still carries its type abbreviation ("LEC: Soc Sci 2
	// 075"); drop the first word
	roomWords := strings.Split(fields[3], " ")
	room := strings.Join(roomWords[1:], " ")
	if room == "" {
		room = "TBD"
	}

	days := "TBD"
	if rest := strings.TrimPrefix(fields[4], dayTimeLabel+" "); rest != "" && rest != fields[4] {
		days = rest
	}

	return Row{
		Code:       code,
		Name:       name,
		Number:     numberWords[2],
		Instructor: fields[2],
		Room:       room,
		Days:       days,
	}, nil
}

// WriteCSV writes rows in the loader's column order.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	for _, r := range rows {
		err := cw.Write([]string{r.Code, r.Name, r.Number, r.Instructor, r.Room, r.Days})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// building names rarely match a scraped location verbatim ("Soc Sci 2" vs
// "Social Sciences 2"), so candidates below this similarity are rejected
const matchThreshold = 0.85

// MatchBuilding resolves a scraped meeting location to the closest known
// building name, or reports no confident match.
func MatchBuilding(location string, buildings []string) (string, bool) {
	best := ""
	var bestScore float64
	for _, b := range buildings {
		score := matchr.JaroWinkler(strings.ToLower(location), strings.ToLower(b), false)
		if score > bestScore {
			bestScore = score
			best = b
		}
	}
	if bestScore < matchThreshold {
		return "", false
	}
	return best, true
}
