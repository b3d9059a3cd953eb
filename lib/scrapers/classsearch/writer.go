package classsearch

import (
	"fmt"
	"io"
	"strings"
)

const (
	documentHeader = "{\n    \"classes\": [\n"
	documentFooter = "    ]\n}\n"
	recordSep      = ",\n"
)

// DocumentWriter emits the class document incrementally: each completed
// record is written immediately, followed by a separator, and Close patches
// the separator left dangling by the last record. The whole response set is
// never held in memory.
//
// String fields go out verbatim; the feed never produces quotes or
// backslashes in them and the byte format is pinned by the loaders.
type DocumentWriter struct {
	out io.WriteSeeker

	// byte offset where the document resumes writing
	offset int64
	// offset of the comma that followed the most recent record
	lastSep int64
	count   int
	closed  bool
}

// NewDocumentWriter writes the document header to out and returns a writer
// ready to receive records.
func NewDocumentWriter(out io.WriteSeeker) (*DocumentWriter, error) {
	w := &DocumentWriter{out: out, lastSep: -1}
	if err := w.writeString(documentHeader); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *DocumentWriter) writeString(s string) error {
	n, err := io.WriteString(w.out, s)
	w.offset += int64(n)
	return err
}

// WriteRecord appends one record and a trailing separator.
func (w *DocumentWriter) WriteRecord(rec ClassRecord) error {
	if w.closed {
		return fmt.Errorf("classsearch: write on closed document")
	}
	if err := w.writeString(formatRecord(rec)); err != nil {
		return err
	}
	w.lastSep = w.offset
	w.count++
	return w.writeString(recordSep)
}

// Close writes the document footer and then overwrites the last record's
// dangling separator with a space, leaving well-formed output. Without the
// patch the document is deliberately left invalid, which is how an aborted
// run is distinguished from a finished one.
func (w *DocumentWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.writeString(documentFooter); err != nil {
		return err
	}
	if w.lastSep < 0 {
		return nil
	}
	if _, err := w.out.Seek(w.lastSep, io.SeekStart); err != nil {
		return err
	}
	if _, err := io.WriteString(w.out, " "); err != nil {
		return err
	}
	_, err := w.out.Seek(0, io.SeekEnd)
	return err
}

// Count reports how many records have been written.
func (w *DocumentWriter) Count() int {
	return w.count
}

func formatRecord(rec ClassRecord) string {
	var b strings.Builder
	b.WriteString("        {\n")
	fmt.Fprintf(&b, "            \"code\": \"%s\",\n", rec.Code)
	fmt.Fprintf(&b, "            \"name\": \"%s\",\n", rec.Name)
	fmt.Fprintf(&b, "            \"number\": %d,\n", rec.Number)

	b.WriteString("            \"instructors\": [\n")
	for i, instructor := range rec.Instructors {
		fmt.Fprintf(&b, "                \"%s\"", instructor)
		if i < len(rec.Instructors)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("            ],\n")

	b.WriteString("            \"meetings\": [\n")
	for i, m := range rec.Meetings {
		b.WriteString("                [\n")
		fmt.Fprintf(&b, "                    \"%s\",\n", m.Location)
		fmt.Fprintf(&b, "                    \"%s\"\n", m.Time)
		b.WriteString("                ]")
		if i < len(rec.Meetings)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("            ],\n")

	fmt.Fprintf(&b, "            \"mode\": \"%s\",\n", rec.Mode)
	fmt.Fprintf(&b, "            \"last_updated\": \"%s\"\n", rec.LastUpdated)
	b.WriteString("        }")
	return b.String()
}
