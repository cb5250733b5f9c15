// Package subtitle parses, translates, and reassembles SRT timed-caption
// files. Entry indices and timestamps travel through translation
// untouched; only the text field is ever replaced.
package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/indic-translate/backend/internal/translate"
)

var timestampRe = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2}),(\d{3})$`)

// Timestamp is an SRT time offset with millisecond precision.
type Timestamp struct {
	d time.Duration
}

// ParseTimestamp parses "HH:MM:SS,mmm".
func ParseTimestamp(s string) (Timestamp, error) {
	parts := strings.SplitN(strings.Replace(s, ",", ":", 1), ":", 4)
	if len(parts) != 4 {
		return Timestamp{}, fmt.Errorf("bad timestamp %q", s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	ms, err4 := strconv.Atoi(parts[3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return Timestamp{}, fmt.Errorf("bad timestamp %q", s)
	}
	d := time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond
	return Timestamp{d: d}, nil
}

func (t Timestamp) String() string {
	d := t.d
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// Before reports whether t is at or before other.
func (t Timestamp) Before(other Timestamp) bool { return t.d <= other.d }

// Entry is one timed caption: original index, time range, and one or more
// text lines.
type Entry struct {
	Index int
	Start Timestamp
	End   Timestamp
	Lines []string
}

// FlatText joins the entry's lines into a single line for translation.
func (e *Entry) FlatText() string {
	return strings.TrimSpace(strings.Join(e.Lines, " "))
}

// Document is an ordered sequence of caption entries.
type Document struct {
	Entries []Entry
}

// Parse scans raw SRT content. It tolerates CRLF line endings and stray
// blank lines between an entry's index and timestamp, and skips garbage
// between entries. Zero recognizable entries is a validation failure.
func Parse(raw string) (*Document, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	doc := &Document{}
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		index, err := strconv.Atoi(line)
		if err != nil || index <= 0 {
			i++
			continue
		}

		// Stray blank lines may separate the index from its timestamp.
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j >= len(lines) {
			break
		}

		match := timestampRe.FindStringSubmatch(strings.TrimSpace(lines[j]))
		if match == nil {
			i++
			continue
		}
		startTS, endTS, tsErr := parseTimestampLine(match)
		if tsErr != nil || !startTS.Before(endTS) {
			i = j + 1
			continue
		}

		// Collect text lines until a blank line or end of input.
		var text []string
		k := j + 1
		for k < len(lines) && strings.TrimSpace(lines[k]) != "" {
			text = append(text, strings.TrimSpace(lines[k]))
			k++
		}
		if len(text) == 0 {
			i = k
			continue
		}

		doc.Entries = append(doc.Entries, Entry{
			Index: index,
			Start: startTS,
			End:   endTS,
			Lines: text,
		})
		i = k
	}

	if len(doc.Entries) == 0 {
		return nil, translate.Validationf("malformed subtitle content")
	}
	return doc, nil
}

func parseTimestampLine(match []string) (Timestamp, Timestamp, error) {
	start, err := ParseTimestamp(fmt.Sprintf("%s:%s:%s,%s", match[1], match[2], match[3], match[4]))
	if err != nil {
		return Timestamp{}, Timestamp{}, err
	}
	end, err := ParseTimestamp(fmt.Sprintf("%s:%s:%s,%s", match[5], match[6], match[7], match[8]))
	if err != nil {
		return Timestamp{}, Timestamp{}, err
	}
	return start, end, nil
}

// Serialize renders the document in SRT form: index, timestamp line, text
// lines, one blank line after each entry.
func (d *Document) Serialize() string {
	var sb strings.Builder
	for _, e := range d.Entries {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n", e.Index, e.Start, e.End, strings.Join(e.Lines, "\n"))
	}
	return sb.String()
}
