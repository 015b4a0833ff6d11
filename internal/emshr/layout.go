package emshr

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrLayoutMismatch is returned when the heading and separator lines do not
	// describe the same number of columns.
	ErrLayoutMismatch = errors.New("heading and separator column counts differ")

	// ErrLineLength is returned when a data line does not match the layout's byte length.
	ErrLineLength = errors.New("line length does not match column layout")

	// ErrMissingColumn is returned when a required column is absent from the heading line.
	ErrMissingColumn = errors.New("required column missing from heading line")

	// ErrFieldEncoding is returned when a kept field is not valid UTF-8 text.
	ErrFieldEncoding = errors.New("field is not valid UTF-8")

	// ErrFieldTooWide is returned by FormatLine when a value does not fit its column.
	ErrFieldTooWide = errors.New("value wider than column")
)

// segment is one step of the decode plan: width bytes that are either kept
// as a named field or skipped.
type segment struct {
	width   int
	keep    bool
	heading string
}

// ColumnLayout decodes fixed-width lines whose columns are described by a
// heading line and a dash separator line beneath it. Every column after the
// first is preceded by one separator byte, which is counted in its width and
// trimmed away on decode.
type ColumnLayout struct {
	headingLine   string
	separatorLine string
	selected      []string

	widths     []int
	headings   []string
	plan       []segment
	lineLength int
}

// NewColumnLayout derives the decode plan for the selected fields from a
// heading/separator pair. The plan is built once and reused for every line.
func NewColumnLayout(selected []string, headingLine, separatorLine string) (*ColumnLayout, error) {
	headingTokens := len(strings.Fields(headingLine))
	separatorTokens := len(strings.Fields(separatorLine))
	if headingTokens != separatorTokens {
		return nil, fmt.Errorf("%w: %d headings, %d separators", ErrLayoutMismatch, headingTokens, separatorTokens)
	}

	l := &ColumnLayout{
		headingLine:   headingLine,
		separatorLine: separatorLine,
		selected:      slices.Clone(selected),
	}
	l.widths = fieldWidths(separatorLine)
	l.headings = columnHeadings(headingLine, l.widths)

	wanted := make(map[string]bool, len(selected))
	for _, name := range selected {
		wanted[name] = true
	}
	l.plan = make([]segment, len(l.widths))
	for i, w := range l.widths {
		l.plan[i] = segment{width: w, keep: wanted[l.headings[i]], heading: l.headings[i]}
		l.lineLength += w
	}
	return l, nil
}

// NewDefaultColumnLayout builds a layout over the reference EMSHR Lite schema.
func NewDefaultColumnLayout(selected []string) (*ColumnLayout, error) {
	return NewColumnLayout(selected, DefaultHeadingLine, DefaultSeparatorLine)
}

func fieldWidths(separatorLine string) []int {
	runs := strings.Fields(separatorLine)
	widths := make([]int, len(runs))
	for i, run := range runs {
		widths[i] = len(run)
		if i > 0 {
			widths[i]++
		}
	}
	return widths
}

func columnHeadings(headingLine string, widths []int) []string {
	headings := make([]string, len(widths))
	begin := 0
	for i, w := range widths {
		end := begin + w
		if begin < len(headingLine) {
			headings[i] = strings.TrimSpace(headingLine[begin:min(end, len(headingLine))])
		}
		begin = end
	}
	return headings
}

// HeadingLine returns the heading line the layout was built from.
func (l *ColumnLayout) HeadingLine() string { return l.headingLine }

// SeparatorLine returns the separator line the layout was built from.
func (l *ColumnLayout) SeparatorLine() string { return l.separatorLine }

// FieldWidths returns the byte width of every column, separator byte included.
func (l *ColumnLayout) FieldWidths() []int { return slices.Clone(l.widths) }

// ColumnHeadings returns the trimmed heading of every column, aligned with FieldWidths.
func (l *ColumnLayout) ColumnHeadings() []string { return slices.Clone(l.headings) }

// SelectedFields returns the field names the layout was asked to keep.
func (l *ColumnLayout) SelectedFields() []string { return slices.Clone(l.selected) }

// SelectedWidths returns FieldWidths with the width of every unselected column negated.
func (l *ColumnLayout) SelectedWidths() []int {
	widths := make([]int, len(l.plan))
	for i, s := range l.plan {
		widths[i] = s.width
		if !s.keep {
			widths[i] = -s.width
		}
	}
	return widths
}

// LineFormat renders the decode plan as width/action pairs, "s" for a kept
// column and "x" for a skipped one, e.g. "8s9s9s7x".
func (l *ColumnLayout) LineFormat() string {
	var b strings.Builder
	for _, s := range l.plan {
		b.WriteString(strconv.Itoa(s.width))
		if s.keep {
			b.WriteByte('s')
		} else {
			b.WriteByte('x')
		}
	}
	return b.String()
}

// LineLength returns the exact byte length of a data line.
func (l *ColumnLayout) LineLength() int { return l.lineLength }

// HasColumn reports whether the heading line names the given column.
func (l *ColumnLayout) HasColumn(name string) bool {
	return slices.Contains(l.headings, name)
}

// Require returns ErrMissingColumn naming the first of names that is absent
// from the heading line.
func (l *ColumnLayout) Require(names ...string) error {
	for _, name := range names {
		if !l.HasColumn(name) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return nil
}

// ParseLine splits line by the decode plan and returns the trimmed values of
// the selected columns. The line must be exactly LineLength bytes.
func (l *ColumnLayout) ParseLine(line []byte) (Fields, error) {
	if len(line) != l.lineLength {
		return Fields{}, fmt.Errorf("%w: got %d bytes, want %d", ErrLineLength, len(line), l.lineLength)
	}

	values := make(map[string]string, len(l.selected))
	offset := 0
	for _, s := range l.plan {
		if s.keep {
			chunk := bytes.TrimSpace(line[offset : offset+s.width])
			if !utf8.Valid(chunk) {
				return Fields{}, fmt.Errorf("%w: column %s", ErrFieldEncoding, s.heading)
			}
			values[s.heading] = string(chunk)
		}
		offset += s.width
	}

	names := make([]string, 0, len(values))
	for _, name := range l.selected {
		if _, ok := values[name]; ok {
			names = append(names, name)
		}
	}
	return Fields{names: names, values: values}, nil
}

// FormatLine renders values, keyed by column heading, as one data line of
// exactly LineLength bytes. Columns without a value are left blank.
func (l *ColumnLayout) FormatLine(values map[string]string) ([]byte, error) {
	line := make([]byte, 0, l.lineLength)
	for i, s := range l.plan {
		room := s.width
		if i > 0 {
			line = append(line, ' ')
			room--
		}
		v := values[s.heading]
		if len(v) > room {
			return nil, fmt.Errorf("%w: column %s holds %d bytes, got %q", ErrFieldTooWide, s.heading, room, v)
		}
		line = append(line, v...)
		line = append(line, bytes.Repeat([]byte{' '}, room-len(v))...)
	}
	return line, nil
}

// Fields holds the decoded values of one line, keyed by column heading.
type Fields struct {
	names  []string
	values map[string]string
}

// Get returns the value of the named field, or "" if it was not decoded.
func (f Fields) Get(name string) string { return f.values[name] }

// Lookup returns the value of the named field and whether it was decoded.
func (f Fields) Lookup(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Names returns the decoded field names in the order they were selected.
func (f Fields) Names() []string { return slices.Clone(f.names) }

// Len returns the number of decoded fields.
func (f Fields) Len() int { return len(f.names) }
