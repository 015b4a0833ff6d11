package stats

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Reporter writes Statistics to a text file, or to stdout when no path is set.
type Reporter struct {
	path   string
	stdout io.Writer
}

// NewReporter creates a Reporter for path. An empty path or "-" selects stdout.
func NewReporter(path string, stdout io.Writer) *Reporter {
	return &Reporter{path: path, stdout: stdout}
}

// Report writes one labelled line per statistic.
func (r *Reporter) Report(s Statistics) error {
	if r.path == "" || r.path == "-" {
		return WriteReport(r.stdout, s)
	}

	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteReport(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

// WriteReport writes s to w in the fixed report order, skipping absent keys.
func WriteReport(w io.Writer, s Statistics) error {
	bw := bufio.NewWriter(w)
	for _, l := range reportLayout {
		v, ok := s[l.key]
		if !ok {
			continue
		}
		if _, err := bw.WriteString(l.label + v + "\n"); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
