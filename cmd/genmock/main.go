// Command genmock reads station rows from a CSV file and writes them as an
// EMSHR Lite fixture in the reference column layout. The CSV header names
// EMSHR columns (NCDC, BEG_DT, STATION_NAME, ...); columns it omits are left
// blank. Every line ends in CR CR LF like the published files.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/mock/stations.csv \
//	  -out internal/emshr/testdata/emshr_lite_mock.txt
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/couchcryptid/station-stats/internal/emshr"
)

const lineEnding = "\r\r\n"

func main() {
	csvPath := flag.String("csv", "", "CSV file of station rows keyed by EMSHR column name")
	out := flag.String("out", "", "output path for the EMSHR Lite fixture")
	flag.Parse()

	if *csvPath == "" || *out == "" {
		flag.Usage()
		log.Fatal("missing required flags: -csv, -out")
	}

	n, err := run(*csvPath, *out)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d data lines to %s", n, *out)
}

func run(csvPath, outPath string) (int, error) {
	in, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	rows, err := readRows(in)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", csvPath, err)
	}

	layout, err := emshr.NewDefaultColumnLayout(emshr.SelectedFields)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	if err := writeFixture(f, layout, rows); err != nil {
		f.Close()
		return 0, fmt.Errorf("write %s: %w", outPath, err)
	}
	return len(rows), f.Close()
}

// readRows returns one map per CSV data row keyed by the header names.
func readRows(r io.Reader) ([]map[string]string, error) {
	all, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	header := all[0]
	rows := make([]map[string]string, 0, len(all)-1)
	for _, rec := range all[1:] {
		row := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(rec) {
				row[strings.TrimSpace(h)] = strings.TrimSpace(rec[j])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeFixture(w io.Writer, layout *emshr.ColumnLayout, rows []map[string]string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(layout.HeadingLine() + lineEnding)
	bw.WriteString(layout.SeparatorLine() + lineEnding)
	for i, row := range rows {
		line, err := layout.FormatLine(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		bw.Write(line)
		bw.WriteString(lineEnding)
	}
	return bw.Flush()
}
