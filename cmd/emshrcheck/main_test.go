package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sample = filepath.Join("..", "..", "internal", "emshr", "testdata", "emshr_lite_sample.txt")

func TestRun_SampleFile(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, sample, 2, 19)

	// The sample carries one truncated line and one bad date on purpose.
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Phase 2: Line Decode")
	assert.Contains(t, out.String(), "FAIL (2 errors)")
	assert.Contains(t, out.String(), "Records: 22 data lines, 2 stations, 19 locations")
}

func TestRun_WrongExpectation(t *testing.T) {
	var out bytes.Buffer
	run(&out, sample, 3, -1)
	assert.Contains(t, out.String(), "stations: expected 3, got 2")
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, filepath.Join(t.TempDir(), "missing.txt"), -1, -1)
	assert.Equal(t, 1, code)
}
