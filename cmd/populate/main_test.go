package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"databreach-registry/internal/usecase/populate"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "breaches.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
- entity: {name: Acme, organization_type: [retail]}
  year: 2021
  records: 10
  method: hacked
  sources: []
`), 0o600))

	elems, err := readFile(path)
	require.NoError(t, err)
	require.Len(t, elems, 1)
	req, err := elems[0].Request()
	require.NoError(t, err)
	assert.Equal(t, "Acme", *req.Entity.Name)

	_, err = readFile(filepath.Join(dir, "breaches.csv"))
	assert.ErrorIs(t, err, populate.ErrUnsupportedFormat)

	_, err = readFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPrintSummary(t *testing.T) {
	res := populate.Result{
		Created:  2,
		Failures: []populate.Failure{{Index: 1, Err: errors.New("year: must be at least 1970")}},
	}

	var text bytes.Buffer
	require.NoError(t, printSummary(&text, "text", "in.json", 3, res))
	assert.Equal(t, "in.json: 3 documents, 2 created, 1 failed\n  #1: year: must be at least 1970\n", text.String())

	var out bytes.Buffer
	require.NoError(t, printSummary(&out, "json", "in.json", 3, res))
	var got SummaryOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, SummaryOutput{
		File: "in.json", Total: 3, Created: 2, Failed: 1,
		Failures: []FailureOutput{{Index: 1, Error: "year: must be at least 1970"}},
	}, got)
}
