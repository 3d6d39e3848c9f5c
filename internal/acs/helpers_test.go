package acs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// The fixtures mirror the artificial datasets used to test the upstream
// loader: same columns and file locations as the real surveys, but only a
// handful of rows.

// wideHeader builds a header starting with the given id columns and padded
// with generated names up to total columns.
func wideHeader(idCols []string, prefix string, total int) []string {
	header := append([]string{}, idCols...)
	for i := len(idCols); i < total; i++ {
		header = append(header, fmt.Sprintf("%s%03d", prefix, i+1))
	}
	return header
}

// fixtureRows builds one row per serial: the first column is the serial
// number, every other column a small integer.
func fixtureRows(header []string, serials []string) [][]string {
	rows := make([][]string, len(serials))
	for i, serial := range serials {
		row := make([]string, len(header))
		row[0] = serial
		for j := 1; j < len(header); j++ {
			row[j] = fmt.Sprint(10*i + j%7)
		}
		rows[i] = row
	}
	return rows
}

func csvBytes(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(header))
	require.NoError(t, w.WriteAll(rows))
	return buf.Bytes()
}

func writeCSVFile(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, csvBytes(t, header, rows), 0o644))
}

// zipBytes builds an in-memory ZIP archive with a single member, the same
// shape as the archives the Census serves.
func zipBytes(t *testing.T, member string, contents []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(member)
	require.NoError(t, err)
	_, err = w.Write(contents)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func mustNew(t *testing.T, cfg Config, opts ...Option) *DataSource {
	t.Helper()
	ds, err := New(cfg, opts...)
	require.NoError(t, err)
	return ds
}
