package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dictFixture = `NAME,AGEP,N,2,Age
VAL,AGEP,N,2,00,00,Under 1 year
VAL,AGEP,N,2,01..99,01..99,1 to 99 years
NAME,COW,C,1,Class of worker
VAL,COW,C,1,1,1,Employee of a private for-profit company
`

func TestDictFromLocalCache(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "2018", "1-Year", "PUMS_Data_Dictionary_2018.csv"), []byte(dictFixture))

	cmd := NewDictCommand(&RootOptions{Format: "json"})
	out, err := runCommand(t, cmd, "--year", "2018", "--horizon", "1-Year", "--root", root)
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(7), data["columns"])
	assert.Equal(t, float64(2), data["name_records"])
	assert.Equal(t, float64(3), data["val_records"])
}

func TestDictCacheMissWithoutDownload(t *testing.T) {
	cmd := NewDictCommand(&RootOptions{Format: "text"})
	_, err := runCommand(t, cmd, "--year", "2018", "--root", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestDictUnsupportedYear(t *testing.T) {
	cmd := NewDictCommand(&RootOptions{Format: "text"})
	_, err := runCommand(t, cmd, "--year", "2016", "--root", t.TempDir(), "--download")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2017")
}
