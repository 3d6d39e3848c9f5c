package cli

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// smallPersonCSV builds a narrow person-survey fixture with the given
// serial numbers, one row each.
func smallPersonCSV(t *testing.T, serials []string) []byte {
	t.Helper()
	header := []string{"SERIALNO", "SPORDER", "AGEP", "PINCP"}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(header))
	for i, serial := range serials {
		require.NoError(t, w.Write([]string{serial, "1", fmt.Sprint(20 + i), fmt.Sprint(1000 * i)}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return buf.Bytes()
}

func writeFixture(t *testing.T, path string, contents []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, contents, 0o644))
}

func zipFixture(t *testing.T, member string, contents []byte) []byte {
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

// runCommand executes a command with the given args and returns its output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decodeResponse parses a JSON-format CLI response.
func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}
