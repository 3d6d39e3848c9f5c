package acs

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// dictionaryColumns is the fixed width of the data dictionary frame.
// Source rows are ragged; they are padded or truncated to this width.
// Column 0 distinguishes NAME records (field definitions) from VAL records
// (enumerated values); column 2 flags the field as C (categorical) or
// N (numeric).
const dictionaryColumns = 7

// GetDefinitions returns the PUMS data dictionary for this configuration:
// a 7-column string frame describing field names, value codes, and
// categorical-vs-numeric type markers.
//
// Dictionaries exist for vintages from 2017 on; earlier years fail with a
// configuration error. The dictionary is cached under the same
// {root}/{year}/{horizon} directory as the data files, and the download
// rule matches GetData: a cache miss with download disabled fails without
// touching the network.
func (ds *DataSource) GetDefinitions(ctx context.Context, download bool) (dataframe.DataFrame, error) {
	if ds.cfg.SurveyYear < minDictionaryYear {
		return dataframe.DataFrame{}, newConfigurationError(
			"no CSV data dictionary published before %d (survey year %d)", minDictionaryYear, ds.cfg.SurveyYear)
	}

	path := ds.dictionaryPath()
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return dataframe.DataFrame{}, fmt.Errorf("stat %s: %w", path, err)
		}
		if !download {
			return dataframe.DataFrame{}, newFileNotFoundError(path)
		}
		if err := ds.downloadDictionary(ctx, path); err != nil {
			return dataframe.DataFrame{}, err
		}
	}

	return readDictionary(path)
}

// downloadDictionary fetches the dictionary CSV and verifies it parses
// before committing it to the cache, so an HTML error page or truncated
// payload is reported as a download failure rather than cached.
func (ds *DataSource) downloadDictionary(ctx context.Context, path string) error {
	url := ds.dictionaryURL()
	body, err := ds.get(ctx, url)
	if err != nil {
		return err
	}

	if _, err := parseDictionary(bytes.NewReader(body)); err != nil {
		return newDownloadError(url, "response is not a parseable data dictionary", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readDictionary(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df, err := parseDictionary(f)
	if err != nil {
		return dataframe.DataFrame{}, newDataIntegrityError(fmt.Sprintf("parse %s", path), err)
	}
	return df, nil
}

// parseDictionary reads the headerless dictionary CSV into a 7-column
// string frame. Every column stays string typed: value codes like "01" are
// identifiers, not numbers.
func parseDictionary(r io.Reader) (dataframe.DataFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dictionary is empty")
	}

	records := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, dictionaryColumns)
		copy(padded, row)
		records[i] = padded
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}
