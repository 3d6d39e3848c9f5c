package acs

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// serialNumberColumn is the household identifier shared by person and
// household records. It is the join key for JoinHousehold.
const serialNumberColumn = "SERIALNO"

// GetDataOptions controls a GetData call.
type GetDataOptions struct {
	// States lists two-letter state codes, case-insensitive. StateAll
	// expands to every known state.
	States []string

	// Download permits fetching missing files from the Census service.
	// When false a cache miss fails without touching the network.
	Download bool

	// JoinHousehold joins household records onto person records by
	// household serial number. Only valid for the person survey.
	JoinHousehold bool
}

// GetData loads the per-state CSVs for this configuration and concatenates
// them row-wise into a single frame. Row count is the sum of per-state row
// counts; the column set must be identical across states and a mismatch is
// surfaced as a data-integrity error rather than coerced.
//
// With JoinHousehold set, household rows for the same states are loaded
// under the same download rule and left-joined onto person rows, so every
// person row is retained even without a household match.
func (ds *DataSource) GetData(ctx context.Context, opts GetDataOptions) (dataframe.DataFrame, error) {
	if opts.JoinHousehold && ds.cfg.Survey != SurveyPerson {
		return dataframe.DataFrame{}, newInvalidJoinError(ds.cfg.Survey)
	}

	resolutions, err := ds.Resolve(opts.States)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	for _, res := range resolutions {
		if err := ds.ensureLocal(ctx, res, opts.Download); err != nil {
			return dataframe.DataFrame{}, err
		}
	}

	data, err := concatStateFiles(resolutions)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	if opts.JoinHousehold {
		household, err := ds.householdCounterpart().GetData(ctx, GetDataOptions{
			States:   opts.States,
			Download: opts.Download,
		})
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		return joinHousehold(data, household)
	}
	return data, nil
}

func concatStateFiles(resolutions []Resolution) (dataframe.DataFrame, error) {
	var data dataframe.DataFrame
	for i, res := range resolutions {
		df, err := readStateFile(res)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		if i == 0 {
			data = df
			continue
		}
		data = data.RBind(df)
		if data.Err != nil {
			return dataframe.DataFrame{}, newDataIntegrityError(
				fmt.Sprintf("column set of %s does not match preceding states", res.Path), data.Err)
		}
	}
	return data, nil
}

func readStateFile(res Resolution) (dataframe.DataFrame, error) {
	f, err := os.Open(res.Path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", res.Path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return dataframe.DataFrame{}, newDataIntegrityError(fmt.Sprintf("parse %s", res.Path), df.Err)
	}
	return df, nil
}

// joinHousehold left-joins household columns onto person rows by household
// serial number. Household columns that duplicate person columns are
// dropped from the household side first, so the result carries the union of
// distinct columns with the join key appearing once.
func joinHousehold(person, household dataframe.DataFrame) (dataframe.DataFrame, error) {
	personCols := make(map[string]bool, len(person.Names()))
	for _, name := range person.Names() {
		personCols[name] = true
	}
	if !personCols[serialNumberColumn] {
		return dataframe.DataFrame{}, newDataIntegrityError(
			fmt.Sprintf("person data has no %s column to join on", serialNumberColumn), nil)
	}

	keep := []string{serialNumberColumn}
	for _, name := range household.Names() {
		if name != serialNumberColumn && !personCols[name] {
			keep = append(keep, name)
		}
	}

	joined := person.LeftJoin(household.Select(keep), serialNumberColumn)
	if joined.Err != nil {
		return dataframe.DataFrame{}, newDataIntegrityError("household join failed", joined.Err)
	}
	return joined, nil
}
