package acs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Census PUMS locations. The path shapes below reproduce the Census naming
// scheme exactly; changing them breaks compatibility with the live service.
const (
	defaultDataBaseURL = "https://www2.census.gov/programs-surveys/acs/data/pums"
	defaultDictBaseURL = "https://www2.census.gov/programs-surveys/acs/tech_docs/pums/data_dict"

	// fipsNamingYear is the first vintage where per-state CSVs switched
	// from ss{yy}{p|h}{st}.csv to psam_{p|h}{fips}.csv.
	fipsNamingYear = 2017
)

// Resolution is the resolved remote and local location of one state's data
// file. Resolve computes it without performing any I/O.
type Resolution struct {
	State string `json:"state"`
	URL   string `json:"url"`
	Path  string `json:"path"`
}

func (ds *DataSource) surveyAbbrev() string {
	if ds.cfg.Survey == SurveyHousehold {
		return "h"
	}
	return "p"
}

// archiveName is the remote ZIP name for one state: csv_{p|h}{st}.zip with
// a lower-case state code, identical across vintages.
func (ds *DataSource) archiveName(state string) string {
	return fmt.Sprintf("csv_%s%s.zip", ds.surveyAbbrev(), strings.ToLower(state))
}

// csvName is the archive member and local cache file name for one state.
// From 2017 on the Census names files by numeric FIPS code; earlier
// vintages embed the two-digit year and the lower-case state code.
func (ds *DataSource) csvName(state string) string {
	if ds.cfg.SurveyYear >= fipsNamingYear {
		return fmt.Sprintf("psam_%s%s.csv", ds.surveyAbbrev(), stateFIPS[state])
	}
	return fmt.Sprintf("ss%02d%s%s.csv", ds.cfg.SurveyYear%100, ds.surveyAbbrev(), strings.ToLower(state))
}

func (ds *DataSource) archiveURL(state string) string {
	return fmt.Sprintf("%s/%d/%s/%s", ds.dataBaseURL, ds.cfg.SurveyYear, ds.cfg.Horizon, ds.archiveName(state))
}

// cachePath is a pure function of configuration and state: no two distinct
// datasets collide on the same path.
func (ds *DataSource) cachePath(state string) string {
	return filepath.Join(ds.cfg.RootDir, fmt.Sprint(ds.cfg.SurveyYear), string(ds.cfg.Horizon), ds.csvName(state))
}

// Resolve normalizes and validates the given state codes and returns the
// remote URL and local cache path for each, in input order. The StateAll
// placeholder expands to every known state. No I/O is performed.
func (ds *DataSource) Resolve(states []string) ([]Resolution, error) {
	normalized, err := normalizeStates(states)
	if err != nil {
		return nil, err
	}

	resolutions := make([]Resolution, len(normalized))
	for i, st := range normalized {
		resolutions[i] = Resolution{
			State: st,
			URL:   ds.archiveURL(st),
			Path:  ds.cachePath(st),
		}
	}
	return resolutions, nil
}

// dictionaryName is the remote and local file name of the data dictionary.
// Five-year dictionaries span a vintage range, e.g.
// PUMS_Data_Dictionary_2014-2018.csv.
func (ds *DataSource) dictionaryName() string {
	if ds.cfg.Horizon == HorizonFiveYear {
		return fmt.Sprintf("PUMS_Data_Dictionary_%d-%d.csv", ds.cfg.SurveyYear-4, ds.cfg.SurveyYear)
	}
	return fmt.Sprintf("PUMS_Data_Dictionary_%d.csv", ds.cfg.SurveyYear)
}

func (ds *DataSource) dictionaryURL() string {
	return fmt.Sprintf("%s/%s", ds.dictBaseURL, ds.dictionaryName())
}

func (ds *DataSource) dictionaryPath() string {
	return filepath.Join(ds.cfg.RootDir, fmt.Sprint(ds.cfg.SurveyYear), string(ds.cfg.Horizon), ds.dictionaryName())
}
