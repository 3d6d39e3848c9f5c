package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/acsdata/internal/acs"
	"github.com/roach88/acsdata/internal/store"
)

// FetchOptions holds flags for the fetch command.
type FetchOptions struct {
	*RootOptions
	Year          int
	Horizon       string
	Survey        string
	Root          string
	States        []string
	Download      bool
	JoinHousehold bool
	Database      string
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FetchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Load ACS PUMS data for a set of states",
		Long: `Load per-state ACS PUMS CSVs into one table, downloading missing files
from the Census service when --download is set.

Completed downloads are recorded in the inventory database (see "pums cache").

Example:
  pums fetch --year 2018 --horizon 5-Year --survey person --states TN,CA --download
  pums fetch --year 2016 --horizon 5-Year --survey person --states tn --join-household`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}

	addDatasetFlags(cmd, &opts.Year, &opts.Horizon, &opts.Survey, &opts.Root)
	cmd.Flags().StringSliceVar(&opts.States, "states", nil, "state codes, e.g. TN,CA (required; ALL for every state)")
	cmd.Flags().BoolVar(&opts.Download, "download", false, "download missing files from the Census service")
	cmd.Flags().BoolVar(&opts.JoinHousehold, "join-household", false, "join household columns onto person rows")
	cmd.Flags().StringVar(&opts.Database, "db", "", "inventory database path (default {root}/inventory.db)")
	_ = cmd.MarkFlagRequired("states")

	return cmd
}

// addDatasetFlags registers the flags shared by fetch, dict, and plan.
func addDatasetFlags(cmd *cobra.Command, year *int, horizon, survey, root *string) {
	cmd.Flags().IntVar(year, "year", 0, "survey year, e.g. 2018 (required)")
	cmd.Flags().StringVar(horizon, "horizon", string(acs.HorizonOneYear), "estimate horizon (1-Year|5-Year)")
	if survey != nil {
		cmd.Flags().StringVar(survey, "survey", string(acs.SurveyPerson), "survey type (person|household)")
	}
	cmd.Flags().StringVar(root, "root", "", "cache root directory (default ./data)")
	_ = cmd.MarkFlagRequired("year")
}

// fetchSummary is the fetch command's result payload.
type fetchSummary struct {
	Rows       int      `json:"rows"`
	Columns    int      `json:"columns"`
	Year       int      `json:"year"`
	Horizon    string   `json:"horizon"`
	Survey     string   `json:"survey"`
	States     []string `json:"states"`
	Downloaded []string `json:"downloaded,omitempty"`
}

func (s fetchSummary) String() string {
	p := message.NewPrinter(language.English)
	line := p.Sprintf("loaded %d rows x %d columns (%s %d %s, states %s)",
		s.Rows, s.Columns, s.Survey, s.Year, s.Horizon, strings.Join(s.States, ","))
	if len(s.Downloaded) > 0 {
		line += p.Sprintf("; downloaded %d file(s)", len(s.Downloaded))
	}
	return line
}

func runFetch(cmd *cobra.Command, opts *FetchOptions) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := LoadConfig(opts.ConfigFile)
	if err != nil {
		return failCommand(formatter, ExitCommandError, "failed to load config", err)
	}
	root := cfg.rootDir(opts.Root)

	ds, err := acs.New(acs.Config{
		SurveyYear: opts.Year,
		Horizon:    acs.Horizon(opts.Horizon),
		Survey:     acs.Survey(opts.Survey),
		RootDir:    root,
	}, cfg.Options()...)
	if err != nil {
		return failCommand(formatter, ExitCommandError, "invalid dataset flags", err)
	}

	resolutions, err := ds.Resolve(opts.States)
	if err != nil {
		return failCommand(formatter, ExitFailure, "failed to resolve states", err)
	}

	// Paths absent before the call are the ones this run downloads.
	var missing []acs.Resolution
	for _, res := range resolutions {
		if _, err := os.Stat(res.Path); os.IsNotExist(err) {
			missing = append(missing, res)
		}
	}

	data, err := ds.GetData(cmd.Context(), acs.GetDataOptions{
		States:        opts.States,
		Download:      opts.Download,
		JoinHousehold: opts.JoinHousehold,
	})
	if err != nil {
		return failCommand(formatter, ExitFailure, "failed to load data", err)
	}

	summary := fetchSummary{
		Rows:    data.Nrow(),
		Columns: data.Ncol(),
		Year:    opts.Year,
		Horizon: opts.Horizon,
		Survey:  opts.Survey,
	}
	for _, res := range resolutions {
		summary.States = append(summary.States, res.State)
	}

	if opts.Download && len(missing) > 0 {
		downloaded, err := recordDownloads(cmd, opts, formatter, root, missing)
		if err != nil {
			return err
		}
		summary.Downloaded = downloaded
	}

	return formatter.Success(summary)
}

// recordDownloads writes inventory rows for the files this run fetched.
func recordDownloads(cmd *cobra.Command, opts *FetchOptions, formatter *OutputFormatter, root string, missing []acs.Resolution) ([]string, error) {
	dbPath := opts.Database
	if dbPath == "" {
		dbPath = filepath.Join(root, "inventory.db")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, failCommand(formatter, ExitCommandError, "failed to open inventory database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing inventory database", "error", closeErr)
		}
	}()

	var downloaded []string
	for _, res := range missing {
		info, err := os.Stat(res.Path)
		if err != nil {
			// The join path downloads household files under its own
			// resolutions; a person-side miss that never materialized
			// here is a bug, not an inventory entry.
			return nil, failCommand(formatter, ExitCommandError, fmt.Sprintf("downloaded file missing at %s", res.Path), err)
		}
		rec, err := st.RecordFetch(cmd.Context(), store.FetchRecord{
			SurveyYear: opts.Year,
			Horizon:    opts.Horizon,
			Survey:     opts.Survey,
			State:      res.State,
			SourceURL:  res.URL,
			LocalPath:  res.Path,
			SizeBytes:  info.Size(),
		})
		if err != nil {
			return nil, failCommand(formatter, ExitCommandError, "failed to record download", err)
		}
		slog.Debug("recorded download", "state", rec.State, "path", rec.LocalPath, "bytes", rec.SizeBytes)
		downloaded = append(downloaded, res.State)
	}
	return downloaded, nil
}
