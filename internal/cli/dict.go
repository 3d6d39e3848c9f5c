package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/acsdata/internal/acs"
)

// DictOptions holds flags for the dict command.
type DictOptions struct {
	*RootOptions
	Year     int
	Horizon  string
	Root     string
	Download bool
}

// NewDictCommand creates the dict command.
func NewDictCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DictOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Load the PUMS data dictionary",
		Long: `Load the PUMS data dictionary for a vintage: field definitions (NAME
records) and their enumerated values (VAL records). Dictionaries exist for
2017 and later.

Example:
  pums dict --year 2018 --horizon 1-Year --download`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDict(cmd, opts)
		},
	}

	addDatasetFlags(cmd, &opts.Year, &opts.Horizon, nil, &opts.Root)
	cmd.Flags().BoolVar(&opts.Download, "download", false, "download the dictionary if not cached")

	return cmd
}

// dictSummary is the dict command's result payload.
type dictSummary struct {
	Year        int    `json:"year"`
	Horizon     string `json:"horizon"`
	Columns     int    `json:"columns"`
	NameRecords int    `json:"name_records"`
	ValRecords  int    `json:"val_records"`
}

func (s dictSummary) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("data dictionary %d %s: %d field definitions, %d value records",
		s.Year, s.Horizon, s.NameRecords, s.ValRecords)
}

func runDict(cmd *cobra.Command, opts *DictOptions) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := LoadConfig(opts.ConfigFile)
	if err != nil {
		return failCommand(formatter, ExitCommandError, "failed to load config", err)
	}

	// The dictionary is shared by both survey types; person is arbitrary.
	ds, err := acs.New(acs.Config{
		SurveyYear: opts.Year,
		Horizon:    acs.Horizon(opts.Horizon),
		Survey:     acs.SurveyPerson,
		RootDir:    cfg.rootDir(opts.Root),
	}, cfg.Options()...)
	if err != nil {
		return failCommand(formatter, ExitCommandError, "invalid dataset flags", err)
	}

	defs, err := ds.GetDefinitions(cmd.Context(), opts.Download)
	if err != nil {
		return failCommand(formatter, ExitFailure, "failed to load definitions", err)
	}

	summary := dictSummary{
		Year:    opts.Year,
		Horizon: opts.Horizon,
		Columns: defs.Ncol(),
	}
	for _, kind := range defs.Col("X0").Records() {
		switch kind {
		case "NAME":
			summary.NameRecords++
		case "VAL":
			summary.ValRecords++
		}
	}

	return formatter.Success(summary)
}
