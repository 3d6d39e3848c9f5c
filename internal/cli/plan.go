package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/acsdata/internal/acs"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	Year    int
	Horizon string
	Survey  string
	Root    string
	States  []string
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve remote URLs and cache paths without fetching",
		Long: `Resolve the remote archive URL and local cache path for each state
without touching the network or the filesystem. Useful for prefetch scripts
and for verifying what a fetch would touch.

Example:
  pums plan --year 2018 --horizon 5-Year --survey household --states TN`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts)
		},
	}

	addDatasetFlags(cmd, &opts.Year, &opts.Horizon, &opts.Survey, &opts.Root)
	cmd.Flags().StringSliceVar(&opts.States, "states", nil, "state codes, e.g. TN,CA (required; ALL for every state)")
	_ = cmd.MarkFlagRequired("states")

	return cmd
}

// planResult is the plan command's result payload.
type planResult struct {
	Year        int              `json:"year"`
	Horizon     string           `json:"horizon"`
	Survey      string           `json:"survey"`
	Resolutions []acs.Resolution `json:"resolutions"`
}

func (r planResult) String() string {
	out := fmt.Sprintf("%s %d %s", r.Survey, r.Year, r.Horizon)
	for _, res := range r.Resolutions {
		out += fmt.Sprintf("\n  %s  %s -> %s", res.State, res.URL, res.Path)
	}
	return out
}

func runPlan(cmd *cobra.Command, opts *PlanOptions) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := LoadConfig(opts.ConfigFile)
	if err != nil {
		return failCommand(formatter, ExitCommandError, "failed to load config", err)
	}

	ds, err := acs.New(acs.Config{
		SurveyYear: opts.Year,
		Horizon:    acs.Horizon(opts.Horizon),
		Survey:     acs.Survey(opts.Survey),
		RootDir:    cfg.rootDir(opts.Root),
	}, cfg.Options()...)
	if err != nil {
		return failCommand(formatter, ExitCommandError, "invalid dataset flags", err)
	}

	resolutions, err := ds.Resolve(opts.States)
	if err != nil {
		return failCommand(formatter, ExitFailure, "failed to resolve states", err)
	}

	return formatter.Success(planResult{
		Year:        opts.Year,
		Horizon:     opts.Horizon,
		Survey:      opts.Survey,
		Resolutions: resolutions,
	})
}
