package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/acsdata/internal/store"
)

// CacheOptions holds flags for the cache commands.
type CacheOptions struct {
	*RootOptions
	Root     string
	Database string
}

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CacheOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the download inventory",
	}

	cmd.PersistentFlags().StringVar(&opts.Root, "root", "", "cache root directory (default ./data)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "inventory database path (default {root}/inventory.db)")

	cmd.AddCommand(newCacheLsCommand(opts))

	return cmd
}

// cacheEntry is one inventory row in the ls payload.
type cacheEntry struct {
	Year      int    `json:"year"`
	Horizon   string `json:"horizon"`
	Survey    string `json:"survey"`
	State     string `json:"state"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	FetchedAt string `json:"fetched_at"`
}

// cacheListing is the ls command's result payload.
type cacheListing struct {
	Entries []cacheEntry `json:"entries"`
}

func (l cacheListing) String() string {
	if len(l.Entries) == 0 {
		return "inventory is empty"
	}
	p := message.NewPrinter(language.English)
	out := fmt.Sprintf("%d cached file(s)", len(l.Entries))
	for _, e := range l.Entries {
		out += p.Sprintf("\n  %d %s %s %s  %s  %d bytes  %s",
			e.Year, e.Horizon, e.Survey, e.State, e.Path, e.SizeBytes, e.FetchedAt)
	}
	return out
}

func newCacheLsCommand(opts *CacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ls",
		Short:         "List downloaded files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheLs(cmd, opts)
		},
	}
}

func runCacheLs(cmd *cobra.Command, opts *CacheOptions) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := LoadConfig(opts.ConfigFile)
	if err != nil {
		return failCommand(formatter, ExitCommandError, "failed to load config", err)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = filepath.Join(cfg.rootDir(opts.Root), "inventory.db")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return failCommand(formatter, ExitCommandError, "failed to open inventory database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing inventory database", "error", closeErr)
		}
	}()

	records, err := st.ListFetches(cmd.Context())
	if err != nil {
		return failCommand(formatter, ExitCommandError, "failed to list inventory", err)
	}

	listing := cacheListing{Entries: []cacheEntry{}}
	for _, rec := range records {
		listing.Entries = append(listing.Entries, cacheEntry{
			Year:      rec.SurveyYear,
			Horizon:   rec.Horizon,
			Survey:    rec.Survey,
			State:     rec.State,
			Path:      rec.LocalPath,
			SizeBytes: rec.SizeBytes,
			FetchedAt: rec.FetchedAt.Format(time.RFC3339),
		})
	}

	return formatter.Success(listing)
}
