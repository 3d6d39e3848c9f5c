package acs

import (
	"github.com/hashicorp/go-retryablehttp"
)

// Horizon is the aggregation window of a survey: single-year estimates or
// five-year rolling estimates.
type Horizon string

const (
	HorizonOneYear  Horizon = "1-Year"
	HorizonFiveYear Horizon = "5-Year"
)

// Survey selects between individual-level and household-level records.
type Survey string

const (
	SurveyPerson    Survey = "person"
	SurveyHousehold Survey = "household"
)

const (
	// MinSurveyYear is the earliest ACS PUMS vintage this loader supports.
	MinSurveyYear = 2014

	// minDictionaryYear is the first vintage the Census publishes a CSV
	// data dictionary for.
	minDictionaryYear = 2017
)

// Config identifies one ACS PUMS dataset. Immutable after construction;
// validated by New, which performs no I/O.
type Config struct {
	// SurveyYear is the vintage, e.g. 2018.
	SurveyYear int

	// Horizon is the estimate window, HorizonOneYear or HorizonFiveYear.
	Horizon Horizon

	// Survey is the record level, SurveyPerson or SurveyHousehold.
	Survey Survey

	// RootDir is the directory the local cache lives under. Files are
	// written to {RootDir}/{year}/{horizon}/{csv}.
	RootDir string
}

func (c Config) validate() error {
	if c.SurveyYear < MinSurveyYear {
		return newConfigurationError("unsupported survey year %d: earliest supported vintage is %d", c.SurveyYear, MinSurveyYear)
	}
	switch c.Horizon {
	case HorizonOneYear, HorizonFiveYear:
	default:
		return newConfigurationError("unsupported horizon %q: must be %q or %q", c.Horizon, HorizonOneYear, HorizonFiveYear)
	}
	switch c.Survey {
	case SurveyPerson, SurveyHousehold:
	default:
		return newConfigurationError("unsupported survey %q: must be %q or %q", c.Survey, SurveyPerson, SurveyHousehold)
	}
	return nil
}

// DataSource fetches, caches, and assembles ACS PUMS microdata for one
// (year, horizon, survey) configuration. Cache files are created lazily on
// first access and persist indefinitely; there is no eviction.
//
// Methods are synchronous and not safe for concurrent use against the same
// cache directory.
type DataSource struct {
	cfg         Config
	client      *retryablehttp.Client
	dataBaseURL string
	dictBaseURL string
}

// Option configures a DataSource beyond its Config.
type Option func(*DataSource)

// WithHTTPClient replaces the retrying HTTP client used for downloads.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(ds *DataSource) { ds.client = c }
}

// WithBaseURL overrides the Census PUMS data base URL. Used by tests to
// point downloads at a local server.
func WithBaseURL(u string) Option {
	return func(ds *DataSource) { ds.dataBaseURL = u }
}

// WithDictionaryBaseURL overrides the data dictionary base URL.
func WithDictionaryBaseURL(u string) Option {
	return func(ds *DataSource) { ds.dictBaseURL = u }
}

// WithRetryMax sets the transport retry budget for failed downloads.
// Retries apply to transport errors and 5xx responses only; a definitive
// failure is still reported to the caller immediately.
func WithRetryMax(n int) Option {
	return func(ds *DataSource) { ds.client.RetryMax = n }
}

// New validates cfg and returns a DataSource. No I/O is performed; the
// cache directory is not created until data is first written to it.
func New(cfg Config, opts ...Option) (*DataSource, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ds := &DataSource{
		cfg:         cfg,
		client:      newClient(),
		dataBaseURL: defaultDataBaseURL,
		dictBaseURL: defaultDictBaseURL,
	}
	for _, opt := range opts {
		opt(ds)
	}
	return ds, nil
}

// newClient builds the default download client. The retry budget is small:
// one request per call is the norm and a failed download surfaces
// immediately once the budget is spent.
func newClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.Logger = nil
	return c
}

// Config returns the validated configuration.
func (ds *DataSource) Config() Config {
	return ds.cfg
}

// householdCounterpart returns a DataSource for the household survey of the
// same vintage, sharing the client and URL overrides. Used by the household
// join in GetData.
func (ds *DataSource) householdCounterpart() *DataSource {
	cfg := ds.cfg
	cfg.Survey = SurveyHousehold
	return &DataSource{
		cfg:         cfg,
		client:      ds.client,
		dataBaseURL: ds.dataBaseURL,
		dictBaseURL: ds.dictBaseURL,
	}
}
