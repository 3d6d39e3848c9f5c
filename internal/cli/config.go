package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roach88/acsdata/internal/acs"
)

// FileConfig carries optional defaults loaded from a YAML config file and
// the environment. Command flags always win over config values.
type FileConfig struct {
	// RootDir is the default cache root (flag: --root).
	RootDir string `yaml:"root_dir"`

	// DataURL overrides the Census PUMS data base URL. Useful for
	// mirrors and air-gapped setups.
	DataURL string `yaml:"data_url"`

	// DictURL overrides the data dictionary base URL.
	DictURL string `yaml:"dict_url"`

	// RetryMax overrides the transport retry budget for downloads.
	RetryMax *int `yaml:"retry_max"`
}

// LoadConfig assembles a FileConfig from three layers, lowest precedence
// first: a .env file in the working directory (if present), the YAML file
// at path (if given), and PUMS_* environment variables.
func LoadConfig(path string) (FileConfig, error) {
	// Missing .env is not an error; it only seeds the environment.
	_ = godotenv.Load()

	var cfg FileConfig
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return FileConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("PUMS_ROOT_DIR"); v != "" {
		cfg.RootDir = v
	}
	if v := os.Getenv("PUMS_DATA_URL"); v != "" {
		cfg.DataURL = v
	}
	if v := os.Getenv("PUMS_DICT_URL"); v != "" {
		cfg.DictURL = v
	}
	if v := os.Getenv("PUMS_RETRY_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return FileConfig{}, fmt.Errorf("PUMS_RETRY_MAX: %w", err)
		}
		cfg.RetryMax = &n
	}

	return cfg, nil
}

// Options translates the config into DataSource options.
func (c FileConfig) Options() []acs.Option {
	var opts []acs.Option
	if c.DataURL != "" {
		opts = append(opts, acs.WithBaseURL(c.DataURL))
	}
	if c.DictURL != "" {
		opts = append(opts, acs.WithDictionaryBaseURL(c.DictURL))
	}
	if c.RetryMax != nil {
		opts = append(opts, acs.WithRetryMax(*c.RetryMax))
	}
	return opts
}

// rootDir picks the cache root: the flag when set, then the config value,
// then ./data.
func (c FileConfig) rootDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if c.RootDir != "" {
		return c.RootDir
	}
	return "data"
}
