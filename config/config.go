// Package config loads the settings of a coupled run from a YAML file, a
// local .env file and TAT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/WylieMabel/TreesAndThat/coupling"
	"github.com/WylieMabel/TreesAndThat/ecohyd"
	"github.com/WylieMabel/TreesAndThat/social"
)

const (
	envLogLevel   = "TAT_LOG_LEVEL"
	envSeed       = "TAT_SEED"
	envYears      = "TAT_YEARS"
	envClimateCSV = "TAT_CLIMATE_CSV"
	envOutput     = "TAT_OUTPUT"
	envTempShift  = "TAT_TEMP_SHIFT"
	envGridDef    = "TAT_GRID_DEF"
)

// Config settings of a coupled run
type Config struct {
	LogLevel   string          `yaml:"log_level"`
	Output     string          `yaml:"output"`      // result directory
	ClimateCSV string          `yaml:"climate_csv"` // empty: constant temperatures at the initial values
	Ecohyd     ecohyd.Config   `yaml:"ecohydrology"`
	Social     social.Params   `yaml:"social"`
	Run        coupling.Params `yaml:"run"`
}

// Default settings
func Default() Config {
	return Config{
		LogLevel: "info",
		Output:   "out",
		Ecohyd:   ecohyd.DefaultConfig(),
		Social:   social.DefaultParams(),
		Run:      coupling.DefaultParams(),
	}
}

// Load starts from the defaults, overlays the YAML file at path when path is
// not empty, then the environment. Existing environment variables take
// precedence over values in .env.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := loadDotEnvIfPresent(".env"); err != nil {
		return Config{}, err
	}
	if err := cfg.overlayEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadGridDef(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) overlayEnv() error {
	if v, ok := lookupTrimmed(envLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookupTrimmed(envOutput); ok {
		c.Output = v
	}
	if v, ok := lookupTrimmed(envClimateCSV); ok {
		c.ClimateCSV = v
	}
	if v, ok := lookupTrimmed(envGridDef); ok {
		c.Ecohyd.GridDef = v
	}
	if v, ok := lookupTrimmed(envSeed); ok {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envSeed, err)
		}
		c.Ecohyd.Seed, c.Social.Seed = s, s
	}
	if v, ok := lookupTrimmed(envYears); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envYears, err)
		}
		c.Run.Years = n
	}
	if v, ok := lookupTrimmed(envTempShift); ok {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envTempShift, err)
		}
		c.Run.TempShift = x
	}
	return nil
}

// loadGridDef sizes both models from the grid definition file, when one is set
func (c *Config) loadGridDef() error {
	gd, err := c.Ecohyd.LoadGridDef()
	if err != nil || gd == nil {
		return err
	}
	c.Social.Rows, c.Social.Cols = gd.Rows, gd.Cols
	return nil
}

// Validate checks each part and that both models share one grid
func (c Config) Validate() error {
	if err := c.Ecohyd.Validate(); err != nil {
		return err
	}
	if err := c.Social.Validate(); err != nil {
		return err
	}
	if c.Social.Rows != c.Ecohyd.Rows || c.Social.Cols != c.Ecohyd.Cols {
		return fmt.Errorf("social grid %d×%d differs from ecohydrology grid %d×%d", c.Social.Rows, c.Social.Cols, c.Ecohyd.Rows, c.Ecohyd.Cols)
	}
	if c.Run.Years < 0 || c.Run.SpinUp < 0 {
		return fmt.Errorf("run of %d years after %d spin-up years", c.Run.Years, c.Run.SpinUp)
	}
	return nil
}

func lookupTrimmed(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func loadDotEnvIfPresent(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return nil
	}
	return err
}
