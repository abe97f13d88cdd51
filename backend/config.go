package backend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"git.sr.ht/~whereswaldon/tradechart/options"
	"git.sr.ht/~whereswaldon/tradechart/series"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config describes what to chart and how.
type Config struct {
	// Data is the CSV file to read.
	Data string `yaml:"data"`
	// Follow keeps watching Data for appended rows.
	Follow bool `yaml:"follow"`
	// Chart holds chart options merged over the defaults.
	Chart options.Tree `yaml:"chart"`
	// Series maps dataset columns to series. When empty every column gets
	// a series of a type guessed from its name.
	Series []SeriesConfig `yaml:"series"`
	// ReplayInterval, when set, replays the data one timestamp at a time.
	ReplayInterval time.Duration `yaml:"replayInterval"`
	LogLevel       string        `yaml:"logLevel"`
}

// SeriesConfig binds one dataset column to a series.
type SeriesConfig struct {
	Column  string       `yaml:"column"`
	Type    string       `yaml:"type"`
	Options options.Tree `yaml:"options"`
}

// LoadConfig reads a YAML config file, then applies environment overrides
// and defaults. A missing file yields the defaults. An empty path skips the
// file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.WithField("path", path).Debug("no config file, using defaults")
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TRADECHART_DATA"); v != "" {
		c.Data = v
	}
	if v := os.Getenv("TRADECHART_FOLLOW"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRADECHART_FOLLOW: %w", err)
		}
		c.Follow = b
	}
	if v := os.Getenv("TRADECHART_REPLAY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TRADECHART_REPLAY_INTERVAL: %w", err)
		}
		c.ReplayInterval = d
	}
	if v := os.Getenv("TRADECHART_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Chart == nil {
		c.Chart = options.Tree{}
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var err error
	if _, e := logrus.ParseLevel(c.LogLevel); e != nil {
		err = multierr.Append(err, e)
	}
	if c.ReplayInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("replayInterval must not be negative, got %s", c.ReplayInterval))
	}
	for i, s := range c.Series {
		if s.Column == "" {
			err = multierr.Append(err, fmt.Errorf("series %d: missing column", i))
		}
		if _, e := series.ParseType(s.Type); e != nil {
			err = multierr.Append(err, fmt.Errorf("series %d: %w", i, e))
		}
	}
	return err
}
