// Package config loads application settings from the environment, optionally seeded from a .env
// file, falling back to defaults for anything left unset.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
)

const (
	envJolpicaBaseURL   = "F1_JOLPICA_BASE_URL"
	envOpenF1BaseURL    = "F1_OPENF1_BASE_URL"
	envFirstSeason      = "F1_FIRST_SEASON"
	envLegacyCutoffYear = "F1_LEGACY_CUTOFF_YEAR"
	envRequestTimeout   = "F1_REQUEST_TIMEOUT"
	envLogLevel         = "F1_LOG_LEVEL"
	envLogFile          = "F1_LOG_FILE"
)

// Config holds the settings shared by the fetch client, the logger and the CLI.
type Config struct {
	JolpicaBaseURL   string        // JolpicaBaseURL is the historical (Ergast compatible) API
	OpenF1BaseURL    string        // OpenF1BaseURL is the live-timing API
	FirstSeason      int           // FirstSeason is the earliest season offered
	LegacyCutoffYear int           // Seasons up to and including this year use the historical API
	RequestTimeout   time.Duration // RequestTimeout bounds each upstream request
	LogLevel         string        // LogLevel is one of debug, info, warn, error
	LogFile          string        // LogFile receives logs; the terminal belongs to the TUI
}

// Default returns the configuration used for any setting that isn't overridden.
func Default() Config {
	return Config{
		JolpicaBaseURL:   "https://api.jolpi.ca/ergast/f1",
		OpenF1BaseURL:    "https://api.openf1.org/v1",
		FirstSeason:      2005,
		LegacyCutoffYear: 2022,
		RequestTimeout:   30 * time.Second,
		LogLevel:         "info",
		LogFile:          "app.log",
	}
}

// Load reads the first of the given .env files that exists (a missing file is not an error),
// then the F1_* environment variables, and fills anything left unset from Default. Variables
// already present in the environment take precedence over the .env file.
func Load(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err == nil {
			break
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading env file %s: %w", path, err)
		}
	}

	c, err := fromEnv()
	if err != nil {
		return Config{}, err
	}
	if err := mergo.Merge(&c, Default()); err != nil {
		return Config{}, fmt.Errorf("error applying config defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports settings that would make every request fail.
func (c Config) Validate() error {
	for name, raw := range map[string]string{
		envJolpicaBaseURL: c.JolpicaBaseURL,
		envOpenF1BaseURL:  c.OpenF1BaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s '%s'", name, raw)
		}
	}
	if c.LegacyCutoffYear < c.FirstSeason-1 {
		return fmt.Errorf("legacy cutoff year %d is before the first season %d", c.LegacyCutoffYear, c.FirstSeason)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, found %s", c.RequestTimeout)
	}
	return nil
}

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

// fromEnv returns only the settings present in the environment; everything else is left at its
// zero value for mergo to fill in.
func fromEnv() (Config, error) {
	var c Config
	var err error

	c.JolpicaBaseURL = strings.TrimSuffix(os.Getenv(envJolpicaBaseURL), "/")
	c.OpenF1BaseURL = strings.TrimSuffix(os.Getenv(envOpenF1BaseURL), "/")
	c.LogLevel = strings.ToLower(os.Getenv(envLogLevel))
	c.LogFile = os.Getenv(envLogFile)

	if c.FirstSeason, err = intFromEnv(envFirstSeason); err != nil {
		return c, err
	}
	if c.LegacyCutoffYear, err = intFromEnv(envLegacyCutoffYear); err != nil {
		return c, err
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if c.RequestTimeout, err = time.ParseDuration(v); err != nil {
			return c, fmt.Errorf("invalid %s: %w", envRequestTimeout, err)
		}
	}

	return c, nil
}

func intFromEnv(name string) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}
