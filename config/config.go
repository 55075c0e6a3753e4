// Package config reads the settings of the fms command from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/finance"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendFile, BackendSQLite}

type Config struct {
	// DataDir is the folder holding the users data files.
	DataDir string
	// User selects the data file, one per user.
	User string
	// Backend is either "file" or "sqlite".
	Backend string

	// Currency is used to display amounts only.
	Currency string

	InitialBalance decimal.Decimal
	MinimumBalance decimal.Decimal

	Verbose bool
}

// LoadDotEnv loads variables from the given .env files (".env" by default)
// without overriding the ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot load %q: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment, using defaults for unset variables.
func Load() *Config {
	return &Config{
		DataDir:        getEnv("FMS_DATA_DIR", "."),
		User:           getEnv("FMS_USER", finance.DefaultUser),
		Backend:        getEnv("FMS_BACKEND", BackendFile),
		Currency:       getEnv("FMS_CURRENCY", finance.DefaultCurrency),
		InitialBalance: getEnvDecimal("FMS_INITIAL_BALANCE", finance.InitialBalance),
		MinimumBalance: getEnvDecimal("FMS_MIN_BALANCE", finance.MinimumBalance),
		Verbose:        getEnvBool("FMS_VERBOSE", false),
	}
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var errs []string

	if c.DataDir == "" {
		errs = append(errs, "data directory cannot be empty")
	}
	if c.User == "" {
		errs = append(errs, "user cannot be empty")
	} else if strings.ContainsAny(c.User, `/\`) || c.User == "." || c.User == ".." {
		errs = append(errs, fmt.Sprintf("invalid user '%s': must not be a path", c.User))
	}
	if !slices.Contains(validBackends, c.Backend) {
		errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Sprintf("invalid currency '%s': must be a 3 letters code", c.Currency))
	}
	if c.MinimumBalance.IsNegative() {
		errs = append(errs, fmt.Sprintf("invalid minimum balance %s: must not be negative", c.MinimumBalance))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// LedgerPath returns the data file of the configured user for the configured backend.
func (c *Config) LedgerPath() string {
	path := finance.DataFile(c.DataDir, c.User)
	if c.Backend == BackendSQLite {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".db"
	}
	return path
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
