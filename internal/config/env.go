package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Service variables read after the env file is loaded.
const (
	EnvConfig   = "ARGMAP_CONFIG"
	EnvLogLevel = "ARGMAP_LOG_LEVEL"
	EnvAddr     = "ARGMAP_ADDR"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already present in the environment are left untouched.
// A missing file is not an error when optional is true.
func LoadEnvFile(path string, optional bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LookupString returns the variable as an Optional. A blank value counts as unset.
func LookupString(lookup LookupFunc, key string) Optional[string] {
	v, ok := lookup(key)
	if !ok {
		return None[string]()
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return None[string]()
	}
	return Some(v)
}

// LookupGB parses a gigabyte amount such as "8" or "7.5".
// Unset or blank values yield None; negative or unparsable values are an error.
func LookupGB(lookup LookupFunc, key string) (Optional[float64], error) {
	s := LookupString(lookup, key)
	raw, ok := s.Get()
	if !ok {
		return None[float64](), nil
	}
	gb, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return None[float64](), fmt.Errorf("invalid %s=%q: expected a number of GB", key, raw)
	}
	if gb < 0 {
		return None[float64](), fmt.Errorf("invalid %s=%q: must not be negative", key, raw)
	}
	return Some(gb), nil
}

// FromEnv returns the settings carried by ARGMAP_* variables. Unset
// variables leave their field zero, so the result layers with Merge.
func FromEnv(lookup LookupFunc) Config {
	return Config{
		LogLevel: LookupString(lookup, EnvLogLevel).OrElse(""),
		Addr:     LookupString(lookup, EnvAddr).OrElse(""),
	}
}
