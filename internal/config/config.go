// Package config loads steepleherder.ini and the application.ini of the build under test.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// DefaultFile is the config file name looked up next to the executable.
const DefaultFile = "steepleherder.ini"

// EnvPrefix prefixes environment overrides, e.g. STEEPLEHERDER_REPO_HOST.
const EnvPrefix = "STEEPLEHERDER"

// Config is the content of steepleherder.ini.
type Config struct {
	Credentials Credentials
	Repo        Repo
	System      System
}

// Credentials are the OAuth consumer key and secret for the dashboard.
type Credentials struct {
	Key    string
	Secret string
}

// Repo names the dashboard host and project.
type Repo struct {
	Host     string
	Project  string
	Protocol string
}

// System locates the build under test and the harness log.
type System struct {
	AUTDir   string
	TestsDir string
	LogFile  string
}

// DefaultPath returns steepleherder.ini in the directory of the running executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("config.DefaultPath: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultFile), nil
}

// Load reads an ini config file, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("repo.protocol", "http")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Credentials: Credentials{
			Key:    v.GetString("credentials.key"),
			Secret: v.GetString("credentials.secret"),
		},
		Repo: Repo{
			Host:     v.GetString("repo.host"),
			Project:  v.GetString("repo.project"),
			Protocol: v.GetString("repo.protocol"),
		},
		System: System{
			AUTDir:   v.GetString("system.autdir"),
			TestsDir: v.GetString("system.testsdir"),
			LogFile:  v.GetString("system.logfile"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var errs *multierror.Error
	required := []struct {
		name  string
		value string
	}{
		{"Credentials.key", c.Credentials.Key},
		{"Credentials.secret", c.Credentials.Secret},
		{"Repo.host", c.Repo.Host},
		{"Repo.project", c.Repo.Project},
		{"System.autdir", c.System.AUTDir},
		{"System.testsdir", c.System.TestsDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s is required", r.name))
		}
	}
	switch c.Repo.Protocol {
	case "http", "https":
	default:
		errs = multierror.Append(errs, fmt.Errorf("Repo.protocol must be http or https, got %q", c.Repo.Protocol))
	}
	return errs.ErrorOrNil()
}

// ResultsPath returns the parsed-results file that accompanies the harness log.
func (c *Config) ResultsPath() (string, error) {
	if c.System.LogFile == "" {
		return "", errors.New("System.logfile is not set")
	}
	return c.System.LogFile + ".json", nil
}
