// Package config gathers the settings of the vdist command line tool from
// defaults, an optional YAML file, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/patrikhermansson/vdist/core"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load, in addition to core.SeedEnv and core.LogEnv.
const (
	MetricEnv  = "VDIST_METRIC"
	OrderEnv   = "VDIST_P"
	WorkersEnv = "VDIST_WORKERS"
)

// Config holds the tool settings.
type Config struct {
	Metric       string  `yaml:"metric"`
	P            float64 `yaml:"p"`
	Distribution string  `yaml:"distribution"`
	Workers      int     `yaml:"workers"`
	LogMode      string  `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Metric:       "euclidean",
		P:            core.DefaultMinkowskiP,
		Distribution: core.Uniform.String(),
	}
}

// LoadEnvFiles loads variables from the given .env files into the process
// environment. Variables that are already set are left alone and missing
// files are skipped.
func LoadEnvFiles(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
		log.Debug().Msgf("Loaded environment from %s", file)
	}
	return nil
}

// Load builds a Config from the defaults, the YAML file at path (when not
// empty) and the environment, in increasing order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		log.Debug().Msgf("Loaded config file %s", path)
	}

	if v := os.Getenv(MetricEnv); v != "" {
		cfg.Metric = v
	}
	if v := os.Getenv(OrderEnv); v != "" {
		p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", OrderEnv, v, err)
		}
		cfg.P = p
	}
	if v := os.Getenv(WorkersEnv); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", WorkersEnv, v, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv(core.LogEnv); v != "" {
		cfg.LogMode = v
	}

	return cfg, cfg.Validate()
}

// Validate checks that the settings name known metrics and distributions.
func (c Config) Validate() error {
	if _, err := c.DistanceFunc(); err != nil {
		return err
	}
	if _, err := core.ParseDistribution(c.Distribution); err != nil {
		return err
	}
	if _, err := core.ParseLogMode(c.LogMode); err != nil {
		return err
	}
	return nil
}

// DistanceFunc resolves the configured metric. The Minkowski metric is bound
// to the configured order P.
func (c Config) DistanceFunc() (core.DistanceFunc, error) {
	if strings.EqualFold(strings.TrimSpace(c.Metric), "minkowski") {
		return core.MinkowskiFunc(c.P)
	}
	return core.Lookup(c.Metric)
}
