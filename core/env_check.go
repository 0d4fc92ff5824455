package core

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/cpu"
)

// EnvReport describes the runtime the library is running on.
type EnvReport struct {
	GOOS      string
	GOARCH    string
	GoVersion string
	NumCPU    int
	HasAVX    bool
	HasAVX2   bool
	Seed      string // raw VDIST_SEED value, empty when unset
	LogMode   string // raw VDIST_LOG value, empty when unset
}

// ValidateEnvironment checks the process environment before any work is done.
// It must be called explicitly; nothing is validated at import time.
// Every problem found is returned, joined and wrapped with ErrEnvironment.
func ValidateEnvironment() (EnvReport, error) {
	report := EnvReport{
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
		HasAVX:    cpu.X86.HasAVX,
		HasAVX2:   cpu.X86.HasAVX2,
		Seed:      os.Getenv(SeedEnv),
		LogMode:   os.Getenv(LogEnv),
	}

	var errs []error
	if report.Seed != "" {
		if _, err := strconv.ParseInt(report.Seed, 10, 64); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q is not a valid int64 seed", SeedEnv, report.Seed))
		}
	}
	if _, err := ParseLogMode(report.LogMode); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", LogEnv, err))
	}

	log.Debug().
		Str("goos", report.GOOS).
		Str("goarch", report.GOARCH).
		Int("cpus", report.NumCPU).
		Bool("avx", report.HasAVX).
		Bool("avx2", report.HasAVX2).
		Msg("Environment checked")

	if len(errs) > 0 {
		return report, fmt.Errorf("%w: %w", ErrEnvironment, errors.Join(errs...))
	}
	return report, nil
}
