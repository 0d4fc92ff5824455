package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogEnv is the environment variable selecting the logging mode.
const LogEnv = "VDIST_LOG"

// ParseLogMode maps a logging mode to a zerolog level.
// "off" and "0" disable logging, "full" enables debug output, and
// "info" or an empty string select the info level.
func ParseLogMode(mode string) (zerolog.Level, error) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "off", "0":
		return zerolog.Disabled, nil
	case "full":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("%w: unknown log mode %q", ErrInvalidParameter, mode)
	}
}

// ConfigureLogging sets the global logging level from the VDIST_LOG environment variable.
// Unknown values fall back to the info level.
func ConfigureLogging() zerolog.Level {
	level, _ := ParseLogMode(os.Getenv(LogEnv))
	zerolog.SetGlobalLevel(level)
	return level
}
