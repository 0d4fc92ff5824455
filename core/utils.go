package core

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// SeedEnv is the environment variable holding the random seed.
const SeedEnv = "VDIST_SEED"

// GetSeed receives a seed value for random number generation from the VDIST_SEED environment variable.
func GetSeed() int64 {
	seedStr := os.Getenv(SeedEnv)
	if seedStr != "" {
		if seed, err := strconv.ParseInt(seedStr, 10, 64); err == nil {
			log.Info().Msgf("Using seed from %s value: %d", SeedEnv, seed)
			return seed
		}
		log.Warn().Msgf("Failed to parse %s value: %s", SeedEnv, seedStr)
	}

	seed := time.Now().UnixNano()
	log.Info().Msgf("Using current time as seed: %d", seed)
	return seed
}

// NewRand returns a random source seeded with GetSeed.
// The returned generator is not safe for concurrent use.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(GetSeed()))
}
