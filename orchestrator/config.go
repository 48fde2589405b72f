package orchestrator

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidBatchSize is returned when a configured batch size is zero.
var ErrInvalidBatchSize = errors.New("orchestrator: batch_size must be > 0")

// Config holds the orchestrator's recognized options. Environment
// variables are the primary source (ACCUMULATOR_BATCH_SIZE and so on); an
// optional TOML file can override defaults before the environment is
// applied, matching the layered config style of the wider dependency
// ecosystem this project draws on.
type Config struct {
	BatchSize  uint64 `envconfig:"BATCH_SIZE" default:"1024"`
	NumBatches uint64 `envconfig:"NUM_BATCHES"`
	StartBlock uint64 `envconfig:"START_BLOCK"`
	FromLatest bool   `envconfig:"FROM_LATEST"`
	SkipProof  bool   `envconfig:"SKIP_PROOF"`
}

// LoadConfig reads Config from environment variables prefixed
// ACCUMULATOR_, optionally overlaying values from a TOML file first if
// tomlPath is non-empty.
func LoadConfig(tomlPath string) (Config, error) {
	var cfg Config
	if tomlPath != "" {
		if _, err := os.Stat(tomlPath); err == nil {
			if _, err := toml.DecodeFile(tomlPath, &cfg); err != nil {
				return Config{}, err
			}
		}
	}
	if err := envconfig.Process("accumulator", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.BatchSize == 0 {
		return Config{}, ErrInvalidBatchSize
	}
	return cfg, nil
}
