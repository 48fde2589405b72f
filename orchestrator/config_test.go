package orchestrator

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("ACCUMULATOR_BATCH_SIZE")
	os.Unsetenv("ACCUMULATOR_SKIP_PROOF")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BatchSize != 1024 {
		t.Fatalf("BatchSize = %d, want default 1024", cfg.BatchSize)
	}
	if cfg.SkipProof {
		t.Fatalf("SkipProof = true, want default false")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	os.Setenv("ACCUMULATOR_BATCH_SIZE", "512")
	os.Setenv("ACCUMULATOR_SKIP_PROOF", "true")
	defer os.Unsetenv("ACCUMULATOR_BATCH_SIZE")
	defer os.Unsetenv("ACCUMULATOR_SKIP_PROOF")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BatchSize != 512 {
		t.Fatalf("BatchSize = %d, want 512", cfg.BatchSize)
	}
	if !cfg.SkipProof {
		t.Fatalf("SkipProof = false, want true")
	}
}

func TestLoadConfigRejectsZeroBatchSize(t *testing.T) {
	os.Setenv("ACCUMULATOR_BATCH_SIZE", "0")
	defer os.Unsetenv("ACCUMULATOR_BATCH_SIZE")

	_, err := LoadConfig("")
	if err != ErrInvalidBatchSize {
		t.Fatalf("err = %v, want ErrInvalidBatchSize", err)
	}
}
