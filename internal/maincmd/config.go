package maincmd

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds the machine.VM resource limits that may be overridden via
// environment variables, read once per invocation. This is the one place in
// this repo that benefits from a real configuration layer: everything else
// is driven entirely by command-line arguments.
type Config struct {
	MaxSteps      uint64 `env:"GOBLANG_MAX_STEPS" envDefault:"0"`
	MaxStackDepth int    `env:"GOBLANG_MAX_STACK_DEPTH" envDefault:"0"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment configuration: %w", err)
	}
	return cfg, nil
}
