// Package config loads optional engine tuning defaults from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Search holds the [search] table of corvid.toml. Only HashMB is applied at
// startup (it sizes the transposition table); the other fields are decoded
// but not read by the engine. UCI setoption values take precedence at
// runtime.
type Search struct {
	HashMB          int `toml:"hash_mb"`
	Threads         int `toml:"threads"`
	MoveOverheadMS  int `toml:"move_overhead_ms"`
	LMRBase         float64 `toml:"lmr_base"`
	LMRDivisor      float64 `toml:"lmr_divisor"`
	RFPMarginPerPly int     `toml:"rfp_margin_per_ply"`
	AspirationDelta int     `toml:"aspiration_delta"`
}

// Config is the top-level shape of corvid.toml.
type Config struct {
	Search Search `toml:"search"`
}

// Default returns the built-in defaults used when no file is present.
func Default() Config {
	return Config{
		Search: Search{
			HashMB:          64,
			Threads:         1,
			MoveOverheadMS:  10,
			LMRBase:         0.2,
			LMRDivisor:      3.3,
			RFPMarginPerPly: 80,
			AspirationDelta: 12,
		},
	}
}

// Load reads a TOML config file, falling back to Default() if path is empty
// or the file does not exist. A present-but-malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
