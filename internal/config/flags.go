package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagSeed    = flag.Int64("seed", 0, "Terrain seed for noise, landmass and grass (0 keeps config)")
	flagCanyon  = flag.Int64("canyon-seed", 0, "Canyon layout seed (0 keeps config)")
	flagSize    = flag.Int("size", 0, "Grid size in cells")
	flagWorkers = flag.Int("workers", -1, "Worker count, 0 for all cores (max 4)")
	flagOut     = flag.String("out", "", "Output directory")
	flagLog     = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the non-flag arguments: the command and its operands.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Noise.Seed = *flagSeed
	}
	if *flagCanyon != 0 {
		cfg.Canyon.Seed = *flagCanyon
	}
	if *flagSize > 0 {
		cfg.Noise.Size = *flagSize
	}
	if *flagWorkers >= 0 {
		cfg.Workers = *flagWorkers
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
