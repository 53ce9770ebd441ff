// voxmap generates heightmaps and vegetation masks for voxel worlds.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/voxmap/internal/config"
	"github.com/Faultbox/voxmap/internal/logger"
	"github.com/Faultbox/voxmap/pkg/tiles"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)
	if path := config.ConfigPath(); path != "" {
		logger.Debug("config file", zap.String("path", path))
	}
	if cfg.Workers > tiles.MaxWorkers {
		logger.Warn("worker count capped",
			zap.Int("requested", cfg.Workers),
			zap.Int("max", tiles.MaxWorkers))
	}

	logger.Info("voxmap starting",
		zap.String("command", args[0]),
		zap.Int("size", cfg.Noise.Size),
		zap.Int64("seed", cfg.Noise.Seed))

	a := newApp(cfg, logger.Named("cmd"), os.Stdout)
	if err := a.run(args[0], args[1:]); err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`voxmap - heightmap generator for voxel worlds

Usage:
  voxmap [flags] <command> [options]

Commands:
  noise                       Noise heightmap (noise.type: perlin, fractal, turbulence)
  landmass                    Continent with water threshold and plains
  shape                       Geometric test pattern (circle, square, pyramid)
  grass                       Standalone vegetation mask
  import <image>              Convert PNG/JPEG/BMP/TIFF/TGA into a packed raster
  config [save]               Print effective config, or save it to the user config dir

Flags:
  -config <file>   Config file (default ./voxmap.yaml, then user config dir)
  -seed <n>        Terrain seed override
  -canyon-seed <n> Canyon layout seed override
  -size <n>        Grid size override
  -workers <n>     Worker count, 0 for all cores (max 4)
  -out <dir>       Output directory
  -log <file>      Also log to a rotating file
  -debug           Debug logging

Examples:
  voxmap -size 1024 -seed 7 landmass
  voxmap -config island.yaml -out maps noise
  voxmap import -blur 1.5 scan.png`)
}
