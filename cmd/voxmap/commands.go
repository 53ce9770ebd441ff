package main

import (
	"flag"
	"fmt"
	"image"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/voxmap/internal/config"
	"github.com/Faultbox/voxmap/internal/imageio"
	"github.com/Faultbox/voxmap/pkg/heightmap"
	"github.com/Faultbox/voxmap/pkg/terrain"
	"github.com/Faultbox/voxmap/pkg/tiles"
)

// app runs one command against a loaded configuration.
type app struct {
	cfg    *config.Config
	gen    *terrain.Generator
	out    *imageio.Writer
	log    *zap.Logger
	stdout io.Writer
}

func newApp(cfg *config.Config, log *zap.Logger, stdout io.Writer) *app {
	return &app{
		cfg:    cfg,
		gen:    terrain.NewGenerator(tiles.NewScheduler(cfg.Workers, log.Named("tiles"))),
		out:    imageio.NewWriter(cfg.Output.Dir, cfg.Output.Prefix, cfg.Output.Timestamp),
		log:    log,
		stdout: stdout,
	}
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "noise":
		return a.cmdNoise()
	case "landmass":
		return a.cmdLandmass()
	case "shape":
		return a.cmdShape()
	case "grass":
		return a.cmdGrass()
	case "import":
		return a.cmdImport(args)
	case "config":
		return a.cmdConfig(args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdNoise() error {
	p, err := a.cfg.NoiseParams()
	if err != nil {
		return err
	}
	f, err := a.gen.NoiseField(p)
	if err != nil {
		return err
	}
	return a.finish("noise", f)
}

func (a *app) cmdLandmass() error {
	f, err := a.gen.Landmass(a.cfg.LandmassParams())
	if err != nil {
		return err
	}
	return a.finish("landmass", f)
}

func (a *app) cmdShape() error {
	f, err := a.gen.ShapePattern(a.cfg.ShapeParams())
	if err != nil {
		return err
	}
	return a.finish("shape", f)
}

func (a *app) cmdGrass() error {
	p := a.cfg.GrassMapParams()
	plane, err := a.gen.GrassMap(p)
	if err != nil {
		return err
	}
	img, err := imageio.GrayImage(plane, p.Size, p.Size)
	if err != nil {
		return err
	}
	return a.write("grass", img)
}

func (a *app) cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	size := fs.Int("size", a.cfg.Import.TargetSize, "Longest side after resize")
	invert := fs.Bool("invert", a.cfg.Import.InvertRed, "Invert the red channel")
	blur := fs.Float64("blur", a.cfg.Import.Blur, "Gaussian blur sigma")
	gray := fs.Bool("gray", a.cfg.Import.Grayscale, "Also write a grayscale heightmap")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: voxmap import [options] <image>")
	}

	src, err := imageio.DecodeFile(fs.Arg(0))
	if err != nil {
		return err
	}

	p := a.cfg.ImportParams()
	p.TargetSize = *size
	p.InvertRed = *invert
	p.Blur = *blur

	r, err := terrain.ProcessImport(src, p)
	if err != nil {
		return err
	}
	a.log.Info("image imported",
		zap.String("source", fs.Arg(0)),
		zap.Int("width", r.Width),
		zap.Int("height", r.Height))

	if err := a.write("import", imageio.RasterImage(r)); err != nil {
		return err
	}
	if !*gray {
		return nil
	}
	g, err := terrain.Grayscale(r, p.Exposure)
	if err != nil {
		return err
	}
	return a.write("import_gray", g)
}

func (a *app) cmdConfig(args []string) error {
	if len(args) > 0 && args[0] == "save" {
		if err := a.cfg.Save(); err != nil {
			return err
		}
		a.log.Info("config saved", zap.String("dir", config.ConfigDir()))
		return nil
	}
	data, err := a.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(data)
	return err
}

// finish optionally carves canyons, then writes the height field and the
// packed raster.
func (a *app) finish(kind string, f *heightmap.Field) error {
	if cp := a.cfg.CanyonParams(); cp.Strength > 0 && kind != "shape" {
		carved, err := a.gen.CarveCanyons(f, cp)
		if err != nil {
			return err
		}
		f = carved
	}

	if err := a.write(kind+"_height", imageio.FieldImage(f)); err != nil {
		return err
	}

	pp, err := a.cfg.PackingParams()
	if err != nil {
		return err
	}
	r, err := a.gen.Pack(f, pp)
	if err != nil {
		return err
	}
	return a.write(kind, imageio.RasterImage(r))
}

func (a *app) write(kind string, img image.Image) error {
	path, err := a.out.Write(kind, img)
	if err != nil {
		return err
	}
	a.log.Info("image written", zap.String("path", path))
	return nil
}
