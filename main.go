package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/animation"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/encoder"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

const scenesDir = "scenes"

// options holds the parsed command line
type options struct {
	scene     string
	out       string
	format    string
	spp       int
	depth     int
	workers   int
	seed      uint64
	partition string
	tileSize  int
	gamma     float64
	frames    int
	debug     bool
	list      bool
	help      bool

	set map[string]bool // Flags given explicitly on the command line
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	if opts.help {
		if err := printHelp(os.Stdout, fs); err != nil {
			fmt.Fprintf(os.Stderr, "Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if opts.list {
		if err := listScenes(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger := core.NewDefaultLogger("raytracer", opts.debug)
	if err := run(opts, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, errOut io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name or path to a .toml scene file")
	fs.StringVar(&opts.out, "out", "output", "Output directory")
	fs.StringVar(&opts.format, "format", "png", "Image format: 'png' or 'bmp'")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (default: scene setting)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth, 0 for direct lighting only (default: scene setting)")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of render workers")
	fs.Uint64Var(&opts.seed, "seed", 1, "Random seed")
	fs.StringVar(&opts.partition, "partition", "rows", "Work partitioning: 'rows' or 'tiles'")
	fs.IntVar(&opts.tileSize, "tile-size", 32, "Tile edge length when partitioning by tiles")
	fs.Float64Var(&opts.gamma, "gamma", encoder.DefaultGamma, "Display gamma")
	fs.IntVar(&opts.frames, "frames", 0, "Number of animation frames (default: scene timeline)")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, fs, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) error {
	fmt.Fprintln(w, "Sphere Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	if err := listScenes(w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Frames are saved to <out>/<scene>/frame_<k>.<format>")
	return nil
}

func listScenes(w io.Writer) error {
	fmt.Fprintln(w, "Built-in scenes:")
	for _, b := range scene.Builtins() {
		fmt.Fprintf(w, "  %-14s %s\n", b.Name, b.Description)
	}

	files, err := loaders.ListSceneFiles(scenesDir)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		fmt.Fprintln(w, "Scene files:")
		for _, f := range files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	return nil
}

// sceneSource is everything needed to render a named scene
type sceneSource struct {
	name      string
	template  *animation.AnimatedScene
	timeline  animation.Timeline
	configure func(*renderer.Config) error
}

// createScene resolves a -scene argument to a built-in scene or a scene file
func createScene(name string) (*sceneSource, error) {
	if name == "" {
		return nil, errors.New("scene name cannot be empty")
	}

	if loaders.IsSceneFile(name) {
		file, err := loaders.LoadSceneFile(name)
		if err != nil {
			return nil, err
		}
		template, err := file.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return &sceneSource{
			name:      file.Name,
			template:  template,
			timeline:  file.TimelineOrDefault(),
			configure: file.ApplyRender,
		}, nil
	}

	builtin, ok := scene.Lookup(name)
	if !ok {
		names := make([]string, 0)
		for _, b := range scene.Builtins() {
			names = append(names, b.Name)
		}
		return nil, fmt.Errorf("unknown scene %q (available: %s, or a .toml file)", name, strings.Join(names, ", "))
	}

	sc, err := builtin.Build()
	if err != nil {
		return nil, fmt.Errorf("building scene %s: %w", name, err)
	}
	return &sceneSource{
		name:     builtin.Name,
		template: animation.Static(sc),
		timeline: animation.SingleFrame(),
		configure: func(c *renderer.Config) error {
			c.SamplesPerPixel = builtin.SamplesPerPixel
			c.MaxDepth = builtin.MaxDepth
			return nil
		},
	}, nil
}

// renderConfig layers scene settings over the defaults and explicit flags
// over both
func renderConfig(src *sceneSource, opts *options) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	if err := src.configure(&config); err != nil {
		return config, err
	}

	config.NumWorkers = opts.workers
	if opts.set["spp"] {
		config.SamplesPerPixel = opts.spp
	}
	if opts.set["depth"] {
		config.MaxDepth = opts.depth
	}
	if opts.set["seed"] {
		config.Seed = opts.seed
	}
	if opts.set["partition"] {
		config.Partition = renderer.Partition(opts.partition)
	}
	if opts.set["tile-size"] {
		config.TileSize = opts.tileSize
	}

	return config, config.Validate()
}

func run(opts *options, logger core.Logger) error {
	format, err := encoder.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	src, err := createScene(opts.scene)
	if err != nil {
		return err
	}

	config, err := renderConfig(src, opts)
	if err != nil {
		return err
	}

	timeline := src.timeline
	if opts.set["frames"] {
		timeline.Frames = opts.frames
	}
	if err := timeline.Validate(); err != nil {
		return err
	}

	r, err := renderer.NewRenderer(config, logger)
	if err != nil {
		return err
	}

	outputDir := filepath.Join(opts.out, src.name)
	logger.Infof("Rendering %s: %d frame(s), %d spp, max depth %d, %d workers",
		src.name, timeline.Frames, config.SamplesPerPixel, config.MaxDepth, config.NumWorkers)

	start := time.Now()
	for k, t := range timeline.All() {
		sc, err := src.template.At(t)
		if err != nil {
			return fmt.Errorf("frame %d: %w", k, err)
		}

		fb, stats, err := r.Render(sc)
		if err != nil {
			return fmt.Errorf("frame %d: %w", k, err)
		}

		filename := filepath.Join(outputDir, encoder.FrameName(k, format))
		if err := encoder.WriteFile(filename, fb, encoder.Options{Format: format, Gamma: opts.gamma}); err != nil {
			return fmt.Errorf("frame %d: %w", k, err)
		}
		logger.Infof("Frame %d (t=%g) saved as %s in %v", k, t, filename, stats.Elapsed)
	}

	logger.Infof("Render completed in %v", time.Since(start))
	return nil
}
