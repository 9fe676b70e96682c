package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/OCharnyshevich/sandworld/internal/config"
	"github.com/OCharnyshevich/sandworld/internal/storage"
	"github.com/OCharnyshevich/sandworld/internal/world"
	"github.com/OCharnyshevich/sandworld/pkg/world/gen"
	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/noise"
	"github.com/OCharnyshevich/sandworld/pkg/world/scatter"
	"github.com/OCharnyshevich/sandworld/pkg/world/structure"
)

// jitterProb is the chance a jitter cell holds a tree.
const jitterProb = 0.6

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "JSON config file (default: config.json in the output dir, if present)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "base terrain: layered or flat")
	flag.StringVar(&cfg.NoiseBackend, "noise", cfg.NoiseBackend, "noise backend: simplex or perlin")
	flag.StringVar(&cfg.Scatter, "scatter", cfg.Scatter, "tree distribution: poisson or jitter")
	flag.Float64Var(&cfg.TreeSpacing, "tree-spacing", cfg.TreeSpacing, "typical distance between trees in pixels")
	flag.IntVar(&cfg.ChunkWidth, "chunk-width", cfg.ChunkWidth, "chunk width in pixels (0 = from params)")
	flag.IntVar(&cfg.ChunkHeight, "chunk-height", cfg.ChunkHeight, "chunk height in pixels (0 = from params)")
	flag.IntVar(&cfg.WorldChunksX, "chunks-x", cfg.WorldChunksX, "world width in chunks")
	flag.IntVar(&cfg.WorldChunksY, "chunks-y", cfg.WorldChunksY, "world height in chunks")
	flag.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "structure template directory (default: built-in)")
	flag.StringVar(&cfg.ParamsFile, "params", cfg.ParamsFile, "YAML generation params (default: built-in)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "chunks generated concurrently")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory for config and report")
	flag.StringVar(&cfg.PreviewPath, "preview", cfg.PreviewPath, "write a PNG preview to this path")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	st, err := openStorage(cfg, *configPath, explicit, log)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, st, log); err != nil {
		log.Error("worldgen failed", "error", err)
		os.Exit(1)
	}
}

// openStorage merges the config file into cfg and opens the output dir.
// A -config file is merged first, so its out_dir is honoured. Otherwise the
// config.json inside the output dir is read, and an out_dir it names cannot
// move the dir it was read from.
func openStorage(cfg *config.Config, configPath string, explicit map[string]bool, log *slog.Logger) (*storage.Storage, error) {
	if configPath != "" {
		fromFile, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		config.Merge(cfg, fromFile, explicit)
		return storage.New(cfg.OutDir, log)
	}

	dir := cfg.OutDir
	st, err := storage.New(dir, log)
	if err != nil {
		return nil, err
	}
	fromFile := config.DefaultConfig()
	fromFile.OutDir = dir
	if err := st.LoadConfig(fromFile); err != nil {
		return nil, err
	}
	config.Merge(cfg, fromFile, explicit)
	if cfg.OutDir != dir {
		log.Warn("ignoring out_dir from config in the output dir", "out_dir", cfg.OutDir, "using", dir)
		cfg.OutDir = dir
	}
	return st, nil
}

func run(ctx context.Context, cfg *config.Config, st *storage.Storage, log *slog.Logger) error {
	reg, err := material.Default()
	if err != nil {
		return err
	}

	params := gen.DefaultParams()
	if cfg.ParamsFile != "" {
		if params, err = gen.LoadParams(cfg.ParamsFile); err != nil {
			return err
		}
		log.Info("loaded params", "path", cfg.ParamsFile)
	}
	if cfg.ChunkWidth > 0 {
		params.ChunkWidth = cfg.ChunkWidth
	}
	if cfg.ChunkHeight > 0 {
		params.ChunkHeight = cfg.ChunkHeight
	}

	src, err := noise.New(cfg.NoiseBackend, cfg.Seed)
	if err != nil {
		return err
	}

	space := newSpace(cfg, params)
	points, err := newDistribution(cfg, space)
	if err != nil {
		return err
	}

	var templates structure.Source = structure.Embedded(reg)
	if cfg.AssetsDir != "" {
		templates = structure.NewFSSource(os.DirFS(cfg.AssetsDir), reg)
		log.Info("using template directory", "path", cfg.AssetsDir)
	}

	pop, err := gen.NewPopulator(gen.World{
		Noise:     src,
		Points:    points,
		Space:     space,
		Templates: templates,
		Materials: reg,
		Params:    params,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return err
	}
	filler, err := gen.NewFiller(cfg.GeneratorType, pop)
	if err != nil {
		return err
	}
	w := world.New(gen.NewGenerator(filler, pop), log)

	region := world.Region{MaxX: cfg.WorldChunksX, MaxY: cfg.WorldChunksY}
	log.Info("generating world",
		"seed", cfg.Seed,
		"chunks", region.Chunks(),
		"chunk_size", fmt.Sprintf("%dx%d", params.ChunkWidth, params.ChunkHeight),
		"generator", cfg.GeneratorType,
		"noise", cfg.NoiseBackend,
		"scatter", cfg.Scatter,
	)

	start := time.Now()
	n, err := w.Pregenerate(ctx, region, cfg.Workers)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := w.Stats(region)
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Info("material", "name", name, "tiles", stats[name])
	}

	report := &storage.Report{
		Seed:      cfg.Seed,
		Region:    storage.RegionData{MinX: region.MinX, MinY: region.MinY, MaxX: region.MaxX, MaxY: region.MaxY},
		Chunks:    n,
		Materials: stats,
		ElapsedMS: elapsed.Milliseconds(),
	}
	for _, s := range w.Structures(region) {
		report.Clouds = append(report.Clouds, storage.PlacedData{Template: s.Template.Name, X: s.X, Y: s.Y})
	}
	if err := st.SaveReport(report); err != nil {
		return err
	}
	if err := st.SaveConfig(cfg); err != nil {
		return err
	}

	if cfg.PreviewPath != "" {
		if err := writePreview(w, region, cfg.PreviewPath); err != nil {
			return err
		}
		log.Info("wrote preview", "path", cfg.PreviewPath)
	}

	log.Info("done", "chunks", n, "elapsed", elapsed)
	return nil
}

// newSpace maps the world onto the unit square with the same scale on both
// axes, so distances between points are uniform in pixels. The shorter axis
// uses only part of the square.
func newSpace(cfg *config.Config, params gen.Params) scatter.Space {
	side := float64(max(cfg.WorldChunksX*params.ChunkWidth, cfg.WorldChunksY*params.ChunkHeight))
	return scatter.Space{W: side, H: side}
}

func newDistribution(cfg *config.Config, space scatter.Space) (scatter.Distribution, error) {
	spacing := cfg.TreeSpacing / space.W
	switch cfg.Scatter {
	case "", "poisson":
		return scatter.NewPoisson(cfg.Seed, spacing), nil
	case "jitter":
		return scatter.Jitter{Seed: cfg.Seed, Cell: spacing, Prob: jitterProb}, nil
	default:
		return nil, fmt.Errorf("unknown scatter %q", cfg.Scatter)
	}
}

func writePreview(w *world.World, r world.Region, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := w.RenderPreview(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
