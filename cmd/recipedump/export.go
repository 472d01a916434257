package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mj41/recipedump/config"
	"github.com/mj41/recipedump/legacyid"
	"github.com/mj41/recipedump/palette"
	"github.com/mj41/recipedump/protocol"
	"github.com/mj41/recipedump/recipe"
)

var exportFlags struct {
	palette     string
	legacyIDs   string
	outputDir   string
	output      string
	indent      string
	version     int32
	parallelism int
}

var exportCmd = &cobra.Command{
	Use:   "export [dump.json...]",
	Short: "Export packet dumps as recipe documents",
	Long: `Reads one or more crafting data packet dumps and writes a recipe
document for each. Packets are exported in parallel; the block palette and
legacy ID table are loaded once and shared.

A missing or unreadable palette is not fatal: items are then exported
without block states. Any other failure aborts the affected document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.palette, "palette", "", "gzip NBT block palette")
	f.StringVar(&exportFlags.legacyIDs, "legacy-ids", "", "legacy item ID JSON table")
	f.StringVarP(&exportFlags.outputDir, "output-dir", "o", "", "directory for recipes_<version>.json files")
	f.StringVar(&exportFlags.output, "output", "", "output file, only with a single dump")
	f.StringVar(&exportFlags.indent, "indent", "", "JSON indent (default from config)")
	f.Int32Var(&exportFlags.version, "protocol-version", 0, "override the protocol version of every dump")
	f.IntVarP(&exportFlags.parallelism, "parallelism", "j", 0, "packets exported at once")
}

// loadConfig merges the config file, environment and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, err
		}
	} else {
		cfg.ApplyEnv()
	}

	f := cmd.Flags()
	if f.Changed("palette") {
		cfg.Palette = exportFlags.palette
	}
	if f.Changed("legacy-ids") {
		cfg.LegacyIDs = exportFlags.legacyIDs
	}
	if f.Changed("output-dir") {
		cfg.OutputDir = exportFlags.outputDir
	}
	if f.Changed("indent") {
		cfg.Indent = exportFlags.indent
	}
	if f.Changed("protocol-version") {
		cfg.ProtocolVersion = exportFlags.version
	}
	if f.Changed("parallelism") {
		cfg.Parallelism = exportFlags.parallelism
	}
	return cfg, cfg.Validate()
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if exportFlags.output != "" && len(args) != 1 {
		return errors.New("--output needs exactly one dump")
	}

	ids, err := legacyid.Open(cfg.LegacyIDs)
	if err != nil {
		return fmt.Errorf("loading legacy IDs: %w", err)
	}
	if n := ids.Duplicates(); n > 0 {
		logger.Warn("legacy ID table maps several identifiers to one ID, keeping the first",
			zap.String("path", cfg.LegacyIDs), zap.Int("skipped", n))
	}

	opts := []recipe.Option{recipe.WithLogger(logger)}
	if pal := loadPalette(cfg.Palette); pal != nil {
		opts = append(opts, recipe.WithPalette(pal))
	} else if cfg.Palette != "" {
		opts = append(opts, recipe.WithPaletteReported())
	}
	exporter := recipe.NewExporter(ids, opts...)

	return exportAll(cmd.Context(), exporter, cfg, args)
}

// loadPalette returns nil when the palette cannot be used. A configured
// palette that fails to load is reported here.
func loadPalette(path string) *palette.Palette {
	if path == "" {
		return nil
	}
	pal, err := palette.Open(path)
	if err != nil {
		logger.Warn("failed to load block palette", zap.String("path", path), zap.Error(err))
		return nil
	}
	logger.Debug("loaded block palette", zap.String("path", path), zap.Int("states", pal.Len()))
	return pal
}

func exportAll(ctx context.Context, exporter *recipe.Exporter, cfg config.Config, dumps []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outputs := &outputSet{claimed: make(map[string]string)}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for _, dump := range dumps {
		dump := dump
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return exportOne(exporter, cfg, outputs, dump)
		})
	}
	return g.Wait()
}

// outputSet keeps two packets of the same version from writing one file.
type outputSet struct {
	mu      sync.Mutex
	claimed map[string]string
}

func (s *outputSet) claim(path, dump string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if other, ok := s.claimed[path]; ok {
		return fmt.Errorf("%s and %s both export to %s", other, dump, path)
	}
	s.claimed[path] = dump
	return nil
}

func exportOne(exporter *recipe.Exporter, cfg config.Config, outputs *outputSet, dumpPath string) error {
	start := time.Now()
	pk, err := protocol.OpenCraftingData(dumpPath)
	if err != nil {
		return err
	}

	version := pk.ProtocolVersion
	if cfg.ProtocolVersion != 0 {
		version = cfg.ProtocolVersion
	}
	doc, err := exporter.BuildVersion(version, pk)
	if err != nil {
		logger.Error("export failed", zap.String("dump", dumpPath), zap.Error(err))
		return fmt.Errorf("%s: %w", dumpPath, err)
	}

	outPath := exportFlags.output
	if outPath == "" {
		outPath = filepath.Join(cfg.OutputDir, fmt.Sprintf("recipes_%d.json", version))
	}
	if err := outputs.claim(outPath, dumpPath); err != nil {
		return err
	}
	size, err := writeDocument(outPath, doc, cfg.Indent)
	if err != nil {
		return fmt.Errorf("%s: %w", dumpPath, err)
	}

	logger.Info("exported recipes",
		zap.String("dump", dumpPath),
		zap.String("output", outPath),
		zap.Int("recipes", len(doc.Recipes)),
		zap.String("size", humanSize(size)),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return nil
}

func writeDocument(path string, doc *recipe.Document, indent string) (size int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := doc.Encode(f, indent); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
