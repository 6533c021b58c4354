// GoMockup — Product mockup composition.
//
// Usage:
//
//	gomockup -input <folder> [-title <title>] [-type pattern] [options]
//	gomockup batch -input <parent> [-type pattern] [options]
//	gomockup zip -input <folder> [-max-mb 20]
//	gomockup init
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/digitalveil/GoMockup/internal/config"
	"github.com/digitalveil/GoMockup/pkg/assets"
	"github.com/digitalveil/GoMockup/pkg/mockup"
	"github.com/digitalveil/GoMockup/pkg/packaging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log := newLogger(cfg)

	var err error
	switch os.Args[1] {
	case "batch":
		err = runBatch(os.Args[2:], cfg, log)
	case "zip":
		err = runZip(os.Args[2:], cfg, log)
	case "init":
		err = runInit(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		// Default: single-folder mode (all flags on root).
		err = runFolder(os.Args[1:], cfg, log)
	}
	if err != nil {
		fatal(err)
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out zerolog.Logger
	if cfg.Pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		out = zerolog.New(os.Stdout)
	}
	return out.Level(level).With().Timestamp().Logger()
}

// commonFlags are shared by folder and batch mode.
type commonFlags struct {
	input       string
	title       string
	productType string
	presetPath  string
	watermark   string
	opacity     int
}

func registerCommon(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.input, "input", "", "Product folder (batch: parent of product folders)")
	fs.StringVar(&f.title, "title", "", "Listing title (default: derived from folder name)")
	fs.StringVar(&f.productType, "type", "pattern", "Product type preset")
	fs.StringVar(&f.presetPath, "preset", "", "Preset JSON file (overrides -type)")
	fs.StringVar(&f.watermark, "watermark", "", "Watermark text when no logo asset exists")
	fs.IntVar(&f.opacity, "opacity", -1, "Watermark opacity percent (0 disables)")
}

// buildOrchestrator resolves the preset and wires the pipeline.
func buildOrchestrator(f commonFlags, cfg config.Config, log zerolog.Logger) (*mockup.Orchestrator, error) {
	var preset mockup.Preset
	var err error
	if f.presetPath != "" {
		preset, err = mockup.ParsePresetFile(f.presetPath)
	} else {
		preset, err = mockup.PresetFor(f.productType)
	}
	if err != nil {
		return nil, err
	}

	opacity := f.opacity
	if opacity < 0 {
		opacity = cfg.WatermarkOpacity
	}
	if opacity >= 0 {
		preset = preset.With(mockup.Overrides{WatermarkOpacity: &opacity})
	}

	text := f.watermark
	if text == "" {
		text = cfg.WatermarkText
	}

	loader := assets.NewLoader(cfg.AssetsDir, log)
	return mockup.NewOrchestrator(preset, loader, text, log)
}

func runFolder(args []string, cfg config.Config, log zerolog.Logger) error {
	fs := flag.NewFlagSet("gomockup", flag.ExitOnError)
	var f commonFlags
	registerCommon(fs, &f)
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	if f.input == "" {
		printUsage()
		return fmt.Errorf("product folder is required (-input)")
	}

	orch, err := buildOrchestrator(f, cfg, log)
	if err != nil {
		return err
	}

	res := orch.Run(f.input, f.title)
	report(res, log)
	if res.Failed() {
		return fmt.Errorf("%s: %w", res.Folder, res.Err())
	}
	return nil
}

func runBatch(args []string, cfg config.Config, log zerolog.Logger) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	var f commonFlags
	registerCommon(fs, &f)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if f.input == "" {
		return fmt.Errorf("parent folder is required (-input)")
	}

	folders, err := productFolders(f.input)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		return fmt.Errorf("no product folders under %s", f.input)
	}

	orch, err := buildOrchestrator(f, cfg, log)
	if err != nil {
		return err
	}

	// Folders own disjoint data, so they compose concurrently.
	var g errgroup.Group
	g.SetLimit(cfg.MaxConcurrent)
	for _, folder := range folders {
		folder := folder
		g.Go(func() error {
			res := orch.Run(folder, "")
			report(res, log)
			if res.Failed() {
				return fmt.Errorf("%s: %w", res.Folder, res.Err())
			}
			return nil
		})
	}
	return g.Wait()
}

func runZip(args []string, cfg config.Config, log zerolog.Logger) error {
	fs := flag.NewFlagSet("zip", flag.ExitOnError)
	var input, out string
	var maxMB int
	fs.StringVar(&input, "input", "", "Product folder to archive")
	fs.StringVar(&out, "out", "", "Output directory (default: the product folder)")
	fs.IntVar(&maxMB, "max-mb", 0, "Part size limit in MB")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" {
		return fmt.Errorf("product folder is required (-input)")
	}
	if out == "" {
		out = input
	}
	if maxMB < 1 {
		maxMB = cfg.ZipMaxMB
	}

	files, err := assets.ListImages(input)
	if err != nil {
		return err
	}

	packer := packaging.NewPacker(log)
	written, err := packer.Archive(files, out, filepath.Base(input), int64(maxMB)<<20)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Printf("Created: %s\n", p)
	}
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var out string
	fs.StringVar(&out, "preset", "preset.json", "Output path for sample preset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.WriteFile(out, []byte(mockup.ExampleJSON()), 0644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	fmt.Printf("Created: %s\n", out)
	fmt.Println("Run: gomockup -input ./my-product -preset preset.json")
	return nil
}

// productFolders lists the immediate subdirectories of parent, skipping
// hidden folders and previous mocks output.
func productFolders(parent string) ([]string, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, err
	}

	var folders []string
	for _, e := range entries {
		if !e.IsDir() || e.Name()[0] == '.' || e.Name() == "mocks" {
			continue
		}
		folders = append(folders, filepath.Join(parent, e.Name()))
	}
	sort.Strings(folders)
	return folders, nil
}

func report(res mockup.Result, log zerolog.Logger) {
	for _, o := range res.Outcomes {
		if o.Err != nil {
			log.Error().Err(o.Err).Str("folder", res.Folder).Str("variant", o.Variant).Msg("variant failed")
			continue
		}
		log.Info().Str("folder", res.Folder).Str("variant", o.Variant).Str("path", o.Path).Msg("variant written")
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`GoMockup — Product Mockup Composition

USAGE:
    gomockup -input <folder> [-title <title>] [options]
    gomockup batch -input <parent> [options]
    gomockup zip -input <folder> [-max-mb 20]
    gomockup init [-preset preset.json]

FOLDER MODE:
    -input <path>          Product folder with source PNG/JPEG images
    -title <text>          Listing title (default: derived from folder name)
    -type <name>           Product type: pattern, clipart, border (default: pattern)
    -preset <path>         Preset JSON file (overrides -type)
    -watermark <text>      Watermark text when no logo asset exists
    -opacity <pct>         Watermark opacity percent, 0 disables

BATCH MODE:
    gomockup batch -input <parent>      Compose every product folder under parent

ZIP:
    gomockup zip -input <folder>        Pack folder images, split by size

EXAMPLES:
    gomockup init
    gomockup -input ./red-floral_seamless
    gomockup -input ./autumn-clipart -type clipart -title "Autumn Clipart"
    gomockup batch -input ./products -opacity 35
    gomockup zip -input ./red-floral_seamless -max-mb 20

ENVIRONMENT (.env supported):
    GOMOCKUP_ASSETS_DIR, GOMOCKUP_LOG_LEVEL, GOMOCKUP_PRETTY_LOG,
    GOMOCKUP_WATERMARK_TEXT, GOMOCKUP_WATERMARK_OPACITY,
    GOMOCKUP_MAX_CONCURRENT, GOMOCKUP_ZIP_MAX_MB
`)
}
