package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wudi/pdfdiff/annotate"
	"github.com/wudi/pdfdiff/compare"
	"github.com/wudi/pdfdiff/compose"
	"github.com/wudi/pdfdiff/config"
	"github.com/wudi/pdfdiff/extractor"
	"github.com/wudi/pdfdiff/highlight"
	"github.com/wudi/pdfdiff/license"
	"github.com/wudi/pdfdiff/observability"
)

type options struct {
	paths []string
	cfg   *config.Config
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfdiff: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdfdiff: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: pdfdiff [flags] <reference.pdf> <other.pdf> [more.pdf ...]\n")
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "Path to a YAML config file")
	outDir := flag.String("out", "", "Output directory for highlighted and combined PDFs")
	combined := flag.String("combined", "", "File name of the combined side-by-side PDF")
	backend := flag.String("extractor", "", "Word extraction backend: unidoc or plain")
	colors := flag.String("colors", "", "Comma-separated per-document highlight colors (#rrggbb), reference first")
	opacity := flag.Float64("opacity", 0, "Highlight fill opacity in (0, 1]")
	dpi := flag.Float64("dpi", 0, "Rasterization DPI for the combined PDF")
	caseSensitive := flag.Bool("case-sensitive", false, "Compare words case-sensitively")
	allowEmpty := flag.Bool("allow-empty-pages", false, "Accept pages without an extractable text layer")
	strictPages := flag.Bool("strict-pages", false, "Fail when documents have different page counts")
	debug := flag.Bool("debug", false, "Enable verbose logging")
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		return options{}, fmt.Errorf("need at least two PDF paths")
	}
	opts.paths = flag.Args()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return options{}, err
	}

	// Flags that were set explicitly override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.OutputDir = *outDir
		case "combined":
			cfg.CombinedName = *combined
		case "extractor":
			cfg.Extractor = *backend
		case "colors":
			cfg.Colors = strings.Split(*colors, ",")
		case "opacity":
			cfg.Opacity = *opacity
		case "dpi":
			cfg.DPI = *dpi
		case "case-sensitive":
			cfg.CaseSensitive = *caseSensitive
		case "allow-empty-pages":
			cfg.AllowEmptyPages = *allowEmpty
		case "strict-pages":
			cfg.StrictPageCount = *strictPages
		case "debug":
			cfg.Debug = *debug
		}
	})
	if cfg.Extractor != "unidoc" && cfg.Extractor != "plain" {
		return options{}, fmt.Errorf("unknown extractor %q (want unidoc or plain)", cfg.Extractor)
	}
	opts.cfg = cfg
	return opts, nil
}

func run(opts options) error {
	cfg := opts.cfg

	// Annotation, composition and the unidoc extractor all go through
	// unipdf, which rejects unlicensed use.
	if err := license.Setup(); err != nil {
		return err
	}

	log := logrus.New()
	log.Out = os.Stderr
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	palette := highlight.DefaultPalette()
	if len(cfg.Colors) > 0 {
		var err error
		palette, err = highlight.ParsePalette(cfg.Colors)
		if err != nil {
			return err
		}
	}

	var source extractor.Source
	switch cfg.Extractor {
	case "plain":
		source = extractor.NewPlainSource()
	default:
		source = extractor.NewUniDocSource()
	}

	pipeline := compare.New(
		source,
		annotate.New(cfg.Opacity),
		compose.New(cfg.DPI),
		compare.Options{
			OutputDir:       cfg.OutputDir,
			CombinedName:    cfg.CombinedName,
			Palette:         palette,
			CaseSensitive:   cfg.CaseSensitive,
			AllowEmptyPages: cfg.AllowEmptyPages,
			StrictPageCount: cfg.StrictPageCount,
			Logger:          observability.NewLogrus(log),
		},
	)

	result, err := pipeline.Run(context.Background(), opts.paths)
	if err != nil {
		return err
	}

	for _, path := range result.Highlighted {
		fmt.Println(path)
	}
	fmt.Println(result.Combined)
	if result.Mismatch {
		log.Warnf("page counts differ %v; compared first %d page(s)", result.PageCounts, result.Pages)
	}
	return nil
}
