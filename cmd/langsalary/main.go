package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/storage"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

type options struct {
	configPath string
	languages  string
	source     string
	area       string
	town       string
	catalogue  string
	pages      int
	proxyURL   string
	chartPath  string
	dumpPath   string
	progress   bool
}

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n📋 langsalary Usage Examples 📋")
	fmt.Println("\n1. Average salaries for the default languages (Python, Java, 1C) in Moscow on both sources:")
	fmt.Println("   SJ_SECRET_KEY=v3.r.xxx langsalary")

	fmt.Println("\n2. Only HeadHunter, custom languages, Saint Petersburg:")
	fmt.Println("   langsalary -source hh -area 2 -languages \"Go,Rust,Python\"")

	fmt.Println("\n3. SuperJob in Nizhny Novgorod with a progress bar and no banner:")
	fmt.Println("   langsalary -source superjob -town 12 -progress -silence")

	fmt.Println("\n4. Write an HTML chart and a JSON dump of every retrieved listing:")
	fmt.Println("   langsalary -chart salaries.html -dump vacancies.json")

	fmt.Println("\n5. Use a YAML config file and a proxy:")
	fmt.Println("   langsalary -config langsalary.yaml -proxy http://localhost:8080")

	fmt.Println("\nHH area codes: https://api.hh.ru/areas  SuperJob town codes: https://api.superjob.ru/2.0/towns/")
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a YAML config file (default langsalary.yaml if present)")
	flag.StringVar(&opts.languages, "languages", "", "Comma separated programming languages (default Python,Java,1C)")
	flag.StringVar(&opts.source, "source", "", "Source to query (hh, superjob). If not specified, queries both.")
	flag.StringVar(&opts.area, "area", "", "HH area code (1 Moscow, 2 Saint Petersburg, 66 Nizhny Novgorod)")
	flag.StringVar(&opts.town, "town", "", "SuperJob town code (4 Moscow, 12 Nizhny Novgorod)")
	flag.StringVar(&opts.catalogue, "catalogue", "", "SuperJob catalogue code (33 IT)")
	flag.IntVar(&opts.pages, "pages", 0, "Maximum pages per language and source (default from config)")
	flag.StringVar(&opts.proxyURL, "proxy", "", "Proxy URL to use")
	flag.StringVar(&opts.chartPath, "chart", "", "Write an HTML bar chart of average salaries to this file")
	flag.StringVar(&opts.dumpPath, "dump", "", "Write summaries and all retrieved listings as JSON to this file")
	flag.BoolVar(&opts.progress, "progress", false, "Show a progress bar while paging")
	debug := flag.Bool("debug", false, "Enable debug logging")
	examples := flag.Bool("examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	ui.PrintBanner(*silence || *noBanner)

	if *examples {
		printExamples()
		return
	}

	logger := pterm.DefaultLogger.WithWriter(os.Stderr).WithLevel(pterm.LogLevelInfo)
	if *debug {
		logger = logger.WithLevel(pterm.LogLevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("langsalary failed", logger.Args("error", err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *pterm.Logger) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, opts)

	sources := utils.ValidSources()
	if opts.source != "" {
		if !utils.IsValidSource(opts.source) {
			return fmt.Errorf("invalid source %q, must be one of: %s", opts.source, strings.Join(utils.ValidSources(), ", "))
		}
		sources = []string{strings.ToLower(strings.TrimSpace(opts.source))}
	}

	if err := cfg.Validate(sources); err != nil {
		return err
	}

	httpClient, err := client.CreateHTTPClient(client.Options{
		ConnectTimeout: cfg.HTTP.ConnectTimeout,
		HeaderTimeout:  cfg.HTTP.HeaderTimeout,
		Timeout:        cfg.HTTP.Timeout,
		ProxyURL:       cfg.HTTP.Proxy,
	})
	if err != nil {
		return err
	}

	agg := scraper.NewAggregator(httpClient, logger, scraper.AggregatorOptions{
		MaxPages: cfg.MaxPages,
		Progress: opts.progress,
	})

	var dump *storage.Dump
	if opts.dumpPath != "" {
		dump = storage.NewDump()
	}

	var reports []models.Report
	for _, name := range sources {
		src, err := scraper.NewSource(name, cfg)
		if err != nil {
			return err
		}

		logger.Info("Querying source", logger.Args("source", src.Title(), "languages", strings.Join(cfg.Languages, ", ")))

		summaries := make(map[string]models.LanguageSummary, len(cfg.Languages))
		for _, lang := range cfg.Languages {
			summary, listings, err := agg.Collect(ctx, src, lang)
			if err != nil {
				return err
			}
			if summary.NoData {
				logger.Warn("No salary data", logger.Args("source", src.Title(), "language", lang))
			}
			summaries[lang] = *summary
			if dump != nil {
				dump.AddListings(src.Name(), lang, listings)
			}
		}

		reports = append(reports, ui.NewReport(src.Title(), src.Name(), summaries, cfg.Languages))
	}

	for _, report := range reports {
		table, err := ui.RenderTable(report)
		if err != nil {
			return fmt.Errorf("render %s table: %w", report.Title, err)
		}
		fmt.Println(table)
	}

	if opts.chartPath != "" {
		if err := ui.WriteChart(opts.chartPath, reports); err != nil {
			return err
		}
		logger.Info("Chart written", logger.Args("path", opts.chartPath))
	}

	if dump != nil {
		dump.Reports = reports
		if err := dump.WriteFile(opts.dumpPath); err != nil {
			return err
		}
		logger.Info("Dump written", logger.Args("path", opts.dumpPath, "run_id", dump.RunID))
	}

	return nil
}

// applyFlags overrides the loaded configuration with explicitly set flags
func applyFlags(cfg *config.Config, opts options) {
	if langs := utils.ParseList(opts.languages); len(langs) > 0 {
		cfg.Languages = langs
	}
	if opts.area != "" {
		cfg.HH.Area = opts.area
	}
	if opts.town != "" {
		cfg.SuperJob.Town = opts.town
	}
	if opts.catalogue != "" {
		cfg.SuperJob.Catalogue = opts.catalogue
	}
	if opts.pages > 0 {
		cfg.MaxPages = opts.pages
	}
	if opts.proxyURL != "" {
		cfg.HTTP.Proxy = opts.proxyURL
	}
}
