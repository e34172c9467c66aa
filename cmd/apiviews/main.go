package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"apiviews/internal/apiclient"
	"apiviews/internal/bank"
	"apiviews/internal/cocktail"
	"apiviews/internal/config"
	"apiviews/internal/logging"
	"apiviews/internal/meal"
	"apiviews/internal/trace"
	"apiviews/internal/ui"
)

// options holds the command-line overrides. Empty values keep what the
// environment (or .env) configured.
type options struct {
	screen      string
	bankURL     string
	cocktailURL string
	mealURL     string
	logFile     string
	logLevel    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("apiviews", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.screen, "screen", "bank", "screen to open first: bank, cocktails or meals")
	fs.StringVar(&opts.bankURL, "bank-url", "", "bank API base URL (overrides APIVIEWS_BANK_URL)")
	fs.StringVar(&opts.cocktailURL, "cocktail-url", "", "cocktail API base URL (overrides APIVIEWS_COCKTAIL_URL)")
	fs.StringVar(&opts.mealURL, "meal-url", "", "meal API base URL (overrides APIVIEWS_MEAL_URL)")
	fs.StringVar(&opts.logFile, "log-file", "", "append logs to this file (overrides APIVIEWS_LOG_FILE)")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides APIVIEWS_LOG_LEVEL)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: apiviews [flags]\n\n")
		fmt.Fprintf(stderr, "Browse bank branches, cocktails and meals from public REST APIs.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// apply copies non-empty overrides into cfg.
func (o options) apply(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Providers.BankURL, o.bankURL)
	set(&cfg.Providers.CocktailURL, o.cocktailURL)
	set(&cfg.Providers.MealURL, o.mealURL)
	set(&cfg.Log.File, o.logFile)
	set(&cfg.Log.Level, o.logLevel)
}

// buildDeps wires one API client per provider.
func buildDeps(cfg *config.Config, tp *trace.Provider, log *slog.Logger) ui.Deps {
	client := func(provider, base string) *apiclient.Client {
		return apiclient.New(provider, base,
			apiclient.WithTimeout(cfg.HTTPTimeout),
			apiclient.WithTracer(tp.Tracer()),
			apiclient.WithLogger(log.With("provider", provider)),
		)
	}
	return ui.Deps{
		Bank:      bank.NewClient(client("bank", cfg.Providers.BankURL)),
		Cocktails: cocktail.NewClient(client("cocktail", cfg.Providers.CocktailURL)),
		Meals:     meal.NewClient(client("meal", cfg.Providers.MealURL)),
		Timeout:   cfg.HTTPTimeout,
		Logger:    log,
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	start, err := ui.ParseScreen(opts.screen)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(cfg.Log.File, logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	defer closeLog()

	tp, err := trace.NewProvider(ctx, trace.Config{Endpoint: cfg.Trace.Endpoint, ServiceName: cfg.Trace.ServiceName})
	if err != nil {
		log.Warn("tracing disabled", "err", err)
		tp = trace.Disabled()
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("trace shutdown", "err", err)
		}
	}()

	log.Info("starting", "screen", start, "tracing", tp.Enabled(),
		"bank", cfg.Providers.BankURL, "cocktail", cfg.Providers.CocktailURL, "meal", cfg.Providers.MealURL)

	model := ui.NewAppModel(buildDeps(cfg, tp, log), start).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
