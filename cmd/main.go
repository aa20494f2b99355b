package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"oxexplorer/internal/boundary"
	"oxexplorer/internal/config"
	"oxexplorer/internal/counciltax"
	"oxexplorer/internal/database"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/explorer"
	"oxexplorer/internal/observability"
)

// Exit codes.
const (
	exitWarning = 1 // the query had no answer (unknown name, no data, ...)
	exitFailure = 2 // configuration, store or I/O failure
)

// app carries everything a command needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	ex      *explorer.Explorer

	out     io.Writer
	stdin   *bufio.Reader
	tty     bool
	closers []func() error
}

func main() {
	a := &app{
		out:   os.Stdout,
		stdin: bufio.NewReader(os.Stdin),
		tty:   term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
	}
	root := newRootCmd(a)

	err := root.Execute()
	a.close()
	if err == nil {
		return
	}
	if errs.Recoverable(err) {
		printWarning(os.Stderr, err)
		os.Exit(exitWarning)
	}
	printError(os.Stderr, err)
	os.Exit(exitFailure)
}

func newRootCmd(a *app) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "oxexplorer",
		Short:         "Explore Oxfordshire house prices, broadband coverage and council tax",
		Long:          "oxexplorer answers questions over the Oxfordshire dataset: ward house price averages and trends, broadband coverage by area or postcode, and council tax by band.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || (cmd.HasParent() && cmd.Parent().Name() == "completion") {
				return nil
			}
			return a.setup(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults to $EXPLORER_CONFIG)")

	root.AddCommand(
		newListCmd(a, "wards", "List ward names", func(ctx context.Context) ([]string, error) { return a.ex.Wards(ctx) }),
		newListCmd(a, "districts", "List district names", func(ctx context.Context) ([]string, error) { return a.ex.Districts(ctx) }),
		newListCmd(a, "areas", "List broadband area names", func(ctx context.Context) ([]string, error) { return a.ex.Areas(ctx) }),
		newListCmd(a, "towns", "List council tax towns", func(ctx context.Context) ([]string, error) { return a.ex.Towns(ctx) }),
		newHouseCmd(a),
		newBroadbandCmd(a),
		newTaxCmd(a),
		newTrendsCmd(a),
		newBarsCmd(a),
		newWardAtCmd(a),
		newMenuCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads configuration and wires the explorer.
func (a *app) setup(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	a.metrics = observability.NewMetrics()

	db, err := database.NewDatabase(cfg.DB)
	if err != nil {
		return err
	}

	var xml counciltax.Source = counciltax.NewFileSource(cfg.XMLPath, a.metrics)
	if cfg.XMLCache {
		cached, err := counciltax.NewCachedDocument(cfg.XMLPath, clockwork.NewRealClock(), a.logger, a.metrics)
		if err != nil {
			a.logger.Warn("council tax memo disabled", "path", cfg.XMLPath, "error", err)
		} else {
			xml = cached
			a.closers = append(a.closers, cached.Close)
		}
	}

	var locator *boundary.Locator
	if cfg.BoundaryPath != "" {
		locator, err = boundary.Load(cfg.BoundaryPath, cfg.BoundaryNameField, boundary.CRS(cfg.BoundaryCRS))
		if err != nil {
			a.logger.Warn("ward boundaries unavailable", "path", cfg.BoundaryPath, "error", err)
			locator = nil
		} else {
			a.logger.Debug("ward boundaries loaded", "path", cfg.BoundaryPath, "wards", locator.Len())
		}
	}

	a.ex = explorer.New(explorer.Options{
		Store:      db,
		XML:        xml,
		Boundaries: locator,
		Logger:     a.logger,
		Metrics:    a.metrics,
		Clock:      clockwork.NewRealClock(),
	})
	a.logger.Debug("explorer ready", "driver", db.Driver(), "xml_cache", cfg.XMLCache)
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// interactive reports whether both stdin and stdout are terminals.
func (a *app) interactive() bool {
	return a.tty
}

// errMissingFlag is returned when a dimension flag is omitted and no terminal
// is available to ask for it.
func errMissingFlag(name string) error {
	return fmt.Errorf("--%s is required when not running in a terminal", name)
}

// isCancelled reports whether the user backed out of a picker.
func isCancelled(err error) bool {
	return errors.Is(err, errPickerCancelled)
}
