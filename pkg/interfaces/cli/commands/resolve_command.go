package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/bomforge/pkg/application/services"
	"github.com/vsinha/bomforge/pkg/infrastructure/config"
	"github.com/vsinha/bomforge/pkg/infrastructure/events"
	"github.com/vsinha/bomforge/pkg/infrastructure/logging"
	"github.com/vsinha/bomforge/pkg/infrastructure/metrics"
	"github.com/vsinha/bomforge/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bomforge/pkg/interfaces/cli/output"
)

// ResolveConfig holds configuration for the resolve command
type ResolveConfig struct {
	Inputs      InputFiles
	OutputDir   string
	Format      string
	MetricsFile string
	Verbose     bool
	Reconcile   services.ReconcileConfig
}

// ResolveCommand splits ambiguous BOM rows and writes the corrected BOM
type ResolveCommand struct {
	config   ResolveConfig
	settings *config.Config
	logger   *zap.Logger
}

// NewResolveCommand creates a new resolve command
func NewResolveCommand(cfg ResolveConfig, settings *config.Config, logger *zap.Logger) *ResolveCommand {
	if settings == nil {
		settings = config.DefaultConfig()
	}
	return &ResolveCommand{
		config:   cfg,
		settings: settings,
		logger:   logging.OrNop(logger),
	}
}

// Execute runs the resolve command
func (c *ResolveCommand) Execute(ctx context.Context, w io.Writer) error {
	files, err := c.config.Inputs.resolveInputFiles(c.settings.Discovery)
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(w, files)
	}

	loader := csv.NewLoader(c.settings.LoaderOptions()...)
	recorder := metrics.NewRecorder()
	eventStore := events.NewInMemoryEventStore()
	service := services.NewReconcileService(c.config.Reconcile, loader, eventStore, recorder, c.logger)

	if c.config.Verbose {
		fmt.Fprintf(w, "📜 Events:\n")
		handler := &eventLog{w: w}
		if err := eventStore.Subscribe(events.ReconcileEventTypes, handler); err != nil {
			return err
		}
		defer func() {
			if err := eventStore.Unsubscribe(handler); err != nil {
				c.logger.Warn("Failed to unsubscribe event log", zap.Error(err))
			}
		}()
	}

	result, err := service.ReconcileFiles(ctx, files["BOM"], files["Placement"])
	if err != nil {
		if csv.IsStructural(err) {
			return err
		}
		return fmt.Errorf("error reconciling BOM: %w", err)
	}

	if c.config.Verbose {
		recorded, err := eventStore.ReadEvents(result.RunID, 1)
		if err != nil {
			return fmt.Errorf("failed to read events for run %s: %w", result.RunID, err)
		}
		fmt.Fprintf(w, "\n✅ Resolved %d ambiguous rows in %v (%d events)\n\n",
			len(result.Expansions), result.ResolveTime, len(recorded))
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Writer:    loader,
	}
	if err := output.Generate(result, outputConfig, w); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.MetricsFile != "" {
		if err := recorder.WriteTextfile(c.config.MetricsFile); err != nil {
			return err
		}
	}

	return nil
}

// printHeader prints the command header information
func (c *ResolveCommand) printHeader(w io.Writer, files map[string]string) {
	fmt.Fprintf(w, "🚀 bomforge resolve\n")
	fmt.Fprintf(w, "Input files:\n")
	fmt.Fprintf(w, "  BOM: %s\n", files["BOM"])
	fmt.Fprintf(w, "  Placement: %s\n", files["Placement"])
	fmt.Fprintf(w, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(w, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(w)
}

func newResolveCommand(s *session) *cobra.Command {
	var cfg ResolveConfig
	var normalize, propagate, canonicalize bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Split ambiguous BOM rows using placement values",
		Long: `Resolve reads a BOM and a pick-and-place export, replaces every BOM row
whose name lists several comma-separated values with one entry per value,
and assigns each entry the designators placed with that value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Verbose = s.options.Verbose
			cfg.Reconcile = services.ReconcileConfig{
				NormalizeValues:       s.config.Resolve.NormalizeValues,
				PropagateParentFields: s.config.Resolve.PropagateParentFields,
				CanonicalizeValues:    s.config.Resolve.CanonicalizeValues,
			}
			if cmd.Flags().Changed("normalize") {
				cfg.Reconcile.NormalizeValues = normalize
			}
			if cmd.Flags().Changed("propagate") {
				cfg.Reconcile.PropagateParentFields = propagate
			}
			if cmd.Flags().Changed("canonicalize") {
				cfg.Reconcile.CanonicalizeValues = canonicalize
			}

			return NewResolveCommand(cfg, s.config, s.logger).Execute(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cfg.Inputs.addFlags(cmd)
	flags := cmd.Flags()
	flags.StringVarP(&cfg.Format, "format", "f", "text", "output format: text, json, csv")
	flags.StringVarP(&cfg.OutputDir, "output", "o", "", "output directory for results")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	flags.BoolVar(&normalize, "normalize", false, "join names and placed values by decoded magnitude")
	flags.BoolVar(&propagate, "propagate", false, "copy description and part number to split entries")
	flags.BoolVar(&canonicalize, "canonicalize", false, "decode resistor values after resolution")

	return cmd
}
