package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/bomforge/pkg/application/services"
	"github.com/vsinha/bomforge/pkg/domain/entities"
	"github.com/vsinha/bomforge/pkg/infrastructure/config"
	"github.com/vsinha/bomforge/pkg/infrastructure/repositories/csv"
)

// ValidateCommand cross-checks BOM designators against the placement data
type ValidateCommand struct {
	inputs    InputFiles
	settings  *config.Config
	logger    *zap.Logger
	verbose   bool
	normalize bool
}

// NewValidateCommand creates a new validate command. With normalize set,
// entry names and placed values are compared by decoded magnitude.
func NewValidateCommand(inputs InputFiles, settings *config.Config, logger *zap.Logger, verbose, normalize bool) *ValidateCommand {
	if settings == nil {
		settings = config.DefaultConfig()
	}
	return &ValidateCommand{
		inputs:    inputs,
		settings:  settings,
		logger:    logger,
		verbose:   verbose,
		normalize: normalize,
	}
}

// Execute runs the validation and fails when any error was found
func (c *ValidateCommand) Execute(ctx context.Context, w io.Writer) error {
	files, err := c.inputs.resolveInputFiles(c.settings.Discovery)
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	loader := csv.NewLoader(c.settings.LoaderOptions()...)
	service := services.NewReconcileService(services.ReconcileConfig{NormalizeValues: c.normalize}, loader, nil, nil, c.logger)

	entries, placements, err := service.LoadInputs(files["BOM"], files["Placement"])
	if err != nil {
		return err
	}

	validation, err := service.Validate(ctx, entries, placements)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "🔍 Validated %d BOM entries against %d placements\n", len(entries), len(placements))
	if c.verbose {
		printPackageSummary(w, placements)
	}
	for _, warning := range validation.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
	for _, message := range validation.Errors {
		fmt.Fprintf(w, "❌ %s\n", message)
	}

	if !validation.Valid() {
		return fmt.Errorf("validation failed with %d errors", len(validation.Errors))
	}
	fmt.Fprintln(w, "✅ BOM and placement data are consistent")
	return nil
}

// printPackageSummary counts placements per recognized package
func printPackageSummary(w io.Writer, placements []*entities.PlacementEntry) {
	counts := make(map[entities.Package]int)
	unknown := 0
	for _, placement := range placements {
		pkg, err := entities.ParsePackage(placement.Footprint)
		if err != nil {
			unknown++
			continue
		}
		counts[pkg]++
	}

	packages := make([]entities.Package, 0, len(counts))
	for pkg := range counts {
		packages = append(packages, pkg)
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i] < packages[j] })

	fmt.Fprintf(w, "📦 Packages:\n")
	for _, pkg := range packages {
		fmt.Fprintf(w, "  %-10s %d\n", pkg, counts[pkg])
	}
	if unknown > 0 {
		fmt.Fprintf(w, "  %-10s %d\n", "other", unknown)
	}
}

func newValidateCommand(s *session) *cobra.Command {
	var inputs InputFiles
	var normalize bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Cross-check BOM designators against placement data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("normalize") {
				normalize = s.config.Resolve.NormalizeValues
			}
			return NewValidateCommand(inputs, s.config, s.logger, s.options.Verbose, normalize).Execute(cmd.Context(), cmd.OutOrStdout())
		},
	}

	inputs.addFlags(cmd)
	cmd.Flags().BoolVar(&normalize, "normalize", false, "compare names and placed values by decoded magnitude")
	return cmd
}
