package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	domain "github.com/vsinha/bomforge/pkg/domain/services"
)

// DecodeCommand prints the canonical magnitude of resistor value strings
type DecodeCommand struct {
	showForm bool
	logger   *zap.Logger
}

// NewDecodeCommand creates a new decode command
func NewDecodeCommand(showForm bool, logger *zap.Logger) *DecodeCommand {
	return &DecodeCommand{showForm: showForm, logger: logger}
}

// Execute decodes every value, reporting each result before returning an
// error if any value failed
func (c *DecodeCommand) Execute(values []string, out, errOut io.Writer) error {
	outcomes, err := domain.DecodeAll(domain.DecodeResistance, values)

	failed := 0
	for _, outcome := range outcomes {
		if !outcome.OK() {
			failed++
			fmt.Fprintf(errOut, "%-12s %v\n", outcome.Raw, outcome.Err)
			continue
		}

		if !c.showForm {
			fmt.Fprintf(out, "%-12s %s\n", outcome.Raw, outcome.Value)
			continue
		}
		_, form, _ := domain.DecodeResistanceForm(outcome.Raw)
		fmt.Fprintf(out, "%-12s %-12s %s\n", outcome.Raw, outcome.Value, form)
	}

	if err != nil {
		if c.logger != nil {
			c.logger.Debug("Decode failures", zap.Error(err))
		}
		return fmt.Errorf("%d of %d values could not be decoded", failed, len(values))
	}
	return nil
}

func newDecodeCommand(s *session) *cobra.Command {
	var showForm bool

	cmd := &cobra.Command{
		Use:   "decode VALUE...",
		Short: "Decode resistor value notations",
		Long: `Decode prints the resistance in ohms for each value. Accepted notations
are the R suffix (47R, 4.7R), the code form (4k7, 2M2, 4R7) and the
multiplier form (4.7k, 10M, 220). A trailing "ohm" or "Ω" is ignored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDecodeCommand(showForm, s.logger).Execute(args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&showForm, "form", false, "print the notation each value was written in")
	return cmd
}
