package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/bomforge/pkg/infrastructure/config"
	"github.com/vsinha/bomforge/pkg/infrastructure/logging"
)

// GlobalOptions holds the persistent flags shared by all subcommands
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	LogLevel   string
}

// session is the configuration and logger built once per invocation
type session struct {
	options GlobalOptions
	config  *config.Config
	logger  *zap.Logger
}

func (s *session) load() error {
	cfg := config.DefaultConfig()
	if s.options.ConfigPath != "" {
		loaded, err := config.LoadFromFile(s.options.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	switch {
	case s.options.LogLevel != "":
		cfg.Log.Level = s.options.LogLevel
	case s.options.Verbose:
		cfg.Log.Level = "info"
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	s.config = cfg
	s.logger = logger
	return nil
}

func (s *session) close() {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}

// NewRootCommand builds the bomforge command tree
func NewRootCommand() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "bomforge",
		Short: "BOM reconciliation against pick-and-place data",
		Long: `Split ambiguous BOM rows using the component values recorded in a
pick-and-place export, and decode resistor value notations.

Examples:
  bomforge resolve --bom BOM.csv --placement PnP.csv     # Resolve ambiguous rows
  bomforge resolve --dir project/ --format csv -o out/   # Discover inputs, write corrected BOM
  bomforge decode 4k7 47R 2.2M                           # Decode resistor values
  bomforge validate --dir project/                       # Cross-check designators`,
		Version:       "0.3.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.options.ConfigPath, "config", "", "path to YAML configuration file")
	flags.BoolVarP(&s.options.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&s.options.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newResolveCommand(s),
		newDecodeCommand(s),
		newValidateCommand(s),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
