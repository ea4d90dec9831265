package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vsinha/bomforge/pkg/infrastructure/config"
	"github.com/vsinha/bomforge/pkg/infrastructure/discovery"
)

// InputFiles names the BOM and placement exports of one board
type InputFiles struct {
	BOMFile       string
	PlacementFile string
	ProjectDir    string
}

func (in *InputFiles) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.BOMFile, "bom", "", "path to BOM CSV file")
	cmd.Flags().StringVar(&in.PlacementFile, "placement", "", "path to pick-and-place CSV file")
	cmd.Flags().StringVar(&in.ProjectDir, "dir", "", "project directory to search for inputs")
}

// validateInputs checks that the inputs can be located
func (in InputFiles) validateInputs() error {
	if in.ProjectDir == "" && (in.BOMFile == "" || in.PlacementFile == "") {
		return fmt.Errorf("must specify either --dir or both --bom and --placement")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use. Explicit files
// take precedence over discovery in the project directory.
func (in InputFiles) resolveInputFiles(cfg config.DiscoveryConfig) (map[string]string, error) {
	if err := in.validateInputs(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	bomPath := in.BOMFile
	if bomPath == "" {
		found, err := discovery.FindOne(in.ProjectDir, "BOM", cfg.BOMPatterns)
		if err != nil {
			return nil, err
		}
		bomPath = found
	}

	placementPath := in.PlacementFile
	if placementPath == "" {
		found, err := discovery.FindOne(in.ProjectDir, "placement", cfg.PlacementPatterns)
		if err != nil {
			return nil, err
		}
		placementPath = found
	}

	files := map[string]string{
		"BOM":       bomPath,
		"Placement": placementPath,
	}

	for _, name := range []string{"BOM", "Placement"} {
		if _, err := os.Stat(files[name]); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, files[name])
		}
	}

	return files, nil
}
