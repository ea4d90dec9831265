package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/bomforge/pkg/application/dto"
	"github.com/vsinha/bomforge/pkg/infrastructure/repositories/csv"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer renders the corrected BOM for the csv format
	Writer *csv.Loader
}

// Result file names written into OutputDir
const (
	TextFile = "resolved_bom.txt"
	JSONFile = "resolved_bom.json"
	CSVFile  = "resolved_bom.csv"
)

// Generate creates output in the specified format. Results go to w unless an
// output directory is configured.
func Generate(result *dto.ReconcileResult, config Config, w io.Writer) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(result, config, w)
	case "json":
		return generateJSONOutput(result, config, w)
	case "csv":
		return generateCSVOutput(result, config, w)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.ReconcileResult, config Config, w io.Writer) error {
	var b strings.Builder
	WriteSummary(&b, result)

	if config.OutputDir == "" {
		_, err := io.WriteString(w, b.String())
		return err
	}

	filename, err := writeResultFile(config.OutputDir, TextFile, []byte(b.String()))
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(w, "💾 Results saved to: %s\n", filename)
	}
	return nil
}

// WriteSummary renders the reconciliation report as aligned text tables
func WriteSummary(w io.Writer, result *dto.ReconcileResult) {
	fmt.Fprintf(w, "📊 BOM Reconciliation Summary\n")
	fmt.Fprintf(w, "=============================\n\n")

	fmt.Fprintf(w, "Input Entries: %d\n", result.InputEntries)
	fmt.Fprintf(w, "Placements: %d\n", result.Placements)
	fmt.Fprintf(w, "Ambiguous Rows: %d\n", len(result.Expansions))
	fmt.Fprintf(w, "Output Entries: %d\n", len(result.Entries))
	fmt.Fprintf(w, "Resolve Time: %v\n\n", result.ResolveTime)

	if len(result.Entries) > 0 {
		fmt.Fprintf(w, "📋 Entries:\n")
		fmt.Fprintf(w, "%-20s %-12s %-20s %-30s\n", "Name", "Value", "Part Number", "Designators")
		fmt.Fprintf(w, "%-20s %-12s %-20s %-30s\n",
			"--------------------", "------------", "--------------------", "------------------------------")

		for _, entry := range result.Entries {
			value := "-"
			if entry.Value != nil {
				value = entry.Value.String()
			}
			fmt.Fprintf(w, "%-20s %-12s %-20s %-30s\n",
				entry.Name,
				value,
				entry.PartNumber,
				strings.Join(entry.DesignatorStrings(), ","))
		}
		fmt.Fprintln(w)
	}

	if len(result.Expansions) > 0 {
		fmt.Fprintf(w, "🔀 Expanded Rows:\n")
		for _, expansion := range result.Expansions {
			names := make([]string, len(expansion.Children))
			for i, child := range expansion.Children {
				names[i] = child.Name
			}
			fmt.Fprintf(w, "  %q -> %s\n", expansion.Parent.Name, strings.Join(names, " | "))
		}
		fmt.Fprintln(w)
	}

	if len(result.Unmatched) > 0 {
		fmt.Fprintf(w, "⚠️  Values without placements:\n")
		for _, subName := range result.Unmatched {
			fmt.Fprintf(w, "  %s\n", subName)
		}
		fmt.Fprintln(w)
	}

	if len(result.DecodeFailures) > 0 {
		fmt.Fprintf(w, "⚠️  Decode failures:\n")
		fmt.Fprintf(w, "%-20s %-20s %s\n", "Name", "Designators", "Reason")
		for _, failure := range result.DecodeFailures {
			designators := make([]string, len(failure.Designators))
			for i, d := range failure.Designators {
				designators[i] = string(d)
			}
			fmt.Fprintf(w, "%-20s %-20s %s\n", failure.Name, strings.Join(designators, ","), failure.Reason)
		}
		fmt.Fprintln(w)
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.ReconcileResult, config Config, w io.Writer) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		_, err := fmt.Fprintln(w, string(jsonData))
		return err
	}

	filename, err := writeResultFile(config.OutputDir, JSONFile, jsonData)
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(w, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes the corrected BOM in the input column layout
func generateCSVOutput(result *dto.ReconcileResult, config Config, w io.Writer) error {
	writer := config.Writer
	if writer == nil {
		writer = csv.NewLoader()
	}

	if config.OutputDir == "" {
		return writer.WriteBOM(w, result.Entries)
	}

	filename := filepath.Join(config.OutputDir, CSVFile)
	if err := writer.SaveBOM(filename, result.Entries); err != nil {
		return fmt.Errorf("failed to write corrected BOM: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(w, "💾 Corrected BOM saved to: %s\n", filename)
	}
	return nil
}

func writeResultFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
