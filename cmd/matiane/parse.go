package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gelati/matiane/internal/export"
	"github.com/gelati/matiane/internal/morphology"
	"github.com/gelati/matiane/internal/pipeline"
	"github.com/gelati/matiane/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <transcription.xml>",
	Short: "Extract a register transcription and export its entries",
	Long: `Parse reads a TEI transcription of the register, extracts its
commemorative entries through the structured and free-text cascade, and
writes the JSON document and the JavaScript artifact consumed by the
HTML database. Extraction diagnostics go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	lex, err := lexiconFromFlags(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.New(lex)
	if err != nil {
		return err
	}

	entries := p.ParseFile(args[0], os.Stderr)
	if len(entries) == 0 {
		return fmt.Errorf("no entries found in %s: every extraction strategy came back empty", args[0])
	}

	stats := pipeline.Aggregate(entries, p.Classifier())

	cfg := exportConfigFromFlags(cmd)
	exp := export.New(cfg)
	if err := exp.WriteJSON(cfg.JSONPath, entries, stats); err != nil {
		return err
	}
	fmt.Printf("Data exported to %s\n", cfg.JSONPath)
	if err := exp.WriteJS(cfg.JSPath, entries, stats); err != nil {
		return err
	}
	fmt.Printf("JavaScript data exported to %s\n", cfg.JSPath)

	printSummary(stats)
	return nil
}

// printSummary reports aggregate statistics, truncating the place list
// to its first ten names.
func printSummary(stats types.Statistics) {
	color.New(color.FgCyan, color.Bold).Println("\nParsing summary")
	fmt.Printf("Total entries:      %d\n", stats.TotalEntries)
	fmt.Printf("Total persons:      %d\n", stats.TotalPersons)
	fmt.Printf("Unique places:      %d\n", stats.UniquePlaces())
	fmt.Printf("Unique occupations: %d\n", stats.UniqueOccupations())

	if len(stats.Places) > 0 {
		color.New(color.FgGreen).Printf("\nPlaces found: ")
		fmt.Println(joinHead(stats.Places, 10))
	}
	if len(stats.Occupations) > 0 {
		color.New(color.FgGreen).Printf("Occupations found: ")
		fmt.Println(strings.Join(stats.Occupations, ", "))
	}
}

// joinHead joins up to n values, marking truncation with an ellipsis.
func joinHead(values []string, n int) string {
	if len(values) <= n {
		return strings.Join(values, ", ")
	}
	return strings.Join(values[:n], ", ") + ", ..."
}

func lexiconFromFlags(cmd *cobra.Command) (morphology.Lexicon, error) {
	path, _ := cmd.Flags().GetString("lexicon")
	path = configDefault(path, "parse.lexicon_path", "")
	if path == "" {
		return morphology.DefaultLexicon(), nil
	}
	return morphology.Load(path)
}

func exportConfigFromFlags(cmd *cobra.Command) types.ExportConfig {
	cfg := types.DefaultExportConfig()

	jsonPath, _ := cmd.Flags().GetString("json")
	cfg.JSONPath = configDefault(jsonPath, "export.json_path", cfg.JSONPath)

	jsPath, _ := cmd.Flags().GetString("js")
	cfg.JSPath = configDefault(jsPath, "export.js_path", cfg.JSPath)

	return cfg
}

func init() {
	parseCmd.Flags().String("json", "", "output path for the JSON document (default tbeti_data.json)")
	parseCmd.Flags().String("js", "", "output path for the JavaScript artifact (default tbeti_data.js)")
	parseCmd.Flags().String("lexicon", "", "YAML file overriding the built-in morphological lexicon")

	rootCmd.AddCommand(parseCmd)
}
