package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gelati/matiane/internal/pipeline"
)

var statsCmd = &cobra.Command{
	Use:   "stats <transcription.xml>",
	Short: "Aggregate a register transcription without writing artifacts",
	Long: `Stats runs the extraction cascade and reports aggregate statistics
(entry and person totals, family names, attested places, occupations)
without writing the JSON or JavaScript artifacts.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
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

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	printSummary(stats)
	if len(stats.FamilyNames) > 0 {
		fmt.Printf("\nFamily names: %s\n", strings.Join(stats.FamilyNames, ", "))
	}
	return nil
}

func init() {
	statsCmd.Flags().String("lexicon", "", "YAML file overriding the built-in morphological lexicon")
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}
