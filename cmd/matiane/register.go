// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gelati/matiane/internal/register"
	"github.com/gelati/matiane/pkg/types"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Manage the entry register (store, retrieve, export)",
	Long: `Register manages a local SQLite database built from extracted entries.
Use subcommands to ingest parse output, query entries, or export.`,
}

// --- store subcommand ---

var registerStoreCmd = &cobra.Command{
	Use:   "store <data.json>...",
	Short: "Ingest extracted entries into the register",
	Long: `Store reads parse output documents, ingests their entries into a
SQLite database with FTS5 indexing over the entry notes, and records
the ingest run. Re-ingesting an entry replaces its stored form.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRegisterStore,
}

func runRegisterStore(cmd *cobra.Command, args []string) error {
	store, err := register.NewStore(registerConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range args {
		entries, err := readEntriesFile(path)
		if err != nil {
			return err
		}
		if _, err := store.Ingest(context.Background(), entries, path, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// readEntriesFile accepts either a parse output document or a bare
// entry array.
func readEntriesFile(path string) ([]types.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Entries []types.Entry `json:"entries"`
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		if len(doc.Entries) == 0 {
			return nil, fmt.Errorf("%s contains no entries", path)
		}
		return doc.Entries, nil
	}

	var entries []types.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s contains no entries", path)
	}
	return entries, nil
}

// --- retrieve subcommand ---

var registerRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the register with full-text search and filters",
	Long: `Retrieve searches the register using FTS5 full-text search over entry
notes, structured filters (occupation, place, person type, entry number),
or a combination of both. Full-text matches are ranked by relevance;
filter-only queries come back in entry order.`,
	RunE: runRegisterRetrieve,
}

func runRegisterRetrieve(cmd *cobra.Command, args []string) error {
	store, err := register.NewStore(registerConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --occupation, --place, --type, or --number")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []register.StoredEntry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-12s  %-20s  %-12s  %-25s  %s\n",
		"Rank", "Entry", "Main Person", "Occupation", "Places", "Notes")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-12s  %-20s  %-12s  %-25s  %s\n",
			i+1, r.EntryID, clip(r.MainPerson.Name, 20), clip(r.MainPerson.Occupation, 12),
			clip(strings.Join(r.Places, ", "), 25), clip(r.Notes, 40))
	}

	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(results))
	return nil
}

// clip truncates s to at most n runes. Entry text is Georgian, so
// truncation counts runes rather than bytes to avoid splitting one.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var registerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the register to YAML or JSON",
	Long: `Export writes the full register (or a filtered subset) to export.yaml
or export.json inside the register directory. Supports the same filter
flags as retrieve for partial exports.`,
	RunE: runRegisterExport,
}

func runRegisterExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := registerConfigFromFlags(cmd)
	store, err := register.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.RegisterDir, "export.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.RegisterDir, "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func registerConfigFromFlags(cmd *cobra.Command) types.RegisterConfig {
	registerDir, _ := cmd.Flags().GetString("register-dir")
	registerDir = configDefault(registerDir, "register.register_dir", "register")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.RegisterConfig{
		RegisterDir: registerDir,
		MaxResults:  maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) register.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	occupation, _ := cmd.Flags().GetString("occupation")
	place, _ := cmd.Flags().GetString("place")
	personType, _ := cmd.Flags().GetString("type")
	number, _ := cmd.Flags().GetInt("number")
	limit, _ := cmd.Flags().GetInt("limit")

	return register.QueryOptions{
		Query:      queryText,
		Occupation: occupation,
		Place:      place,
		Type:       types.PersonType(personType),
		Number:     number,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	registerCmd.PersistentFlags().String("register-dir", "", "base directory for the register database (default register)")
	registerCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	registerRetrieveCmd.Flags().String("query", "", "full-text search over entry notes")
	registerRetrieveCmd.Flags().String("occupation", "", "filter by occupation: bishop, priest, monk, evangelist")
	registerRetrieveCmd.Flags().String("place", "", "filter by attested place")
	registerRetrieveCmd.Flags().String("type", "", "filter by person type: main, wife, son, daughter, brother, sister")
	registerRetrieveCmd.Flags().Int("number", 0, "filter by entry number")
	registerRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	registerRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	registerExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	registerExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	registerExportCmd.Flags().String("occupation", "", "filter by occupation for partial export")
	registerExportCmd.Flags().String("place", "", "filter by attested place for partial export")
	registerExportCmd.Flags().String("type", "", "filter by person type for partial export")
	registerExportCmd.Flags().Int("number", 0, "filter by entry number for partial export")
	registerExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	// Wire subcommands.
	registerCmd.AddCommand(registerStoreCmd)
	registerCmd.AddCommand(registerRetrieveCmd)
	registerCmd.AddCommand(registerExportCmd)

	rootCmd.AddCommand(registerCmd)
}
