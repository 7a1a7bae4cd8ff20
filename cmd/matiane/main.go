// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the matiane CLI.
// Implements: prd003-structured-extraction, prd004-freetext-fallback,
//             prd006-aggregation, prd007-export, prd008-register (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// configDefault returns flagValue if set, then the config file value
// for key, then fallback. Flags stay authoritative over matiane.yaml.
func configDefault(flagValue, key, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// rootCmd is the base command for the matiane CLI.
var rootCmd = &cobra.Command{
	Use:   "matiane",
	Short: "Prosopographical extraction for the Ṭbetis sulta maṭiane",
	Long: `matiane converts TEI transcriptions of the Ṭbetis sulta maṭiane, the
memorial register of the Ṭbeti monastery, into normalized prosopographical
records. Entries are extracted through a cascade that prefers structured
markup and falls back to free-text recovery when the markup is damaged.

Each stage is a subcommand: parse extracts a transcription and writes the
JSON and JavaScript artifacts, stats aggregates without writing artifacts,
and register manages a queryable SQLite database of extracted entries.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./matiane.yaml or ~/.config/matiane/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("matiane")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "matiane"))
		}
	}

	viper.SetEnvPrefix("MATIANE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
