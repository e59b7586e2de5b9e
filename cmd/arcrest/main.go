package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configFile string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "arcrest",
	Short: "Browse and query ArcGIS for Server REST endpoints",
	Long: "arcrest navigates an ArcGIS for Server REST catalog, queries layers and " +
		"tables, and runs geoprocessing tasks synchronously or as polled jobs.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		applyConfig(cmd, cfg)
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(gpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
