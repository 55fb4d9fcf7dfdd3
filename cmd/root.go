package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dondigital/storefront/internal/config"
	"github.com/spf13/cobra"
)

// Cfg is the global variable holding the loaded configuration, accessible to
// all Cobra commands throughout the application.
var Cfg *config.Config

// RootCmd is the base command for the CLI application. Subcommands
// (run-server, migrate, seed, stats) register themselves via their own
// init() functions to avoid import cycles.
var RootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Robux storefront and referral API",
	Long: `The dondigital storefront backend: product catalog, comment board,
affiliator registry and referral click/conversion tracking over a shared
relational store.`,
}

// Execute is the main entry point for the Cobra application, called from
// main.go.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig loads the application configuration before any command runs.
func initConfig() {
	var err error
	Cfg, err = config.LoadConfig()
	if err != nil {
		log.Printf("Warning: Problem loading configuration: %v. Using default values.", err)
	}
}
