// Package main provides the entry point for the PersonaMap server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "persona_map",
	Short: "PersonaMap HTTP API Server",
	Long:  "PersonaMap turns a public X handle into an LLM-generated persona and a set of personalized Toronto location recommendations, served over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
