package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/persona-map/internal/config"
	"github.com/marcus/persona-map/internal/observability"
)

var (
	personaHandle    string
	personaLocations bool
	personaVerbose   bool
)

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Generate a persona for a handle from the command line",
	Long:  `Run the full pipeline once for a single X handle and print the resulting persona (and optionally its location recommendations) as JSON.`,
	RunE:  runPersona,
}

func init() {
	personaCmd.Flags().StringVarP(&personaHandle, "handle", "x", "", "X handle to profile (required)")
	personaCmd.Flags().BoolVarP(&personaLocations, "locations", "l", false, "Also generate location recommendations")
	personaCmd.Flags().BoolVarP(&personaVerbose, "verbose", "v", false, "Print formatted summaries to stderr in addition to JSON")

	if err := personaCmd.MarkFlagRequired("handle"); err != nil {
		panic(fmt.Sprintf("failed to mark handle flag as required: %v", err))
	}

	rootCmd.AddCommand(personaCmd)
}

func runPersona(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg := config.Load()

	orch, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	printer := observability.NewPrinter(os.Stderr)

	p, err := orch.CreatePersona(ctx, personaHandle)
	if err != nil {
		return err
	}
	if personaVerbose {
		printer.PrintPersona(p)
	}

	output := map[string]any{"persona": p}

	if personaLocations {
		set, err := orch.CreateRecommendations(ctx, p)
		if err != nil {
			return err
		}
		if personaVerbose {
			printer.PrintLocations(set.Locations)
		}
		output["locations"] = set.Locations
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
