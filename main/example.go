package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/gocluster/io"
)

func init() {
	rootCmd.AddCommand(exampleCmd)
}

var exampleCmd = &cobra.Command{
	Use:       "example-config <Cluster|Analyze>",
	Short:     "Print an example configuration file",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"Cluster", "Analyze"},
	RunE:      runExample,
}

func runExample(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "Cluster":
		fmt.Fprintln(cmd.OutOrStdout(), io.ExampleClusterFile)
	case "Analyze":
		fmt.Fprintln(cmd.OutOrStdout(), io.ExampleAnalyzeFile)
	default:
		return withCode(ExitError, fmt.Errorf(
			"Unrecognized config type '%s'. Only recognized types are "+
				"'Cluster' and 'Analyze'.", args[0],
		))
	}
	return nil
}
