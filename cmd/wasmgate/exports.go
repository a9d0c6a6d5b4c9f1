package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportsCmd = &cobra.Command{
	Use:   "exports <module.wasm>...",
	Short: "List the exported function signatures of modules",
	Args:  cobra.MinimumNArgs(1),
	Run:   runExports,
}

func init() {
	rootCmd.AddCommand(exportsCmd)
}

func runExports(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	gate, err := newGate(cmd)
	if err != nil {
		fatal(err)
	}
	defer gate.Close(ctx)

	for _, path := range args {
		if _, err := gate.Load(ctx, path); err != nil {
			fatal(err)
		}
	}

	rows := gate.Exports()
	if len(rows) == 0 {
		fmt.Println("no callable exports")
		return
	}

	fmt.Printf("%-36s  %-24s  %-20s  %s\n", "INSTANCE", "FUNCTION", "INPUTS", "OUTPUTS")
	for _, row := range rows {
		fmt.Printf("%-36s  %-24s  %-20s  %s\n", row.InstanceID, row.Name, row.Inputs, row.Outputs)
	}
}
