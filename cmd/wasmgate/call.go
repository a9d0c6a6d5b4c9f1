package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <module.wasm> <function> [args...]",
	Short: "Load a module and call one exported function",
	Long: `Load a module, call an exported function with integer arguments, and
print the result.

  wasmgate call sum.wasm sum 2 3`,
	Args: cobra.MinimumNArgs(2),
	Run:  runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	callArgs, err := parseArgs(args[2:])
	if err != nil {
		fatal(err)
	}

	gate, err := newGate(cmd)
	if err != nil {
		fatal(err)
	}
	defer gate.Close(ctx)

	id, err := gate.Load(ctx, args[0])
	if err != nil {
		fatal(err)
	}

	value, hasValue, err := gate.Invoke(ctx, id, args[1], callArgs...)
	if err != nil {
		fatal(err)
	}

	if hasValue {
		fmt.Println(value)
	} else {
		fmt.Println("(no value)")
	}
}
