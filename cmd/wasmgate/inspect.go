package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <module.wasm>",
	Short: "Browse and call a module's exports interactively",
	Args:  cobra.ExactArgs(1),
	Run:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fatal(fmt.Errorf("inspect needs an interactive terminal; use 'exports' or 'call' instead"))
	}

	if err := runInteractive(cmd, args[0]); err != nil {
		fatal(err)
	}
}
