package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tessob/wasmgate"
)

var rootCmd = &cobra.Command{
	Use:   "wasmgate",
	Short: "Content-addressed WASM instance host",
	Long: `wasmgate - Load WebAssembly modules and call their integer exports.

Modules are identified by their content: loading the same bytes twice
yields the same instance identifier. Exported functions taking and
returning i32/i64 can be called from the command line, over HTTP, or
interactively.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("cache-dir", "", "Compilation cache directory")
	rootCmd.PersistentFlags().Uint32("memory-limit-pages", 0, "Guest memory limit in 64KiB pages")
}

// newGate builds a Gate from the persistent flags.
func newGate(cmd *cobra.Command) (*wasmgate.Gate, error) {
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	pages, _ := cmd.Flags().GetUint32("memory-limit-pages")

	return wasmgate.New(context.Background(), &wasmgate.Options{
		CacheDir:         cacheDir,
		MemoryLimitPages: pages,
	})
}

func parseArgs(raw []string) ([]int64, error) {
	args := make([]int64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %q is not an integer", i, s)
		}
		args[i] = v
	}
	return args, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
