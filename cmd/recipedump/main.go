// recipedump converts crafting data packet dumps into recipe documents.
//
// Usage:
//
//	recipedump export crafting_data.json                  # writes out/recipes_<version>.json
//	recipedump export --output recipes.json dump.json     # explicit output file
//	recipedump export -c recipedump.yaml a.json b.json    # several packets in parallel
//	recipedump palette block_palette.nbt canonical.nbt    # rewrite a palette in canonical order
//
// Settings come from the YAML file given with --config, then RECIPEDUMP_*
// environment variables, then flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "recipedump",
	Short: "Export crafting data packets as recipe documents",
	Long: `recipedump turns decoded crafting data packets into one JSON recipe
document per protocol version. Item user data and block states are embedded
as base64 little-endian NBT; shaped recipes are written as a symbol grid.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the document format version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "recipedump document format 1")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(exportCmd, paletteCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "recipedump: %v\n", err)
		os.Exit(1)
	}
}
