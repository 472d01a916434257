package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj41/recipedump/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette <in.nbt> <out.nbt>",
	Short: "Rewrite a block palette with sorted compound entries",
	Long: `Loads a gzip NBT block palette and writes it back with every compound's
entries in sorted order, the order the exporter encodes block states in.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pal, err := palette.Open(args[0])
		if err != nil {
			return err
		}
		if err := pal.Save(args[1]); err != nil {
			return fmt.Errorf("%s: %w", args[1], err)
		}
		logger.Info("wrote palette", zap.String("path", args[1]), zap.Int("states", pal.Len()))
		return nil
	},
}
