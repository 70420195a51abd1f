package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataloom-cli/internal/loader"
	"github.com/KaramelBytes/dataloom-cli/internal/profile"
	"github.com/KaramelBytes/dataloom-cli/internal/render"
)

var exportOutputPath string

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Clean a dataset and export it as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ds, err := loader.LoadFile(path, loader.DefaultOptions())
		if err != nil {
			return err
		}
		popt := profile.OptionsFromConfig(cfg)
		popt.Logger = slog.Default()
		res, err := profile.Run(ds, filepath.Base(path), popt)
		if err != nil {
			return err
		}

		out := exportOutputPath
		if out == "" {
			base := filepath.Base(path)
			out = "cleaned_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		if err := (render.CSVExporter{}).Export(f, res); err != nil {
			return fmt.Errorf("export cleaned data: %w", err)
		}
		fmt.Printf("✓ Exported cleaned data to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "path for the cleaned CSV (default cleaned_<name>.csv)")
}
