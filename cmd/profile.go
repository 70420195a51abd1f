package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataloom-cli/internal/charts"
	"github.com/KaramelBytes/dataloom-cli/internal/grounding"
	"github.com/KaramelBytes/dataloom-cli/internal/loader"
	"github.com/KaramelBytes/dataloom-cli/internal/profile"
	"github.com/KaramelBytes/dataloom-cli/internal/render"
	"github.com/KaramelBytes/dataloom-cli/internal/utils"
)

var (
	profOutputPath    string
	profJSON          bool
	profDelimiter     string
	profSheetName     string
	profSheetIndex    int
	profMaxRows       int
	profExportCleaned string
	profCharts        bool
	profContext       bool
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Clean a CSV/TSV/XLSX dataset and report statistics and insights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		lopt, err := loaderOptions()
		if err != nil {
			return err
		}
		ds, err := loader.LoadFile(path, lopt)
		if err != nil {
			return err
		}

		popt := profile.OptionsFromConfig(cfg)
		popt.Logger = slog.Default()
		res, err := profile.Run(ds, filepath.Base(path), popt)
		if err != nil {
			return err
		}

		var renderer profile.Renderer = render.Markdown{}
		if profJSON {
			renderer = render.JSON{}
		}
		out, err := renderer.Render(res)
		if err != nil {
			return err
		}
		if profCharts {
			b, err := utils.PrettyJSON(charts.Suggest(res.Types, res.Stats))
			if err != nil {
				return err
			}
			out += "\n[CHART SUGGESTIONS]\n" + string(b) + "\n"
		}
		if profContext {
			builder := grounding.Builder{SampleRows: sampleRows()}
			b, err := utils.PrettyJSON(builder.Documents(res))
			if err != nil {
				return err
			}
			out += "\n[GROUNDING CONTEXT]\n" + string(b) + "\n"
		}

		if profOutputPath != "" {
			if err := utils.SafeWriteFile(profOutputPath, []byte(out)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote profile to %s\n", profOutputPath)
		} else {
			fmt.Println(out)
		}

		if profExportCleaned != "" {
			f, err := os.Create(profExportCleaned)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := (render.CSVExporter{}).Export(f, res); err != nil {
				return fmt.Errorf("export cleaned data: %w", err)
			}
			fmt.Printf("✓ Exported cleaned data to %s\n", profExportCleaned)
		}
		return nil
	},
}

func loaderOptions() (loader.Options, error) {
	opt := loader.DefaultOptions()
	switch profDelimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", profDelimiter)
	}
	opt.SheetName = profSheetName
	opt.SheetIndex = profSheetIndex
	if profMaxRows > 0 {
		opt.MaxRows = profMaxRows
	} else if cfg != nil {
		opt.MaxRows = cfg.MaxRows
	}
	return opt, nil
}

func sampleRows() int {
	if cfg != nil && cfg.SampleRows > 0 {
		return cfg.SampleRows
	}
	return 5
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile")
	profileCmd.Flags().BoolVar(&profJSON, "json", false, "emit JSON instead of Markdown")
	profileCmd.Flags().StringVar(&profDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	profileCmd.Flags().StringVar(&profSheetName, "sheet-name", "", "XLSX: sheet name to profile")
	profileCmd.Flags().IntVar(&profSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	profileCmd.Flags().IntVar(&profMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	profileCmd.Flags().StringVar(&profExportCleaned, "export-cleaned", "", "optional path to write the cleaned dataset as CSV")
	profileCmd.Flags().BoolVar(&profCharts, "charts", false, "append chart suggestions to the output")
	profileCmd.Flags().BoolVar(&profContext, "context", false, "append grounding context documents to the output")
}
