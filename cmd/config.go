package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dataloom-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DataLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("missing_drop_fraction: %.2f\n", cfg.MissingDropFraction)
		fmt.Printf("missing_sentinel: %s\n", cfg.MissingSentinel)
		fmt.Printf("top_correlations: %d\n", cfg.TopCorrelations)
		fmt.Printf("top_values: %d\n", cfg.TopValues)
		fmt.Printf("high_variability_cv: %.1f\n", cfg.HighVariabilityCV)
		fmt.Printf("dominance_percent: %.1f\n", cfg.DominancePercent)
		fmt.Printf("trend_change_percent: %.1f\n", cfg.TrendChangePercent)
		fmt.Printf("strong_correlation: %.2f\n", cfg.StrongCorrelation)
		fmt.Printf("trend_columns: %d\n", cfg.TrendColumns)
		fmt.Printf("max_insights: %d\n", cfg.MaxInsights)
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		fmt.Printf("sample_rows: %d\n", cfg.SampleRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "missing_drop_fraction":
			f, err := parseFloat(key, val)
			if err != nil {
				return err
			}
			cfg.MissingDropFraction = f
		case "missing_sentinel":
			cfg.MissingSentinel = val
		case "top_correlations":
			i, err := parseInt(key, val)
			if err != nil {
				return err
			}
			cfg.TopCorrelations = i
		case "top_values":
			i, err := parseInt(key, val)
			if err != nil {
				return err
			}
			cfg.TopValues = i
		case "high_variability_cv":
			f, err := parseFloat(key, val)
			if err != nil {
				return err
			}
			cfg.HighVariabilityCV = f
		case "dominance_percent":
			f, err := parseFloat(key, val)
			if err != nil {
				return err
			}
			cfg.DominancePercent = f
		case "trend_change_percent":
			f, err := parseFloat(key, val)
			if err != nil {
				return err
			}
			cfg.TrendChangePercent = f
		case "strong_correlation":
			f, err := parseFloat(key, val)
			if err != nil {
				return err
			}
			cfg.StrongCorrelation = f
		case "trend_columns":
			i, err := parseInt(key, val)
			if err != nil {
				return err
			}
			cfg.TrendColumns = i
		case "max_insights":
			i, err := parseInt(key, val)
			if err != nil {
				return err
			}
			cfg.MaxInsights = i
		case "max_rows":
			i, err := parseInt(key, val)
			if err != nil {
				return err
			}
			cfg.MaxRows = i
		case "sample_rows":
			i, err := parseInt(key, val)
			if err != nil {
				return err
			}
			cfg.SampleRows = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func parseInt(key, val string) (int, error) {
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %v", key, val)
	}
	return i, nil
}

func parseFloat(key, val string) (float64, error) {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float for %s: %v", key, val)
	}
	return f, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
