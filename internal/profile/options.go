package profile

import (
	"github.com/KaramelBytes/dataloom-cli/internal/cleaner"
	"github.com/KaramelBytes/dataloom-cli/internal/config"
	"github.com/KaramelBytes/dataloom-cli/internal/insights"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
)

// OptionsFromConfig maps the loaded configuration onto per-stage options.
func OptionsFromConfig(c *config.Global) Options {
	opt := DefaultOptions()
	if c == nil {
		return opt
	}
	opt.Cleaning = cleaner.Options{
		MissingDropFraction: c.MissingDropFraction,
		Sentinel:            c.MissingSentinel,
		TimeLayouts:         cleaner.DefaultTimeLayouts(),
	}
	opt.Stats = stats.Options{
		TopCorrelations: c.TopCorrelations,
		TopValues:       c.TopValues,
	}
	opt.Insights = insights.Options{
		HighVariabilityCV:  c.HighVariabilityCV,
		DominancePercent:   c.DominancePercent,
		TrendChangePercent: c.TrendChangePercent,
		StrongCorrelation:  c.StrongCorrelation,
		TrendColumns:       c.TrendColumns,
		MaxInsights:        c.MaxInsights,
	}
	return opt
}
