// Package profile runs the full dataset-profiling pipeline: cleaning, type
// inference, statistics, and insight generation, in one linear pass. Each
// invocation works on a private copy of the input and holds no shared state,
// so independent runs are safe to execute concurrently.
package profile

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/KaramelBytes/dataloom-cli/internal/cleaner"
	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/insights"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
)

// ErrInvalidInput rejects tables that cannot be profiled at all.
var ErrInvalidInput = errors.New("invalid input")

// Options aggregates the per-stage options.
type Options struct {
	Cleaning cleaner.Options
	Stats    stats.Options
	Insights insights.Options
	Logger   *slog.Logger
}

// DefaultOptions returns the documented defaults for every stage.
func DefaultOptions() Options {
	return Options{
		Cleaning: cleaner.DefaultOptions(),
		Stats:    stats.DefaultOptions(),
		Insights: insights.DefaultOptions(),
	}
}

// Result is everything one pipeline invocation produces. It is created fresh
// per call and never mutated afterwards.
type Result struct {
	ID         string
	SourceName string
	Cleaned    *dataset.Dataset
	Report     *cleaner.Report
	Types      *dataset.TypeMap
	Stats      *stats.Bundle
	Insights   []string
}

// Run profiles one dataset: raw table in, cleaned table plus report,
// statistics, and insights out. The input is validated before cleaning and
// never mutated.
func Run(ds *dataset.Dataset, source string, opt Options) (*Result, error) {
	if ds == nil || ds.Rows() == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", ErrInvalidInput)
	}
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}

	log.Debug("cleaning dataset", "source", source, "rows", ds.Rows(), "columns", ds.Cols())
	cleaned, report := cleaner.Clean(ds, opt.Cleaning)

	log.Debug("computing statistics", "rows", cleaned.Rows(), "columns", cleaned.Cols())
	bundle := stats.Compute(cleaned, report.Types, opt.Stats)

	log.Debug("generating insights")
	list := insights.Generate(cleaned, report.Types, bundle, opt.Insights)

	return &Result{
		ID:         uuid.NewString(),
		SourceName: source,
		Cleaned:    cleaned,
		Report:     report,
		Types:      report.Types,
		Stats:      bundle,
		Insights:   list,
	}, nil
}
