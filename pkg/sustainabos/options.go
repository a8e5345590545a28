// Package sustainabos loads the fleet sustainability tracker workbook and
// answers vessel and device summary queries over it.
package sustainabos

import (
	"go.uber.org/zap"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/metrics"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/parser"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/source"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/tracker"
)

// DefaultWorkbook is the workbook path used when none is configured.
const DefaultWorkbook = "data/BOS Sustainability Tracker.xlsx"

// AnalyticsOptions configures the top vessels ranking.
type AnalyticsOptions struct {
	// Patterns restricts the ranking to vessels whose name contains one of
	// them. Empty ranks every vessel.
	Patterns []string `yaml:"patterns"`
	// Limit is the default number of vessels returned.
	Limit int `yaml:"limit"`
}

// Options configures loading and querying.
type Options struct {
	// Source is a local path or an "s3://bucket/key" URI.
	Source string
	// S3 configures access to S3 sources.
	S3 source.S3Config
	// Layout locates the tables inside the workbook.
	Layout parser.Layout
	// Analytics configures TopVessels.
	Analytics AnalyticsOptions
	// Logger receives load and data-quality events. Nil discards them.
	Logger *zap.Logger
	// Metrics records loads and queries. Nil records nothing.
	Metrics *metrics.Metrics
}

// DefaultOptions returns options for the default workbook and layout.
func DefaultOptions() Options {
	return Options{
		Source: DefaultWorkbook,
		Layout: parser.DefaultLayout(),
		Analytics: AnalyticsOptions{
			Patterns: []string{"Britoil", "ENA Habitat", "BOS", "Lewek Hydra", "Nautical Aisia", "Nautical Anisha", "Paragon Sentinel"},
			Limit:    tracker.DefaultTopLimit,
		},
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
