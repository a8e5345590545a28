package sustainabos

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/logging"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/metrics"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/parser"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/source"
)

// Load reads and parses the workbook named by opts.Source.
//
// A missing workbook is not an error: Load logs a warning and returns an
// empty snapshot. Any other failure returns an error matching
// ErrDataUnavailable.
func Load(ctx context.Context, opts Options) (*models.Workbook, error) {
	logger := opts.logger()
	start := time.Now()

	wb, err := load(ctx, opts)
	if errors.Is(err, source.ErrNotFound) {
		opts.Metrics.RecordLoad(metrics.ResultNotFound, time.Since(start), 0)
		logger.Warn("workbook not found, serving no data", zap.String("source", opts.Source))
		return models.EmptyWorkbook(), nil
	}
	if err != nil {
		opts.Metrics.RecordLoad(metrics.ResultError, time.Since(start), 0)
		return nil, err
	}

	opts.Metrics.RecordLoad(metrics.ResultOK, time.Since(start), wb.Tracker.Len())
	logger.Info("workbook loaded",
		zap.String("workbook", wb.Name),
		zap.Int("rows", wb.Tracker.Len()),
		zap.Int("vessels", len(wb.Vessels)),
		zap.Int("devices", len(wb.Devices)),
		zap.Duration("duration", time.Since(start)),
	)
	if n := wb.Tracker.Orphans(); n > 0 {
		logger.Warn("tracker rows have no owning vessel",
			append(logging.DataQuality("orphan_rows"), zap.Int("rows", n))...)
	}
	return wb, nil
}

func load(ctx context.Context, opts Options) (*models.Workbook, error) {
	if err := opts.Layout.Validate(); err != nil {
		return nil, NewLoadError("", "layout", err)
	}

	src, err := source.New(ctx, opts.Source, opts.S3)
	if err != nil {
		return nil, NewLoadError("", "source", err)
	}
	data, err := src.Read(ctx)
	if errors.Is(err, source.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, NewLoadError("", "source", err)
	}
	return Parse(src.Name(), data, opts.Layout)
}

// Parse builds a snapshot from workbook bytes. The format is chosen from
// the extension of name.
func Parse(name string, data []byte, layout parser.Layout) (*models.Workbook, error) {
	wb, err := parser.OpenWorkbook(name, data)
	if err != nil {
		return nil, NewLoadError("", "source", err)
	}
	defer wb.Close()

	table, err := parser.ParseTracker(wb, layout.Tracker)
	if err != nil {
		return nil, NewLoadError(layout.Tracker.Sheet, "tracker", err)
	}
	vessels, err := parser.ReadLookupColumn(wb, layout.Vessels)
	if err != nil {
		return nil, NewLoadError(layout.Vessels.Sheet, "vessels", err)
	}
	devices, err := parser.ReadLookupColumn(wb, layout.Devices)
	if err != nil {
		return nil, NewLoadError(layout.Devices.Sheet, "devices", err)
	}

	summaries := make(map[string]models.View, len(layout.Summaries))
	for _, s := range layout.Summaries {
		view, err := parser.ReadSummary(wb, s)
		if err != nil {
			return nil, NewLoadError(s.Sheet, "summary", err)
		}
		summaries[s.Name] = view
	}

	return &models.Workbook{
		Name:      name,
		Tracker:   table,
		Vessels:   vessels,
		Devices:   devices,
		Summaries: summaries,
		LoadedAt:  time.Now(),
	}, nil
}
