package sustainabos

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/metrics"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/tracker"
)

// Store serves queries over the current workbook snapshot.
//
// Snapshots are immutable. Reload builds a new one and swaps it in
// atomically; queries already running keep the snapshot they started with.
type Store struct {
	opts     Options
	snapshot atomic.Pointer[models.Workbook]
	reloadMu sync.Mutex
}

// NewStore loads the workbook and returns a store over it. When the
// workbook cannot be loaded the error is logged and the store serves no
// data.
func NewStore(ctx context.Context, opts Options) *Store {
	s := NewEmptyStore(opts)
	if err := s.Reload(ctx); err != nil {
		opts.logger().Error("failed to load workbook, serving no data",
			zap.String("source", opts.Source), zap.Error(err))
	}
	return s
}

// NewEmptyStore returns a store with no data.
func NewEmptyStore(opts Options) *Store {
	return NewStoreWith(models.EmptyWorkbook(), opts)
}

// NewStoreWith returns a store over an already loaded snapshot.
func NewStoreWith(wb *models.Workbook, opts Options) *Store {
	s := &Store{opts: opts}
	s.snapshot.Store(wb)
	return s
}

// Reload loads the workbook again and swaps in the new snapshot. On error
// the current snapshot is kept.
func (s *Store) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	wb, err := Load(ctx, s.opts)
	if err != nil {
		return err
	}
	s.snapshot.Store(wb)
	return nil
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *models.Workbook {
	return s.snapshot.Load()
}

// GetVesselSummary returns the rows of the named vessel. It returns
// ErrNoData when nothing is loaded and ErrNotFound when the vessel is not in
// the tracker.
func (s *Store) GetVesselSummary(name string) (models.View, error) {
	start := time.Now()
	wb := s.Snapshot()
	if !wb.HasData() {
		s.opts.Metrics.RecordQuery(metrics.KindVessel, metrics.ResultNoData, time.Since(start))
		return models.View{}, ErrNoData
	}

	view, ok := tracker.VesselSummary(wb.Tracker, name)
	if !ok {
		s.opts.Metrics.RecordQuery(metrics.KindVessel, metrics.ResultNotFound, time.Since(start))
		return models.View{}, fmt.Errorf("vessel %q: %w", name, ErrNotFound)
	}
	s.opts.Metrics.RecordQuery(metrics.KindVessel, metrics.ResultOK, time.Since(start))
	return view, nil
}

// GetDeviceSummary returns the Done and In Process installations of device.
// It returns ErrNoData when nothing is loaded; otherwise the view may be
// empty.
func (s *Store) GetDeviceSummary(device string) (models.View, error) {
	start := time.Now()
	wb := s.Snapshot()
	if !wb.HasData() {
		s.opts.Metrics.RecordQuery(metrics.KindDevice, metrics.ResultNoData, time.Since(start))
		return models.View{}, ErrNoData
	}

	view := tracker.DeviceSummary(wb.Tracker, device)
	result := metrics.ResultOK
	if view.Empty() {
		result = metrics.ResultEmpty
	}
	s.opts.Metrics.RecordQuery(metrics.KindDevice, result, time.Since(start))
	return view, nil
}

// Vessels returns the vessel lookup list.
func (s *Store) Vessels() []string {
	return s.Snapshot().Vessels
}

// Devices returns the device lookup list.
func (s *Store) Devices() []string {
	return s.Snapshot().Devices
}

// Summary returns the named summary block.
func (s *Store) Summary(name string) (models.View, bool) {
	view, ok := s.Snapshot().Summaries[name]
	return view, ok
}

// SummaryNames returns the names of the loaded summary blocks, sorted.
func (s *Store) SummaryNames() []string {
	summaries := s.Snapshot().Summaries
	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TopVessels ranks vessels by total yearly savings. A non-positive limit
// uses the configured default.
func (s *Store) TopVessels(limit int) []models.VesselTotal {
	start := time.Now()
	if limit <= 0 {
		limit = s.opts.Analytics.Limit
	}
	totals := tracker.TopVessels(s.Snapshot().Tracker, s.opts.Analytics.Patterns, limit)
	s.opts.Metrics.RecordQuery(metrics.KindTop, metrics.ResultOK, time.Since(start))
	return totals
}
