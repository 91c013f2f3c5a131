package services

import (
	"sort"
	"time"

	"github.com/theeace/dashboard-go/models"
	"github.com/theeace/dashboard-go/store"
)

const (
	metricsCollection    = "metrics"
	historicalCollection = "historical"
)

// MetricsService manages the per-user metric snapshot and the dated
// historical series it can be recomputed from.
type MetricsService struct {
	store *store.Store
}

// NewMetricsService creates a MetricsService.
func NewMetricsService(s *store.Store) *MetricsService {
	return &MetricsService{store: s}
}

func defaultSnapshot() models.MetricSnapshot {
	now := time.Now().UTC().Format(time.RFC3339)
	zero := models.MetricEntry{Value: 0, Change: 0, LastUpdated: now}
	return models.MetricSnapshot{
		Sessions:       zero,
		TotalSales:     zero,
		Orders:         zero,
		ConversionRate: zero,
	}
}

// Snapshot returns the user's metric snapshot, creating and persisting
// the zeroed default on first access.
func (m *MetricsService) Snapshot(userID string) (models.MetricSnapshot, error) {
	var snapshot models.MetricSnapshot
	err := m.store.GetOrDefault(metricsCollection, userID, &snapshot, defaultSnapshot())
	return snapshot, err
}

// UpdateSnapshotField overwrites a single snapshot entry. This path is
// independent of the historical series. Returns false for an unknown
// metric key.
func (m *MetricsService) UpdateSnapshotField(userID, metric string, value, change float64) (models.MetricSnapshot, bool, error) {
	snapshot, err := m.Snapshot(userID)
	if err != nil {
		return models.MetricSnapshot{}, false, err
	}
	entry := models.MetricEntry{
		Value:       value,
		Change:      change,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	if !snapshot.SetEntry(metric, entry) {
		return models.MetricSnapshot{}, false, nil
	}
	if err := m.store.Put(metricsCollection, userID, snapshot); err != nil {
		return models.MetricSnapshot{}, false, err
	}
	return snapshot, true, nil
}

// SetEmailStats mirrors the user's email marketing stats into the
// snapshot so the dashboard stays in sync.
func (m *MetricsService) SetEmailStats(userID string, stats models.EmailStats) error {
	snapshot, err := m.Snapshot(userID)
	if err != nil {
		return err
	}
	snapshot.EmailStats = &stats
	return m.store.Put(metricsCollection, userID, snapshot)
}

// Historical returns the user's dated series, oldest first. An absent
// series is an empty list, not an error.
func (m *MetricsService) Historical(userID string) ([]models.HistoricalEntry, error) {
	var entries []models.HistoricalEntry
	found, err := m.store.Get(historicalCollection, userID, &entries)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.HistoricalEntry{}, nil
	}
	return entries, nil
}

// RecordHistoricalEntry stores an entry for a date, replacing any
// existing entry for the same date, and keeps the series sorted
// ascending by date. The snapshot is recomputed from the updated
// series.
func (m *MetricsService) RecordHistoricalEntry(userID string, entry models.HistoricalEntry) ([]models.HistoricalEntry, error) {
	entries, err := m.Historical(userID)
	if err != nil {
		return nil, err
	}

	filtered := entries[:0]
	for _, e := range entries {
		if e.Date != entry.Date {
			filtered = append(filtered, e)
		}
	}
	entries = append(filtered, entry)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	if err := m.store.Put(historicalCollection, userID, entries); err != nil {
		return nil, err
	}
	if err := m.RecomputeSnapshot(userID); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteHistoricalEntry removes the entry for a date. Returns false
// when no series exists for the user.
func (m *MetricsService) DeleteHistoricalEntry(userID, date string) ([]models.HistoricalEntry, bool, error) {
	var entries []models.HistoricalEntry
	found, err := m.store.Get(historicalCollection, userID, &entries)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	filtered := entries[:0]
	for _, e := range entries {
		if e.Date != date {
			filtered = append(filtered, e)
		}
	}
	if err := m.store.Put(historicalCollection, userID, filtered); err != nil {
		return nil, false, err
	}
	return filtered, true, nil
}

// percentChange reports the change from previous to latest as a
// percentage. A previous value of zero yields zero rather than
// Infinity or NaN.
func percentChange(latest, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (latest - previous) / previous * 100
}

// RecomputeSnapshot rebuilds the snapshot from the two most recent
// historical entries. Conversion rate change is a plain difference of
// the two rates, not a percentage of the ratio. With fewer than two
// entries the change is zero.
func (m *MetricsService) RecomputeSnapshot(userID string) error {
	entries, err := m.Historical(userID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	latest := entries[len(entries)-1]
	previous := latest
	hasPrevious := len(entries) >= 2
	if hasPrevious {
		previous = entries[len(entries)-2]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	snapshot, err := m.Snapshot(userID)
	if err != nil {
		return err
	}

	snapshot.Sessions = models.MetricEntry{Value: latest.Sessions, LastUpdated: now}
	snapshot.TotalSales = models.MetricEntry{Value: latest.Sales, LastUpdated: now}
	snapshot.Orders = models.MetricEntry{Value: latest.Orders, LastUpdated: now}
	snapshot.ConversionRate = models.MetricEntry{Value: latest.Conversion, LastUpdated: now}

	if hasPrevious {
		snapshot.Sessions.Change = percentChange(latest.Sessions, previous.Sessions)
		snapshot.TotalSales.Change = percentChange(latest.Sales, previous.Sales)
		snapshot.Orders.Change = percentChange(latest.Orders, previous.Orders)
		snapshot.ConversionRate.Change = latest.Conversion - previous.Conversion
	}

	return m.store.Put(metricsCollection, userID, snapshot)
}
