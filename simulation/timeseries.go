package simulation

import (
	"strings"
	"time"

	"shelfsense/models"
)

// GenerateTimeSeries produces a historical series for a shelf, one point per
// 30 minutes over the past hours. Product counts follow daily shopping
// patterns: fuller shelves around morning and evening peaks.
func (b *SnapshotBuilder) GenerateTimeSeries(shelfID string, hours int) ([]models.TimeSeriesPoint, error) {
	if strings.TrimSpace(shelfID) == "" {
		return nil, models.InvalidArgument("shelf id must not be empty")
	}
	if hours <= 0 {
		return nil, models.InvalidArgument("hours must be positive, got %d", hours)
	}

	intervals := hours * 2
	now := time.Now().UTC()
	points := make([]models.TimeSeriesPoint, 0, intervals)

	for i := 0; i < intervals; i++ {
		ts := now.Add(-time.Duration(30*(intervals-i)) * time.Minute)
		count := b.productCountForHour(ts.Hour())

		b.gen.ResetShelf(shelfID)
		detections := make([]models.DetectionEvent, 0, count)
		for j := 0; j < count; j++ {
			d, err := b.gen.Generate(shelfID)
			if err != nil {
				return nil, err
			}
			detections = append(detections, d)
		}

		metrics := ComputeMetrics(detections, b.catalog)
		points = append(points, models.TimeSeriesPoint{
			Timestamp:      ts,
			ProductCount:   metrics.TotalProducts,
			ConditionScore: BuildCondition(metrics).Score,
			Misplaced:      metrics.MisplacedCount,
			LowStock:       metrics.LowStockCount,
			AvgConfidence:  metrics.AvgConfidence,
		})
	}

	return points, nil
}

func (b *SnapshotBuilder) productCountForHour(hour int) int {
	switch {
	case (hour >= 9 && hour <= 11) || (hour >= 17 && hour <= 20): // peak
		return 15 + b.rng.Intn(6)
	case (hour >= 6 && hour <= 8) || (hour >= 13 && hour <= 16): // moderate
		return 10 + b.rng.Intn(6)
	default: // off-peak
		return 5 + b.rng.Intn(8)
	}
}
