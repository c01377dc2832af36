package simulation

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"shelfsense/catalog"
	"shelfsense/models"
	"shelfsense/utils"
)

// StoreAggregator builds store-wide analytics from shelf snapshots.
type StoreAggregator struct {
	shelves *SnapshotBuilder
	rng     *rand.Rand
}

// NewStoreAggregator creates an aggregator over the given catalog. Pass a
// nil rng for a time-seeded source.
func NewStoreAggregator(cat *catalog.Catalog, rng *rand.Rand) *StoreAggregator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &StoreAggregator{
		shelves: NewSnapshotBuilder(cat, rng),
		rng:     rng,
	}
}

// BuildStore snapshots shelfCount shelves and aggregates them. The store
// avg confidence is the mean of per-shelf means, not detection-weighted,
// so it stays reproducible regardless of per-shelf detection counts.
func (a *StoreAggregator) BuildStore(storeID string, shelfCount int) (models.StoreAnalytics, error) {
	if strings.TrimSpace(storeID) == "" {
		return models.StoreAnalytics{}, models.InvalidArgument("store id must not be empty")
	}
	if shelfCount <= 0 {
		return models.StoreAnalytics{}, models.InvalidArgument("shelf count must be positive, got %d", shelfCount)
	}

	snapshots := make([]models.ShelfSnapshot, 0, shelfCount)
	for i := 0; i < shelfCount; i++ {
		shelfID := fmt.Sprintf("shelf_%s_%03d", storeID, i+1)
		snap, err := a.shelves.Build(shelfID, storeID, RandomShelfCount(a.rng))
		if err != nil {
			return models.StoreAnalytics{}, err
		}
		snapshots = append(snapshots, snap)
	}

	var summary models.StoreSummary
	var buckets models.PerformanceBuckets
	var confidenceSum float64
	var healthyShelves int

	summary.TotalShelves = shelfCount
	for _, s := range snapshots {
		summary.TotalProducts += s.Metrics.TotalProducts
		summary.TotalValue += s.Metrics.TotalValue
		summary.TotalAlerts += s.Condition.AlertCount
		confidenceSum += s.Metrics.AvgConfidence
		if s.Condition.Score >= 70 {
			healthyShelves++
		}
		switch s.Condition.Category {
		case models.CategoryExcellent:
			buckets.ExcellentShelves++
		case models.CategoryGood:
			buckets.GoodShelves++
		case models.CategoryFair:
			buckets.FairShelves++
		case models.CategoryPoor:
			buckets.PoorShelves++
		}
	}

	summary.TotalValue = utils.Round2(summary.TotalValue)
	summary.AvgConfidence = utils.Round4(confidenceSum / float64(shelfCount))
	summary.EfficiencyScore = utils.Round2(100 * float64(healthyShelves) / float64(shelfCount))

	return models.StoreAnalytics{
		StoreID:        storeID,
		Timestamp:      time.Now().UTC(),
		Summary:        summary,
		ShelfSnapshots: snapshots,
		Performance:    buckets,
	}, nil
}
