package simulation

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"shelfsense/catalog"
	"shelfsense/models"
	"shelfsense/utils"
)

const (
	// Snapshot detection counts drawn when the caller has no preference.
	minSnapshotCount = 10
	maxSnapshotCount = 24

	minProcessingMS = 80
	maxProcessingMS = 250
)

// SnapshotBuilder aggregates generated detections into shelf snapshots.
// Like Generator, it is single-owner; build one per request.
type SnapshotBuilder struct {
	catalog *catalog.Catalog
	gen     *Generator
	rng     *rand.Rand
}

// NewSnapshotBuilder creates a builder over the given catalog. Pass a nil
// rng for a time-seeded source.
func NewSnapshotBuilder(cat *catalog.Catalog, rng *rand.Rand) *SnapshotBuilder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SnapshotBuilder{
		catalog: cat,
		gen:     NewGenerator(cat, rng),
		rng:     rng,
	}
}

// RandomShelfCount draws a detection count in the standard snapshot range.
func RandomShelfCount(rng *rand.Rand) int {
	return minSnapshotCount + rng.Intn(maxSnapshotCount-minSnapshotCount+1)
}

// Build generates count detections for the shelf and reduces them into a
// snapshot. Every metric is recomputable from the returned detections.
func (b *SnapshotBuilder) Build(shelfID, storeID string, count int) (models.ShelfSnapshot, error) {
	if strings.TrimSpace(shelfID) == "" {
		return models.ShelfSnapshot{}, models.InvalidArgument("shelf id must not be empty")
	}
	if strings.TrimSpace(storeID) == "" {
		return models.ShelfSnapshot{}, models.InvalidArgument("store id must not be empty")
	}
	if count <= 0 {
		return models.ShelfSnapshot{}, models.InvalidArgument("detection count must be positive, got %d", count)
	}

	b.gen.ResetShelf(shelfID)
	detections := make([]models.DetectionEvent, 0, count)
	for i := 0; i < count; i++ {
		d, err := b.gen.Generate(shelfID)
		if err != nil {
			return models.ShelfSnapshot{}, err
		}
		detections = append(detections, d)
	}

	metrics := ComputeMetrics(detections, b.catalog)
	return models.ShelfSnapshot{
		SnapshotID:       "snap_" + uuid.NewString(),
		ShelfID:          shelfID,
		StoreID:          storeID,
		Timestamp:        time.Now().UTC(),
		Detections:       detections,
		Metrics:          metrics,
		Condition:        BuildCondition(metrics),
		ProcessingTimeMS: minProcessingMS + b.rng.Intn(maxProcessingMS-minProcessingMS+1),
	}, nil
}

// ComputeMetrics reduces a detection list into shelf metrics. Pure: the
// result depends only on the detections and catalog prices.
func ComputeMetrics(detections []models.DetectionEvent, cat *catalog.Catalog) models.ShelfMetrics {
	metrics := models.ShelfMetrics{TotalProducts: len(detections)}

	seen := make(map[string]struct{}, len(detections))
	var confidenceSum, valueSum float64
	for _, d := range detections {
		seen[d.ProductID] = struct{}{}
		confidenceSum += d.Confidence
		if p, ok := cat.ByID(d.ProductID); ok {
			valueSum += p.Price
		}
		if d.IsMisplaced {
			metrics.MisplacedCount++
		}
		if d.IsLowStock {
			metrics.LowStockCount++
		}
	}

	metrics.UniqueProducts = len(seen)
	if len(detections) > 0 {
		metrics.AvgConfidence = utils.Round4(confidenceSum / float64(len(detections)))
	}
	metrics.TotalValue = utils.Round2(valueSum)
	return metrics
}

// ConditionScore computes the 0-100 shelf health score:
// 100 minus 10 per misplaced item and 5 per low-stock item, plus a stock
// bonus of 30 scaled by fill level against a 20-item reference shelf.
func ConditionScore(misplaced, lowStock, total int) float64 {
	raw := 100 - float64(misplaced)*10 - float64(lowStock)*5 + float64(total)/20*30
	return utils.Clamp(raw, 0, 100)
}

// CategoryFor maps a score to its condition category and dashboard color.
func CategoryFor(score float64) (string, string) {
	switch {
	case score >= 85:
		return models.CategoryExcellent, "green"
	case score >= 70:
		return models.CategoryGood, "blue"
	case score >= 50:
		return models.CategoryFair, "yellow"
	default:
		return models.CategoryPoor, "red"
	}
}

// BuildCondition derives the condition assessment from shelf metrics.
func BuildCondition(m models.ShelfMetrics) models.ShelfCondition {
	score := utils.Round2(ConditionScore(m.MisplacedCount, m.LowStockCount, m.TotalProducts))
	category, color := CategoryFor(score)

	stockLevel := "Low"
	if m.TotalProducts > 15 {
		stockLevel = "High"
	} else if m.TotalProducts > 8 {
		stockLevel = "Medium"
	}

	organization := "Good"
	if m.MisplacedCount >= 2 {
		organization = "Needs Attention"
	}

	return models.ShelfCondition{
		Score:           score,
		Category:        category,
		Color:           color,
		StockLevel:      stockLevel,
		Organization:    organization,
		AlertCount:      m.MisplacedCount + m.LowStockCount,
		Recommendations: recommendations(m),
	}
}

func recommendations(m models.ShelfMetrics) []string {
	recs := []string{}
	if m.MisplacedCount > 2 {
		recs = append(recs, "Reorganize misplaced products")
	}
	if m.LowStockCount > 3 {
		recs = append(recs, "Restock low inventory items")
	}
	if m.TotalProducts < 10 {
		recs = append(recs, "Increase shelf stock levels")
	}
	if m.TotalProducts > 18 {
		recs = append(recs, "Shelf at optimal capacity")
	}
	return recs
}
