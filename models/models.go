package models

import "time"

// --- Catalog ---

// Product is a reference catalog entry. Loaded once at startup, immutable.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
}

// --- Detections ---

// BoundingBox is a detection region in pixel space on the camera canvas.
type BoundingBox struct {
	X       int `json:"x"`
	Y       int `json:"y"`
	Width   int `json:"width"`
	Height  int `json:"height"`
	XCenter int `json:"x_center"`
	YCenter int `json:"y_center"`
}

// ShelfPosition locates a detection on the shelf grid.
type ShelfPosition struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// DetectionEvent is a single synthetic product detection. Created once per
// sample and owned by exactly one snapshot.
type DetectionEvent struct {
	DetectionID   string        `json:"detection_id"`
	ShelfID       string        `json:"shelf_id"`
	ProductID     string        `json:"product_id"`
	ProductName   string        `json:"product_name"`
	Category      string        `json:"category"`
	Brand         string        `json:"brand"`
	Confidence    float64       `json:"confidence"`
	BBox          BoundingBox   `json:"bbox"`
	ShelfPosition ShelfPosition `json:"shelf_position"`
	IsMisplaced   bool          `json:"is_misplaced"`
	IsLowStock    bool          `json:"is_low_stock"`
	Timestamp     time.Time     `json:"timestamp"`
}

// --- Shelf snapshot ---

// ShelfMetrics is a pure reduction over a snapshot's detections.
type ShelfMetrics struct {
	TotalProducts  int     `json:"total_products"`
	UniqueProducts int     `json:"unique_products"`
	AvgConfidence  float64 `json:"avg_confidence"`
	TotalValue     float64 `json:"total_value"`
	MisplacedCount int     `json:"misplaced_count"`
	LowStockCount  int     `json:"low_stock_count"`
}

// Condition categories, keyed off the 85/70/50 score thresholds.
const (
	CategoryExcellent = "Excellent"
	CategoryGood      = "Good"
	CategoryFair      = "Fair"
	CategoryPoor      = "Poor"
)

// ShelfCondition is the synthesized health assessment of one shelf.
type ShelfCondition struct {
	Score           float64  `json:"score"`
	Category        string   `json:"category"`
	Color           string   `json:"color"`
	StockLevel      string   `json:"stock_level"`
	Organization    string   `json:"organization"`
	AlertCount      int      `json:"alert_count"`
	Recommendations []string `json:"recommendations"`
}

// ShelfSnapshot is one aggregated sample of detections for a single shelf.
// Built once per request, immutable thereafter.
type ShelfSnapshot struct {
	SnapshotID       string           `json:"snapshot_id"`
	ShelfID          string           `json:"shelf_id"`
	StoreID          string           `json:"store_id"`
	Timestamp        time.Time        `json:"timestamp"`
	Detections       []DetectionEvent `json:"detections"`
	Metrics          ShelfMetrics     `json:"metrics"`
	Condition        ShelfCondition   `json:"condition"`
	ProcessingTimeMS int              `json:"processing_time_ms"`
}

// --- Store analytics ---

type StoreSummary struct {
	TotalShelves    int     `json:"total_shelves"`
	TotalProducts   int     `json:"total_products"`
	TotalValue      float64 `json:"total_value"`
	AvgConfidence   float64 `json:"avg_confidence"`
	TotalAlerts     int     `json:"total_alerts"`
	EfficiencyScore float64 `json:"efficiency_score"`
}

// PerformanceBuckets counts shelves per condition category.
// The four counts always sum to StoreSummary.TotalShelves.
type PerformanceBuckets struct {
	ExcellentShelves int `json:"excellent_shelves"`
	GoodShelves      int `json:"good_shelves"`
	FairShelves      int `json:"fair_shelves"`
	PoorShelves      int `json:"poor_shelves"`
}

type StoreAnalytics struct {
	StoreID        string             `json:"store_id"`
	Timestamp      time.Time          `json:"timestamp"`
	Summary        StoreSummary       `json:"summary"`
	ShelfSnapshots []ShelfSnapshot    `json:"shelf_snapshots"`
	Performance    PerformanceBuckets `json:"performance"`
}

// --- Time series ---

// TimeSeriesPoint is one historical sample of shelf health.
type TimeSeriesPoint struct {
	Timestamp      time.Time `json:"timestamp"`
	ProductCount   int       `json:"product_count"`
	ConditionScore float64   `json:"condition_score"`
	Misplaced      int       `json:"misplaced"`
	LowStock       int       `json:"low_stock"`
	AvgConfidence  float64   `json:"avg_confidence"`
}
