package models

import "time"

// EventType discriminates the stream event variants.
type EventType string

const (
	EventDetection EventType = "detection"
	EventAlert     EventType = "alert"
	EventStatus    EventType = "status"
)

// DetectionPayload carries the products seen in one simulated frame.
type DetectionPayload struct {
	NumProducts      int              `json:"num_products"`
	AvgConfidence    float64          `json:"avg_confidence"`
	ProcessingTimeMS int              `json:"processing_time_ms"`
	Detections       []DetectionEvent `json:"detections"`
}

// AlertPayload flags a shelf condition that may need attention.
type AlertPayload struct {
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	ShelfID        string `json:"shelf_id"`
	RequiresAction bool   `json:"requires_action"`
}

// StatusPayload reports camera health. DroppedCount is the real number of
// events the camera's queue has evicted, not a synthesized figure.
type StatusPayload struct {
	FPS           float64 `json:"fps"`
	AvgLatencyMS  float64 `json:"avg_latency_ms"`
	DroppedCount  uint64  `json:"dropped_count"`
	CPUUsage      float64 `json:"cpu_usage"`
	MemoryUsageMB int     `json:"memory_usage_mb"`
	Status        string  `json:"status"`
}

// StreamEvent is one emitted unit of the simulated camera feed. It is a
// tagged union: Type selects exactly one non-nil payload pointer.
type StreamEvent struct {
	EventID     string    `json:"event_id"`
	Type        EventType `json:"type"`
	CameraID    string    `json:"camera_id"`
	FrameNumber int64     `json:"frame_number"`
	Timestamp   time.Time `json:"timestamp"`

	Detection *DetectionPayload `json:"detection,omitempty"`
	Alert     *AlertPayload     `json:"alert,omitempty"`
	Status    *StatusPayload    `json:"status,omitempty"`
}

// StreamMetrics is a point-in-time view over the sliding aggregation window
// plus run totals.
type StreamMetrics struct {
	TotalEvents     uint64  `json:"total_events"`
	TotalDetections uint64  `json:"total_detections"`
	TotalAlerts     uint64  `json:"total_alerts"`
	TotalStatus     uint64  `json:"total_status"`
	DroppedEvents   uint64  `json:"dropped_events"`
	SinkDrops       uint64  `json:"sink_drops"`
	EventsPerSecond float64 `json:"events_per_second"`
	AvgProcessingMS float64 `json:"avg_processing_ms"`
	AvgConfidence   float64 `json:"avg_confidence"`
	WindowSeconds   float64 `json:"window_seconds"`
	ActiveCameras   int     `json:"active_cameras"`
}
