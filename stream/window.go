package stream

import (
	"sync"
	"time"

	"shelfsense/models"
	"shelfsense/utils"
)

type windowEntry struct {
	at           time.Time
	eventType    models.EventType
	confidence   float64
	processingMS float64
}

// slidingWindow keeps recent events for rolling throughput and quality
// metrics, plus run totals that survive eviction. Only the aggregator
// goroutine writes; snapshots may be taken from any goroutine.
type slidingWindow struct {
	mu      sync.Mutex
	span    time.Duration
	entries []windowEntry

	totalEvents     uint64
	totalDetections uint64
	totalAlerts     uint64
	totalStatus     uint64
}

func newSlidingWindow(span time.Duration) *slidingWindow {
	if span <= 0 {
		span = defaultWindow
	}
	return &slidingWindow{span: span}
}

// observe records an event and evicts entries older than the window span.
func (w *slidingWindow) observe(ev models.StreamEvent, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry := windowEntry{at: now, eventType: ev.Type}
	w.totalEvents++
	switch ev.Type {
	case models.EventDetection:
		w.totalDetections++
		if ev.Detection != nil {
			entry.confidence = ev.Detection.AvgConfidence
			entry.processingMS = float64(ev.Detection.ProcessingTimeMS)
		}
	case models.EventAlert:
		w.totalAlerts++
	case models.EventStatus:
		w.totalStatus++
	}

	w.entries = append(w.entries, entry)
	w.evictLocked(now)
}

func (w *slidingWindow) evictLocked(now time.Time) {
	cutoff := now.Add(-w.span)
	i := 0
	for i < len(w.entries) && w.entries[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		w.entries = append(w.entries[:0], w.entries[i:]...)
	}
}

// snapshot computes metrics over the current window contents.
func (w *slidingWindow) snapshot(now time.Time, dropped, sinkDrops uint64, cameras int) models.StreamMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.evictLocked(now)

	m := models.StreamMetrics{
		TotalEvents:     w.totalEvents,
		TotalDetections: w.totalDetections,
		TotalAlerts:     w.totalAlerts,
		TotalStatus:     w.totalStatus,
		DroppedEvents:   dropped,
		SinkDrops:       sinkDrops,
		WindowSeconds:   w.span.Seconds(),
		ActiveCameras:   cameras,
	}

	m.EventsPerSecond = utils.Round2(float64(len(w.entries)) / w.span.Seconds())

	var confidenceSum, processingSum float64
	var detectionCount int
	for _, e := range w.entries {
		if e.eventType == models.EventDetection {
			confidenceSum += e.confidence
			processingSum += e.processingMS
			detectionCount++
		}
	}
	if detectionCount > 0 {
		m.AvgConfidence = utils.Round4(confidenceSum / float64(detectionCount))
		m.AvgProcessingMS = utils.Round2(processingSum / float64(detectionCount))
	}
	return m
}
