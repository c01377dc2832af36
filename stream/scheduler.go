package stream

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"shelfsense/catalog"
	"shelfsense/models"
	"shelfsense/simulation"
	"shelfsense/utils"
)

const (
	defaultCameraCount   = 4
	defaultFrameRate     = 30
	defaultDuration      = 30 * time.Second
	defaultQueueCapacity = 1000
	defaultWindow        = 5 * time.Second

	// How often the aggregator drains the per-camera queues.
	drainInterval = 10 * time.Millisecond

	weightTolerance = 1e-6
)

var alertMessages = []string{
	"Low stock detected",
	"Misplaced product",
	"Empty shelf section",
	"Planogram violation",
}

var alertSeverities = []string{"low", "medium", "high"}

// EventWeights is the per-frame event type distribution. Must sum to 1.
type EventWeights struct {
	Detection float64 `json:"detection"`
	Alert     float64 `json:"alert"`
	Status    float64 `json:"status"`
}

// DefaultWeights returns the standard 70/20/10 distribution.
func DefaultWeights() EventWeights {
	return EventWeights{Detection: 0.7, Alert: 0.2, Status: 0.1}
}

func (w EventWeights) sum() float64 {
	return w.Detection + w.Alert + w.Status
}

// SimulationConfig parameterizes one streaming run.
type SimulationConfig struct {
	CameraCount   int
	Duration      time.Duration
	FrameRate     int
	Weights       EventWeights
	QueueCapacity int
	Window        time.Duration

	// Seed fixes the random sequences of all cameras; 0 means time-seeded.
	Seed int64
}

func (c *SimulationConfig) applyDefaults() {
	if c.CameraCount == 0 {
		c.CameraCount = defaultCameraCount
	}
	if c.Duration == 0 {
		c.Duration = defaultDuration
	}
	if c.FrameRate == 0 {
		c.FrameRate = defaultFrameRate
	}
	if c.Weights == (EventWeights{}) {
		c.Weights = DefaultWeights()
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = defaultQueueCapacity
	}
	if c.Window == 0 {
		c.Window = defaultWindow
	}
}

func (c SimulationConfig) validate() error {
	if c.CameraCount <= 0 {
		return models.InvalidConfiguration("camera count must be positive, got %d", c.CameraCount)
	}
	if c.Duration <= 0 {
		return models.InvalidConfiguration("duration must be positive, got %s", c.Duration)
	}
	if c.FrameRate <= 0 {
		return models.InvalidConfiguration("frame rate must be positive, got %d", c.FrameRate)
	}
	if c.Weights.Detection < 0 || c.Weights.Alert < 0 || c.Weights.Status < 0 {
		return models.InvalidConfiguration("event weights must not be negative")
	}
	if math.Abs(c.Weights.sum()-1.0) > weightTolerance {
		return models.InvalidConfiguration("event weights must sum to 1.0, got %.6f", c.Weights.sum())
	}
	return nil
}

// Scheduler drives multi-camera streaming runs against a set of sinks.
type Scheduler struct {
	catalog *catalog.Catalog
	sinks   []Sink
}

// NewScheduler creates a scheduler. Sinks receive every aggregated event.
func NewScheduler(cat *catalog.Catalog, sinks ...Sink) *Scheduler {
	return &Scheduler{catalog: cat, sinks: sinks}
}

// Run is a handle on an active simulation. Cancel stops all camera loops
// cooperatively; each stops emitting within one frame interval.
type Run struct {
	cfg       SimulationConfig
	cancel    context.CancelFunc
	done      chan struct{}
	window    *slidingWindow
	queues    []*eventQueue
	emitted   atomic.Uint64
	sinkDrops atomic.Uint64
}

// Simulate validates cfg and starts one goroutine per camera plus one
// aggregator. Validation failures return before anything is emitted.
func (s *Scheduler) Simulate(cfg SimulationConfig) (*Run, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	run := &Run{
		cfg:    cfg,
		cancel: cancel,
		done:   make(chan struct{}),
		window: newSlidingWindow(cfg.Window),
		queues: make([]*eventQueue, cfg.CameraCount),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.CameraCount; i++ {
		q := newEventQueue(cfg.QueueCapacity)
		run.queues[i] = q
		cameraID := fmt.Sprintf("camera_%02d", i+1)
		shelfID := fmt.Sprintf("shelf_%02d", i+1)
		rng := rand.New(rand.NewSource(seed + int64(i)))
		g.Go(func() error {
			s.cameraLoop(gctx, cameraID, shelfID, q, cfg, rng)
			return nil
		})
	}

	camerasDone := make(chan struct{})
	go func() {
		_ = g.Wait()
		cancel()
		close(camerasDone)
	}()
	go run.aggregate(camerasDone, s.sinks)

	log.Printf("stream simulation started: %d cameras, %s, %d fps", cfg.CameraCount, cfg.Duration, cfg.FrameRate)
	return run, nil
}

// cameraLoop emits one event per frame interval until the context ends.
// A failed tick is skipped; it never aborts the loop or sibling cameras.
func (s *Scheduler) cameraLoop(ctx context.Context, cameraID, shelfID string, q *eventQueue, cfg SimulationConfig, rng *rand.Rand) {
	gen := simulation.NewGenerator(s.catalog, rng)
	interval := time.Second / time.Duration(cfg.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var frame int64
	for {
		select {
		case <-ctx.Done():
			log.Printf("camera %s stopped after %d frames (dropped %d)", cameraID, frame, q.droppedCount())
			return
		case <-ticker.C:
			frame++
			ev, err := s.buildEvent(cameraID, shelfID, frame, cfg.Weights, gen, rng, q)
			if err != nil {
				log.Printf("camera %s: frame %d skipped: %v", cameraID, frame, err)
				continue
			}
			q.push(ev)
		}
	}
}

func (s *Scheduler) buildEvent(cameraID, shelfID string, frame int64, weights EventWeights, gen *simulation.Generator, rng *rand.Rand, q *eventQueue) (models.StreamEvent, error) {
	ev := models.StreamEvent{
		EventID:     "evt_" + uuid.NewString(),
		CameraID:    cameraID,
		FrameNumber: frame,
		Timestamp:   time.Now().UTC(),
	}

	switch pickEventType(rng, weights) {
	case models.EventDetection:
		n := 1 + rng.Intn(5)
		gen.ResetShelf(shelfID)
		detections := make([]models.DetectionEvent, 0, n)
		var confidenceSum float64
		for i := 0; i < n; i++ {
			d, err := gen.Generate(shelfID)
			if err != nil {
				return models.StreamEvent{}, err
			}
			detections = append(detections, d)
			confidenceSum += d.Confidence
		}
		ev.Type = models.EventDetection
		ev.Detection = &models.DetectionPayload{
			NumProducts:      n,
			AvgConfidence:    utils.Round4(confidenceSum / float64(n)),
			ProcessingTimeMS: 80 + rng.Intn(171),
			Detections:       detections,
		}

	case models.EventAlert:
		ev.Type = models.EventAlert
		ev.Alert = &models.AlertPayload{
			Severity:       alertSeverities[rng.Intn(len(alertSeverities))],
			Message:        alertMessages[rng.Intn(len(alertMessages))],
			ShelfID:        fmt.Sprintf("shelf_%d", 1+rng.Intn(12)),
			RequiresAction: rng.Intn(2) == 0,
		}

	default:
		ev.Type = models.EventStatus
		ev.Status = &models.StatusPayload{
			FPS:           utils.Round2(28 + rng.Float64()*3),
			AvgLatencyMS:  float64(50 + rng.Intn(101)),
			DroppedCount:  q.droppedCount(),
			CPUUsage:      utils.Round2(30 + rng.Float64()*40),
			MemoryUsageMB: 200 + rng.Intn(301),
			Status:        "healthy",
		}
	}
	return ev, nil
}

func pickEventType(rng *rand.Rand, w EventWeights) models.EventType {
	r := rng.Float64()
	switch {
	case r < w.Detection:
		return models.EventDetection
	case r < w.Detection+w.Alert:
		return models.EventAlert
	default:
		return models.EventStatus
	}
}

// aggregate is the single consumer of all camera queues: it feeds the
// sliding window and the sinks. Runs until every camera loop has stopped,
// then drains once more and closes Done.
func (r *Run) aggregate(camerasDone <-chan struct{}, sinks []Sink) {
	defer close(r.done)
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-camerasDone:
			r.drainAll(sinks)
			return
		case <-ticker.C:
			r.drainAll(sinks)
		}
	}
}

func (r *Run) drainAll(sinks []Sink) {
	now := time.Now()
	for _, q := range r.queues {
		for _, ev := range q.drain() {
			r.window.observe(ev, now)
			r.emitted.Add(1)
			for _, sink := range sinks {
				r.deliver(sink, ev)
			}
		}
	}
}

// deliver isolates sink failures: an error or panic drops the event for
// that sink only and the stream keeps flowing.
func (r *Run) deliver(sink Sink, ev models.StreamEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.sinkDrops.Add(1)
			log.Printf("stream sink panicked, event %s dropped: %v", ev.EventID, rec)
		}
	}()
	if err := sink.Consume(ev); err != nil {
		r.sinkDrops.Add(1)
		log.Printf("stream sink rejected event %s: %v", ev.EventID, err)
	}
}

// Cancel signals all camera loops to stop. Safe to call multiple times.
func (r *Run) Cancel() {
	r.cancel()
}

// Done is closed once all camera loops have stopped and the aggregator has
// performed its final drain.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Running reports whether the run is still active.
func (r *Run) Running() bool {
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// EventCount returns the number of events aggregated so far.
func (r *Run) EventCount() uint64 {
	return r.emitted.Load()
}

// DroppedCount returns the total events evicted across all camera queues.
func (r *Run) DroppedCount() uint64 {
	var total uint64
	for _, q := range r.queues {
		total += q.droppedCount()
	}
	return total
}

// Metrics returns a snapshot of the sliding window and run totals.
func (r *Run) Metrics() models.StreamMetrics {
	return r.window.snapshot(time.Now(), r.DroppedCount(), r.sinkDrops.Load(), r.cfg.CameraCount)
}
