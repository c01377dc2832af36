package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"shelfsense/config"
	"shelfsense/stream"
)

// StartStreamRequest is the POST /stream/start body. Zero-valued fields
// fall back to configured defaults.
type StartStreamRequest struct {
	CameraCount     int                  `json:"camera_count"`
	DurationSeconds int                  `json:"duration_seconds"`
	FrameRate       int                  `json:"frame_rate"`
	Weights         *stream.EventWeights `json:"weights"`
}

// HandleStartStream launches a multi-camera simulation run.
func HandleStartStream(c *fiber.Ctx) error {
	req := StartStreamRequest{
		CameraCount:     config.AppConfig.StreamCameraCount,
		DurationSeconds: config.AppConfig.StreamDurationSeconds,
		FrameRate:       config.AppConfig.StreamFrameRate,
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Stream start body parse error: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid request body",
			})
		}
	}

	cfg := stream.SimulationConfig{
		CameraCount:   req.CameraCount,
		Duration:      time.Duration(req.DurationSeconds) * time.Second,
		FrameRate:     req.FrameRate,
		QueueCapacity: config.AppConfig.StreamQueueCapacity,
		Window:        time.Duration(config.AppConfig.StreamWindowSeconds) * time.Second,
	}
	if req.Weights != nil {
		cfg.Weights = *req.Weights
	}

	if _, err := streamManager.Start(cfg); err != nil {
		if errors.Is(err, stream.ErrAlreadyRunning) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": "A stream simulation is already running",
			})
		}
		log.Printf("Error starting stream simulation: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":           "started",
		"camera_count":     req.CameraCount,
		"duration_seconds": req.DurationSeconds,
		"frame_rate":       req.FrameRate,
	})
}

// HandleStopStream cancels the active simulation run, if any.
func HandleStopStream(c *fiber.Ctx) error {
	if !streamManager.Stop() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "No stream simulation is running",
		})
	}
	return c.JSON(fiber.Map{"status": "stopped"})
}

// HandleGetStreamMetrics reports sliding-window metrics for the active or
// most recent run.
func HandleGetStreamMetrics(c *fiber.Ctx) error {
	metrics, ok := streamManager.Metrics()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "No stream simulation has been started",
		})
	}
	return c.JSON(fiber.Map{
		"running": streamManager.Running(),
		"metrics": metrics,
	})
}

// HandleStreamLive pushes stream events to a websocket client until the
// client disconnects. Slow clients lose events rather than stalling the
// aggregator.
func HandleStreamLive(conn *websocket.Conn) {
	id := "ws_" + uuid.NewString()
	events, err := streamManager.Broadcaster().Subscribe(id, 256)
	if err != nil {
		log.Printf("Live feed subscribe failed: %v", err)
		_ = conn.Close()
		return
	}
	defer streamManager.Broadcaster().Unsubscribe(id)
	defer conn.Close()

	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}
}
