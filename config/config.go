package config

import (
	"fmt"
	"os"
)

// KafkaConfig holds connection settings for the optional Kafka event sink.
type KafkaConfig struct {
	BootstrapServers string
	SecurityProtocol string
	SASLMechanism    string
	SASLUsername     string
	SASLPassword     string
	Topic            string
	CompressionType  string
	Acks             string
}

// Config holds application configuration.
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	Port string

	// Simulation defaults, overridable per request.
	DefaultShelfCount     int
	StreamCameraCount     int
	StreamDurationSeconds int
	StreamFrameRate       int
	StreamQueueCapacity   int
	StreamWindowSeconds   int

	Kafka KafkaConfig
}

// AppConfig holds the application-wide configuration.
var AppConfig Config

// Load populates AppConfig from environment variables.
func Load() {
	AppConfig = Config{
		Port:                  getEnv("PORT", "3000"),
		DefaultShelfCount:     getEnvInt("DEFAULT_SHELF_COUNT", 12),
		StreamCameraCount:     getEnvInt("STREAM_CAMERA_COUNT", 4),
		StreamDurationSeconds: getEnvInt("STREAM_DURATION_SECONDS", 30),
		StreamFrameRate:       getEnvInt("STREAM_FRAME_RATE", 30),
		StreamQueueCapacity:   getEnvInt("STREAM_QUEUE_CAPACITY", 1000),
		StreamWindowSeconds:   getEnvInt("STREAM_WINDOW_SECONDS", 5),
		Kafka: KafkaConfig{
			BootstrapServers: getEnv("KAFKA_BOOTSTRAP_SERVERS", ""),
			SecurityProtocol: getEnv("KAFKA_SECURITY_PROTOCOL", ""),
			SASLMechanism:    getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:     getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:     getEnv("KAFKA_SASL_PASSWORD", ""),
			Topic:            getEnv("KAFKA_TOPIC", "shelf-stream-events"),
			CompressionType:  getEnv("KAFKA_COMPRESSION_TYPE", "snappy"),
			Acks:             getEnv("KAFKA_ACKS", "all"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}
