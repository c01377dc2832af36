package stream

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"shelfsense/config"
	"shelfsense/models"
)

// KafkaSink publishes stream events to a Kafka topic. Optional: the demo
// runs standalone, but downstream analytics can tap the same feed the
// dashboard sees.
type KafkaSink struct {
	producer     *kafka.Producer
	topic        string
	deliveryChan chan kafka.Event

	sent   atomic.Int64
	acked  atomic.Int64
	failed atomic.Int64

	wg     sync.WaitGroup
	closed chan struct{}
}

// NewKafkaSink creates a producer from config. Fails if bootstrap servers
// are not configured.
func NewKafkaSink(cfg config.KafkaConfig) (*KafkaSink, error) {
	if cfg.BootstrapServers == "" {
		return nil, fmt.Errorf("kafka bootstrap servers not configured")
	}

	producerConfig := &kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
		"compression.type":  cfg.CompressionType,
		"acks":              cfg.Acks,
		"linger.ms":         10,
	}
	if cfg.SecurityProtocol != "" {
		_ = producerConfig.SetKey("security.protocol", cfg.SecurityProtocol)
		_ = producerConfig.SetKey("sasl.mechanism", cfg.SASLMechanism)
		_ = producerConfig.SetKey("sasl.username", cfg.SASLUsername)
		_ = producerConfig.SetKey("sasl.password", cfg.SASLPassword)
	}

	p, err := kafka.NewProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	sink := &KafkaSink{
		producer:     p,
		topic:        cfg.Topic,
		deliveryChan: make(chan kafka.Event, 10000),
		closed:       make(chan struct{}),
	}
	sink.wg.Add(1)
	go sink.handleDeliveryReports()

	log.Printf("Kafka sink initialized - topic: %s, servers: %s", cfg.Topic, cfg.BootstrapServers)
	return sink, nil
}

func (k *KafkaSink) handleDeliveryReports() {
	defer k.wg.Done()
	for {
		select {
		case <-k.closed:
			return
		case e := <-k.deliveryChan:
			m, ok := e.(*kafka.Message)
			if !ok {
				continue
			}
			if m.TopicPartition.Error != nil {
				k.failed.Add(1)
				log.Printf("Kafka delivery failed: %v", m.TopicPartition.Error)
			} else {
				k.acked.Add(1)
			}
		}
	}
}

// Consume implements Sink: the event is serialized and queued for delivery,
// keyed by camera id so per-camera ordering survives partitioning.
func (k *KafkaSink) Consume(ev models.StreamEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	message := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &k.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(ev.CameraID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
			{Key: "camera_id", Value: []byte(ev.CameraID)},
		},
	}

	if err := k.producer.Produce(message, k.deliveryChan); err != nil {
		k.failed.Add(1)
		return fmt.Errorf("failed to queue event: %w", err)
	}
	k.sent.Add(1)
	return nil
}

// Metrics returns producer delivery counters.
func (k *KafkaSink) Metrics() map[string]int64 {
	return map[string]int64{
		"messages_sent":   k.sent.Load(),
		"messages_acked":  k.acked.Load(),
		"messages_failed": k.failed.Load(),
	}
}

// Close flushes pending messages and shuts the producer down.
func (k *KafkaSink) Close() {
	remaining := k.producer.Flush(int((10 * time.Second).Milliseconds()))
	if remaining > 0 {
		log.Printf("Kafka sink: %d messages still pending after flush timeout", remaining)
	}
	close(k.closed)
	k.wg.Wait()
	k.producer.Close()
	log.Printf("Kafka sink closed - sent: %d, acked: %d, failed: %d", k.sent.Load(), k.acked.Load(), k.failed.Load())
}
