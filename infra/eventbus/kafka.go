package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/domain/events"
	"github.com/bianca-ap01/coin-swap/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

const defaultGroupID = "coin-swap"

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type partitionKeyer interface {
	PartitionKey() string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventBus publishes events as JSON envelopes to one Kafka topic and,
// once a handler is registered, consumes that topic in a consumer group.
type KafkaEventBus struct {
	brokers []string
	topic   string
	groupID string
	writer  messageWriter
	dialer  *kafka.Dialer

	handlers    map[events.Type][]eventbus.HandlerFunc
	handlersMtx sync.RWMutex

	readerOnce sync.Once
	reader     *kafka.Reader

	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithKafka creates a Kafka-backed event bus and checks that the first
// broker is reachable.
func NewWithKafka(cfg *config.Kafka, logger *slog.Logger) (*KafkaEventBus, error) {
	if cfg == nil || len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka event bus: brokers are required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka event bus: topic is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
	}

	bus := newKafkaEventBus(cfg.Brokers, cfg.Topic, writer, dialer, logger)
	if err := bus.ping(bus.ctx); err != nil {
		_ = bus.Close()
		return nil, err
	}

	logger.Info("Kafka event bus initialized", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return bus, nil
}

func newKafkaEventBus(
	brokers []string,
	topic string,
	writer messageWriter,
	dialer *kafka.Dialer,
	logger *slog.Logger,
) *KafkaEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaEventBus{
		brokers:  brokers,
		topic:    topic,
		groupID:  defaultGroupID,
		writer:   writer,
		dialer:   dialer,
		handlers: make(map[events.Type][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "kafka"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Close stops the consumer and closes network resources.
func (b *KafkaEventBus) Close() error {
	if b == nil {
		return nil
	}
	b.cancel()
	if b.reader != nil {
		_ = b.reader.Close()
	}
	b.wg.Wait()
	if b.writer != nil {
		return b.writer.Close()
	}
	return nil
}

// Register registers a handler for a specific event type and starts the
// consumer on first use.
func (b *KafkaEventBus) Register(eventType events.Type, handler eventbus.HandlerFunc) {
	b.handlersMtx.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.handlersMtx.Unlock()

	b.readerOnce.Do(b.startConsumer)
}

// Emit publishes an event to Kafka.
func (b *KafkaEventBus) Emit(ctx context.Context, event events.Event) error {
	if b == nil || b.writer == nil {
		return errors.New("kafka event bus: writer not initialized")
	}

	value, err := buildEnvelope(event)
	if err != nil {
		return err
	}

	key := event.Type().String()
	if k, ok := event.(partitionKeyer); ok && k.PartitionKey() != "" {
		key = k.PartitionKey()
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka event bus: publish failed: %w", err)
	}
	return nil
}

func (b *KafkaEventBus) ping(ctx context.Context) error {
	conn, err := b.dialer.DialContext(ctx, "tcp", b.brokers[0])
	if err != nil {
		return fmt.Errorf("kafka event bus: connection failed: %w", err)
	}
	_ = conn.Close()
	return nil
}

func (b *KafkaEventBus) startConsumer() {
	b.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     b.brokers,
		GroupID:     b.groupID,
		Topic:       b.topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     1 * time.Second,
		Dialer:      b.dialer,
	})

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consumeLoop(b.ctx, b.reader)
	}()
}

func (b *KafkaEventBus) consumeLoop(ctx context.Context, reader *kafka.Reader) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			b.logger.Error("kafka consume error", "error", err, "topic", b.topic)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		b.dispatch(ctx, msg.Value)
		if err := reader.CommitMessages(ctx, msg); err != nil {
			b.logger.Error("kafka commit error", "error", err, "partition", msg.Partition, "offset", msg.Offset)
		}
	}
}

// dispatch decodes one envelope and runs the handlers for its type.
// Undecodable messages are logged and skipped.
func (b *KafkaEventBus) dispatch(ctx context.Context, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		b.logger.Error("failed to unmarshal envelope", "error", err)
		return
	}

	eventType := events.Type(env.Type)
	constructor, ok := events.EventTypes[eventType]
	if !ok {
		b.logger.Error("unknown event type", "type", env.Type)
		return
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		b.logger.Error("failed to unmarshal event payload", "error", err, "event_type", env.Type)
		return
	}

	b.handlersMtx.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.handlersMtx.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, evt); err != nil {
			b.logger.Error("event handler failed", "error", err, "event_type", eventType)
		}
	}
}

func buildEnvelope(event events.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("kafka event bus: marshal failed: %w", err)
	}
	envBytes, err := json.Marshal(envelope{Type: event.Type().String(), Payload: data})
	if err != nil {
		return nil, fmt.Errorf("kafka event bus: envelope marshal failed: %w", err)
	}
	return envBytes, nil
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
