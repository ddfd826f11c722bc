package events

import (
	"candideit/config"
	"candideit/logging"
	"candideit/metrics"
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type Type string

const (
	ElectionCreated  Type = "election.created"
	ElectionUpdated  Type = "election.updated"
	CandidateCreated Type = "candidate.created"
)

type Event struct {
	Type      Type      `json:"type"`
	Election  string    `json:"election"`
	Owner     string    `json:"owner"`
	Candidate string    `json:"candidate,omitempty"`
	At        time.Time `json:"at"`
}

func (e *Event) Key() string {
	return e.Owner + "/" + e.Election
}

type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event *Event) error { return nil }
func (NoopPublisher) Close() error                                     { return nil }

// NewPublisher returns a kafka publisher when a broker is configured and a
// no-op publisher otherwise.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if cfg.KafkaBroker == "" {
		logging.Log.Info("EVENTS: no kafka broker configured, events are discarded")
		return NoopPublisher{}, nil
	}
	writer, err := config.GetWriter(cfg)
	if err != nil {
		return nil, err
	}
	return NewKafkaPublisher(writer), nil
}

// Emit publishes the event and only logs failures.
func Emit(ctx context.Context, publisher Publisher, event *Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		metrics.EventsPublishedCounter.WithLabelValues(string(event.Type), "error").Inc()
		logging.Log.WithError(err).WithField("key", event.Key()).Warnf("EVENTS: could not publish %s", event.Type)
		return
	}
	metrics.EventsPublishedCounter.WithLabelValues(string(event.Type), "ok").Inc()
}
