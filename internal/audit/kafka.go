package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// DefaultTopic is where onboarding audit events land.
const DefaultTopic = "iclm.audit.events"

// KafkaPublisher ships audit events to Kafka. Produces are asynchronous;
// delivery failures are reported through the promise and dropped, since audit
// delivery must never stall a workflow step.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	onFail func(error)
}

// NewKafka connects a publisher to the given brokers.
func NewKafka(brokers []string, topic string, onFail func(error)) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if onFail == nil {
		onFail = func(error) {}
	}
	return &KafkaPublisher{client: client, topic: topic, onFail: onFail}, nil
}

// Emit implements Publisher.
func (p *KafkaPublisher) Emit(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.WorkflowID),
		Value: value,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.onFail(err)
		}
	})
	return nil
}

// Close flushes and releases the client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
