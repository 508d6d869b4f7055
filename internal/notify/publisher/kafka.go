// Package publisher hands queued notifications to the external delivery
// system over Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"reclaim/internal/notify"
)

// Kafka publishes notifications to a topic consumed by the delivery system.
type Kafka struct {
	client *kgo.Client
	topic  string
}

// NewKafka connects to the brokers and ensures the topic exists. Topic
// creation is idempotent; an already-exists response is not an error.
func NewKafka(ctx context.Context, brokers []string, topic string) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(ctx, 3, 1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ensure topic %q: %w", topic, err)
	}
	// kadm reports per-topic failures on the response, not err.
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("ensure topic %q: %w", topic, resp.Err)
	}

	return &Kafka{client: client, topic: topic}, nil
}

// Publish produces one notification record, keyed by recipient so a given
// party's notifications stay ordered within a partition.
func (k *Kafka) Publish(ctx context.Context, n notify.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(n.Recipient),
		Value: payload,
	}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce notification: %w", err)
	}
	return nil
}

// Close flushes and releases the Kafka client.
func (k *Kafka) Close() {
	k.client.Close()
}
