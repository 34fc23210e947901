package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// PubSubPublisher publishes report lifecycle events to a single topic.
type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSubPublisher initializes the client with retries.
// It uses Application Default Credentials unless CredentialsJSON is provided.
func NewPubSubPublisher(ctx context.Context, s PubSubSettings) (*PubSubPublisher, error) {
	if s.ProjectId == "" {
		return nil, errors.New("PUBSUB_PROJECT_ID/GOOGLE_CLOUD_PROJECT not set")
	}
	if s.Topic == "" {
		return nil, errors.New("PUBSUB_TOPIC is required")
	}

	var attempt int
	for {
		attempt++

		var (
			c   *pubsub.Client
			err error
		)
		if s.CredentialsJSON != "" {
			c, err = pubsub.NewClient(ctx, s.ProjectId, option.WithCredentialsJSON([]byte(s.CredentialsJSON)))
		} else {
			// Uses Application Default Credentials (Cloud Run service account or GOOGLE_APPLICATION_CREDENTIALS).
			c, err = pubsub.NewClient(ctx, s.ProjectId)
		}
		if err == nil {
			t, terr := createTopicIfNotExists(ctx, c, s.Topic)
			if terr != nil {
				_ = c.Close()
				return nil, terr
			}
			log.Printf("pubsub client ready (project_id=%s topic=%s attempt=%d)", s.ProjectId, s.Topic, attempt)
			return &PubSubPublisher{client: c, topic: t}, nil
		}

		sleep := backoff(attempt)
		log.Printf("failed to init pubsub client (project_id=%s attempt=%d): %v; retrying in %s", s.ProjectId, attempt, err, sleep)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// Publish blocks until the server acknowledges and returns the server-assigned message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	if p == nil || p.topic == nil {
		return "", errors.New("pubsub publisher is not initialized")
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})
	return result.Get(ctx)
}

func (p *PubSubPublisher) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	p.topic.Stop()
	return p.client.Close()
}

func createTopicIfNotExists(ctx context.Context, c *pubsub.Client, topic string) (*pubsub.Topic, error) {
	t := c.Topic(topic)
	ok, err := t.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return t, nil
	}
	t, err = c.CreateTopic(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("create topic %q: %w", topic, err)
	}
	return t, nil
}
