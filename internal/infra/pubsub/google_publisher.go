package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"routereel/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePubSubPublisher sends capture events to a Cloud Pub/Sub topic.
// Messages carry the route id as ordering key.
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher connects to the project and checks the topic exists.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrapf(err, "create pubsub client for project %s", projectID)
	}

	topicName := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicName}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "lookup topic %s", topicName)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	logger.Info("Capture events go to Google Pub/Sub", slog.String("topic", topicName))

	return &googlePubSubPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger.With(slog.String("topic", topicName)),
	}, nil
}

// PublishCaptureEvent blocks until the server acknowledges the message.
func (p *googlePubSubPublisher) PublishCaptureEvent(ctx context.Context, event *service.CaptureEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	key := orderingKey(event)
	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        data,
		Attributes:  eventAttributes(event),
		OrderingKey: key,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		// An ordered key stays paused after a failure until resumed.
		p.publisher.ResumePublish(key)

		return errors.Wrapf(err, "publish capture %s", event.CaptureID)
	}

	p.logger.Info("[GooglePubSub] Capture event published",
		slog.String("capture_id", event.CaptureID),
		slog.String("state", event.State),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close flushes pending messages and closes the client.
func (p *googlePubSubPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
