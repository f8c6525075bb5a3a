package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"routereel/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	localSubscription = "projects/local/subscriptions/capture-events"

	localPublishAttempts = 3
	localPublishBackoff  = 200 * time.Millisecond
)

// localHTTPPublisher pushes capture events to a local endpoint in the
// envelope Google Pub/Sub uses for push subscriptions. Server errors and
// transport failures are retried with a linear backoff.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger

	attempts int
	backoff  time.Duration
}

// PubSubPushMessage is the push subscription envelope
type PubSubPushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		OrderingKey string            `json:"orderingKey,omitempty"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// statusError is a non-2xx answer from the push endpoint
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "push endpoint returned non-success status: " + http.StatusText(e.code) + " (" + itoa(e.code) + ")"
}

func (e *statusError) retryable() bool {
	return e.code >= http.StatusInternalServerError || e.code == http.StatusTooManyRequests
}

// NewLocalHTTPPublisher creates a new local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:   logger,
		attempts: localPublishAttempts,
		backoff:  localPublishBackoff,
	}
}

// PublishCaptureEvent posts the event to the local endpoint
func (p *localHTTPPublisher) PublishCaptureEvent(ctx context.Context, event *service.CaptureEvent) error {
	body, err := pushEnvelope(event, time.Now())
	if err != nil {
		return err
	}

	logger := p.logger.With(
		slog.String("endpoint", p.endpoint),
		slog.String("capture_id", event.CaptureID),
		slog.String("state", event.State),
	)

	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		lastErr = p.post(ctx, body, event.RequestID)
		if lastErr == nil {
			logger.Info("[LocalPubSub] Capture event pushed", slog.Int("attempt", attempt))

			return nil
		}

		var statusErr *statusError
		if errors.As(lastErr, &statusErr) && !statusErr.retryable() {
			return lastErr
		}
		if attempt == p.attempts {
			break
		}

		logger.Warn("[LocalPubSub] Push failed, retrying", slog.Int("attempt", attempt), slog.Any("error", lastErr))
		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(time.Duration(attempt) * p.backoff):
		}
	}

	return errors.Wrapf(lastErr, "push capture %s after %d attempts", event.CaptureID, p.attempts)
}

func (p *localHTTPPublisher) post(ctx context.Context, body []byte, requestID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}

	return nil
}

// Close releases resources (no-op for HTTP client)
func (p *localHTTPPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}

func pushEnvelope(event *service.CaptureEvent, now time.Time) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var msg PubSubPushMessage
	msg.Subscription = localSubscription
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = event.CaptureID
	msg.Message.OrderingKey = orderingKey(event)
	msg.Message.PublishTime = now.UTC().Format(time.RFC3339)
	msg.Message.Attributes = eventAttributes(event)

	body, err := json.Marshal(msg)

	return body, errors.WithStack(err)
}
