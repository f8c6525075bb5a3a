package pubsub

import (
	"strconv"

	"routereel/internal/domain/service"
)

// eventAttributes are the message attributes subscribers filter on.
func eventAttributes(event *service.CaptureEvent) map[string]string {
	attributes := map[string]string{
		"capture_id": event.CaptureID,
		"route_id":   event.RouteID,
		"state":      event.State,
		"truncated":  strconv.FormatBool(event.Truncated),
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}

// orderingKey keeps the events of one route in publish order.
func orderingKey(event *service.CaptureEvent) string {
	return event.RouteID
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
