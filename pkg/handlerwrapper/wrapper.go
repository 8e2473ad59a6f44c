// Package handlerwrapper adapts typed message handlers to watermill.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Result is an outgoing message produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTransformingTyped decodes the incoming JSON payload into T, invokes handler and
// publishes every returned Result. Correlation IDs flow from the incoming message
// to the handler context and on to every produced message.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	handler func(context.Context, *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		correlationID := msg.Metadata.Get(middleware.CorrelationIDMetadataKey)
		ctx := attr.WithCorrelationID(msg.Context(), correlationID)

		var span trace.Span
		if tracer != nil {
			ctx, span = tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("message.uuid", msg.UUID),
				attribute.String("correlation_id", correlationID),
			))
			defer span.End()
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to decode message payload",
				attr.CorrelationID(correlationID),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			// Acknowledge undecodable messages so they are not redelivered forever.
			return nil
		}

		results, err := handler(ctx, payload)
		if err != nil {
			if span != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			logger.ErrorContext(ctx, "Handler returned error",
				attr.CorrelationID(correlationID),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			return err
		}

		for _, r := range results {
			out, err := NewMessage(ctx, r)
			if err != nil {
				return fmt.Errorf("%s: %w", handlerName, err)
			}
			if err := publisher.Publish(r.Topic, out); err != nil {
				return fmt.Errorf("%s: publish %s: %w", handlerName, r.Topic, err)
			}
		}

		return nil
	}
}

// NewMessage marshals a Result into a watermill message carrying the context correlation ID.
func NewMessage(ctx context.Context, r Result) (*message.Message, error) {
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload for %s: %w", r.Topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	if id := attr.CorrelationIDFrom(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}
	for k, v := range r.Metadata {
		msg.Metadata.Set(k, v)
	}
	msg.Metadata.Set("topic", r.Topic)
	return msg, nil
}
