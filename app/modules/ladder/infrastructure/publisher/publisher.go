package ladderpublisher

import (
	"context"
	"fmt"
	"log/slog"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/Black-And-White-Club/padel-ladder/pkg/eventbus"
	"github.com/Black-And-White-Club/padel-ladder/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher puts committed ladder effects on the event bus.
type EventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

var (
	_ ladderservice.Notifier         = (*EventPublisher)(nil)
	_ ladderservice.RankingPublisher = (*EventPublisher)(nil)
)

func NewEventPublisher(publisher message.Publisher, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{publisher: publisher, logger: logger}
}

// PublishRankingChanged publishes to the category scoped ranking topic.
func (p *EventPublisher) PublishRankingChanged(ctx context.Context, payload ladderevents.RankingChangedPayloadV1) error {
	msg, err := handlerwrapper.NewMessage(ctx, handlerwrapper.Result{
		Topic:   eventbus.FormatCategoryScopedTopic(ladderevents.RankingChangedV1, payload.CategoryID),
		Payload: payload,
	})
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	if err := eventbus.PublishWithCategoryScope(p.publisher, ladderevents.RankingChangedV1, payload.CategoryID, msg); err != nil {
		return fmt.Errorf("publish ranking change: %w", err)
	}

	p.logger.DebugContext(ctx, "Published ranking change",
		attr.ExtractCorrelationID(ctx),
		attr.CategoryID(payload.CategoryID),
		attr.String("cause", string(payload.Cause)),
		attr.Int("teams", len(payload.Teams)),
	)
	return nil
}

// Notify hands a notification request to whichever dispatcher listens on the topic.
// Publishing blocks on the broker ack, so it runs on its own goroutine and is
// abandoned once ctx is done.
func (p *EventPublisher) Notify(ctx context.Context, payload ladderevents.NotificationRequestedPayloadV1) error {
	msg, err := handlerwrapper.NewMessage(ctx, handlerwrapper.Result{
		Topic:   ladderevents.NotificationRequestedV1,
		Payload: payload,
	})
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	done := make(chan error, 1)
	go func() {
		done <- p.publisher.Publish(ladderevents.NotificationRequestedV1, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("publish notification %s: %w", payload.Kind, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish notification %s: %w", payload.Kind, ctx.Err())
	}
}
