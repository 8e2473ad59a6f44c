package handlerwrapper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingPublisher struct {
	published map[string][]*message.Message
	err       error
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	if p.err != nil {
		return p.err
	}
	if p.published == nil {
		p.published = map[string][]*message.Message{}
	}
	p.published[topic] = append(p.published[topic], msgs...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type ping struct {
	Value string `json:"value"`
}

func TestWrapTransformingTyped(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")

	tests := []struct {
		name          string
		payload       []byte
		handler       func(context.Context, *ping) ([]Result, error)
		publishErr    error
		wantErr       bool
		wantPublished int
	}{
		{
			name:    "publishes results with correlation id",
			payload: []byte(`{"value":"hi"}`),
			handler: func(ctx context.Context, p *ping) ([]Result, error) {
				assert.Equal(t, "corr-9", attr.CorrelationIDFrom(ctx))
				return []Result{{Topic: "pong", Payload: ping{Value: p.Value + "!"}}}, nil
			},
			wantPublished: 1,
		},
		{
			name:    "undecodable payload is acked",
			payload: []byte(`not json`),
			handler: func(ctx context.Context, p *ping) ([]Result, error) {
				t.Fatal("handler must not run")
				return nil, nil
			},
		},
		{
			name:    "handler error is returned for redelivery",
			payload: []byte(`{"value":"hi"}`),
			handler: func(ctx context.Context, p *ping) ([]Result, error) {
				return nil, errors.New("db down")
			},
			wantErr: true,
		},
		{
			name:    "publish error is returned",
			payload: []byte(`{"value":"hi"}`),
			handler: func(ctx context.Context, p *ping) ([]Result, error) {
				return []Result{{Topic: "pong", Payload: p}}, nil
			},
			publishErr: errors.New("broker gone"),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &recordingPublisher{err: tt.publishErr}
			fn := WrapTransformingTyped("test.ping", logger, tracer, pub, tt.handler)

			msg := message.NewMessage("msg-1", tt.payload)
			msg.Metadata.Set(middleware.CorrelationIDMetadataKey, "corr-9")

			err := fn(msg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, pub.published["pong"], tt.wantPublished)
			if tt.wantPublished > 0 {
				out := pub.published["pong"][0]
				assert.Equal(t, "corr-9", middleware.MessageCorrelationID(out))

				var got ping
				require.NoError(t, json.Unmarshal(out.Payload, &got))
				assert.Equal(t, "hi!", got.Value)
			}
		})
	}
}
