package attr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "corr-1")
	assert.Equal(t, "corr-1", CorrelationIDFrom(ctx))
	assert.Equal(t, "corr-1", ExtractCorrelationID(ctx).Value.String())

	assert.Equal(t, "", CorrelationIDFrom(context.Background()))
	assert.Equal(t, ctx, WithCorrelationID(ctx, ""))
}

func TestError(t *testing.T) {
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Equal(t, "", Error(nil).Value.String())
}
