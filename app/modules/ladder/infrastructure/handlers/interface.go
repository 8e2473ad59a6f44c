package ladderhandlers

import (
	"context"

	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	"github.com/Black-And-White-Club/padel-ladder/pkg/handlerwrapper"
)

// Handlers are the ladder's event bus consumers.
type Handlers interface {
	HandleMatchCompleted(ctx context.Context, payload *ladderevents.MatchCompletedPayloadV1) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*LadderHandlers)(nil)
