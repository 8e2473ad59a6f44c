package ladderhandlers

import (
	"log/slog"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	"go.opentelemetry.io/otel/trace"
)

// LadderHandlers consumes ladder events from the bus.
type LadderHandlers struct {
	service ladderservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewLadderHandlers(service ladderservice.Service, logger *slog.Logger, tracer trace.Tracer) *LadderHandlers {
	return &LadderHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}
