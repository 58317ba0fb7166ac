package srv

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/gadgetbot/pkg/log"
)

// shutdownGrace bounds how long all services together may take to stop.
const shutdownGrace = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%s failed to start", name(service))
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then stops services in reverse
// order of registration so that transports stop before the stores they use.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	StopServices(ctx, services)
}

// StopServices shuts services down in reverse order without waiting for
// ctx. It is for commands that run their main loop in the foreground.
func StopServices(ctx context.Context, services []Service) {
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(stopCtx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%s failed to shutdown", name(services[i]))
		}
	}
}

func name(s Service) string {
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", s)
}
