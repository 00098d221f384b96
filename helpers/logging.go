package helpers

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"

	"webup/monit/domain"
)

// TransportMiddleware is a chainable behaviour modifier for Transport.
type TransportMiddleware func(domain.Transport) domain.Transport

type logTransport struct {
	logger log.Logger
	next   domain.Transport
}

// LogMiddleware given a Logger wraps the next Transport with logging capabilities.
func LogMiddleware(logger log.Logger, transport string) TransportMiddleware {
	return func(next domain.Transport) domain.Transport {
		logger = log.With(
			logger,
			"component", "transport",
			"transport", transport,
		)

		return &logTransport{logger: logger, next: next}
	}
}

func (t *logTransport) Run(ctx context.Context, host domain.Host, cmd domain.Command) (err error) {
	defer func(begin time.Time) {
		ps := []interface{}{
			"command", cmd.String(),
			"duration_ns", time.Since(begin).Nanoseconds(),
			"host", host.String(),
			"method", "Run",
			"privileged", cmd.IsPrivileged(),
		}

		if err != nil {
			ps = append(ps, "err", err)
		}

		_ = t.logger.Log(ps...)
	}(time.Now())

	return t.next.Run(ctx, host, cmd)
}

func (t *logTransport) Upload(
	ctx context.Context,
	host domain.Host,
	content []byte,
	destination string,
) (err error) {
	defer func(begin time.Time) {
		ps := []interface{}{
			"bytes", len(content),
			"destination", destination,
			"duration_ns", time.Since(begin).Nanoseconds(),
			"host", host.String(),
			"method", "Upload",
		}

		if err != nil {
			ps = append(ps, "err", err)
		}

		_ = t.logger.Log(ps...)
	}(time.Now())

	return t.next.Upload(ctx, host, content, destination)
}
