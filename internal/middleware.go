package internal

import (
	"time"

	"github.com/go-kit/kit/endpoint"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/ctxhelper"
	"github.com/teknologkoren/strequekiosk/internal/log"
)

// LogCalls is a middleware that logs every call of the wrapped endpoint together with its duration and error
func LogCalls(name string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(started time.Time) {
				logger := ctxhelper.Logger(ctx).WithField("endpoint", name).WithField(log.FldDuration, time.Since(started))
				if err != nil {
					logger.WithError(err).Info("Call failed")
					return
				}
				logger.Debug("Call finished")
			}(time.Now())
			return next(ctx, request)
		}
	}
}
