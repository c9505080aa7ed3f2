package mid

import (
	"context"
	"net/http"

	"github.com/ledgerlab/powchain/business/web/errs"
	"github.com/ledgerlab/powchain/foundation/web"
	"go.uber.org/zap"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a uniform way.
// Unexpected errors (status >= 500) are logged.
func Errors(log *zap.SugaredLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			log.Errorw("ERROR", "traceid", web.GetTraceID(ctx), "ERROR", err)

			// If we receive the shutdown err we need to return it
			// back to the base handler to shut down the service.
			if web.IsShutdown(err) {
				return err
			}

			resp, status := errs.ToResponse(err)
			if err := web.Respond(ctx, w, resp, status); err != nil {
				return err
			}

			return nil
		}

		return h
	}

	return m
}
