// Package handlers binds the node's ledger API and debug endpoints to their
// muxes.
package handlers

import (
	"context"
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/ledgerlab/powchain/app/services/node/handlers/debug/checkgrp"
	v1 "github.com/ledgerlab/powchain/app/services/node/handlers/v1"
	"github.com/ledgerlab/powchain/business/web/mid"
	"github.com/ledgerlab/powchain/foundation/blockchain/state"
	"github.com/ledgerlab/powchain/foundation/events"
	"github.com/ledgerlab/powchain/foundation/web"
	"go.uber.org/zap"
)

// MuxConfig contains what the ledger API needs to serve requests.
type MuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	State    *state.State
	Evts     *events.Events
}

// APIMux constructs the handler serving the ledger routes that peers and
// clients call.
func APIMux(cfg MuxConfig) http.Handler {
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors("*"),
		mid.Panics(),
	)

	// Browsers preflight the JSON POSTs to /transactions/new and
	// /nodes/register.
	preflight := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*", preflight, mid.Cors("*"))

	v1.Routes(app, v1.Config{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	})

	return app
}

// DebugMux constructs the handler for the debug listener: profiling, the
// expvar metrics and the node's health checks. It uses its own ServeMux so
// nothing registered on http.DefaultServeMux is exposed.
func DebugMux(build string, nodeID string, log *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	cgh := checkgrp.Handlers{
		Build:  build,
		NodeID: nodeID,
		Log:    log,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	return mux
}
