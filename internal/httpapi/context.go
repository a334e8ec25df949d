package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is the daemon lifetime context. Workflow runs derive from it
// so shutdown cancels in-flight pipelines, not just their client connections.
var serverBaseCtx = context.Background()

// SetBaseContext installs the daemon lifetime context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// runContext derives the context one workflow run executes under: canceled
// when the client disconnects or the daemon shuts down, whichever comes first.
func runContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(serverBaseCtx)
	stop := context.AfterFunc(r.Context(), cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
