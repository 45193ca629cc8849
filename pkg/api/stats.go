package api

import (
	"context"
	"net/http"

	// Packages
	manager "github.com/mutablelogic/go-cdp/pkg/manager"
	server "github.com/mutablelogic/go-server"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func registerStatsHandler(ctx context.Context, prefix string, router server.HTTPRouter, mgr *manager.Manager) {
	handle(ctx, router, mgr, joinPath(prefix, "Stats.json"), http.MethodGet, func(w http.ResponseWriter, r *http.Request) error {
		return httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), mgr.Stats())
	})
}
