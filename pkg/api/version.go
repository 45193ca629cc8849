package api

import (
	"context"
	"net/http"

	// Packages
	manager "github.com/mutablelogic/go-cdp/pkg/manager"
	version "github.com/mutablelogic/go-cdp/pkg/version"
	server "github.com/mutablelogic/go-server"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func registerVersionHandlers(ctx context.Context, prefix string, router server.HTTPRouter, execName string, mgr *manager.Manager) {
	handle(ctx, router, mgr, joinPath(prefix, "Version.json"), http.MethodGet, func(w http.ResponseWriter, r *http.Request) error {
		return httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), version.Response(execName))
	})

	handle(ctx, router, mgr, joinPath(prefix, "Version"), http.MethodGet, func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set(types.ContentTypeHeader, "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(version.Text(execName)))
		return err
	})
}
