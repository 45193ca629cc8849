// Package api implements the HTTP dispatcher (C6): the fixed set of
// routes a CDP server exposes over the manager facade.
package api

import (
	"context"
	"net/http"

	// Packages
	manager "github.com/mutablelogic/go-cdp/pkg/manager"
	server "github.com/mutablelogic/go-server"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers wires every route in §4.6 to mgr, under prefix (typically
// the empty string: the wire protocol is rooted at "/").
func RegisterHandlers(ctx context.Context, prefix string, router server.HTTPRouter, mgr *manager.Manager, execName string) {
	registerVersionHandlers(ctx, prefix, router, execName, mgr)
	registerStatsHandler(ctx, prefix, router, mgr)
	registerFileListHandler(ctx, prefix, router, mgr)
	registerDataHandlers(ctx, prefix, router, mgr)
	registerMetaHandler(ctx, prefix, router, mgr)
	registerHashArrayHandler(ctx, prefix, router, mgr)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// handle registers one method at path, applying CORS and counting the
// request by method regardless of outcome. fn writes its own response,
// including any error response; its returned error is discarded. A wrong
// method is answered with a 405 error response and counted as unknown; an
// OPTIONS preflight is answered with an empty 200 and not counted.
func handle(ctx context.Context, router server.HTTPRouter, mgr *manager.Manager, path, method string, fn func(http.ResponseWriter, *http.Request) error) {
	router.HandleFunc(ctx, path, func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		httpresponse.Cors(w, r, router.Origin(), method)

		switch r.Method {
		case method:
			if method == http.MethodGet {
				mgr.CountGet(r.URL.Path)
			} else {
				mgr.CountPost(r.URL.Path)
			}
			_ = fn(w, r)
		case http.MethodOptions:
			_ = httpresponse.Empty(w, http.StatusOK)
		default:
			mgr.CountUnknown(r.URL.Path)
			_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	})
}

func joinPath(prefix, path string) string {
	return types.JoinPath(prefix, path)
}
