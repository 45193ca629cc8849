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

func registerFileListHandler(ctx context.Context, prefix string, router server.HTTPRouter, mgr *manager.Manager) {
	handle(ctx, router, mgr, joinPath(prefix, "File/List.json"), http.MethodGet, func(w http.ResponseWriter, r *http.Request) error {
		q, err := parseQuery(r.URL.Query())
		if err != nil {
			return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
		}

		resp, err := mgr.QueryFiles(r.Context(), q)
		if err != nil {
			return httpresponse.Error(w, err)
		}

		return httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
	})
}
