package api

import (
	"context"
	"net/http"

	// Packages
	manager "github.com/mutablelogic/go-cdp/pkg/manager"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	server "github.com/mutablelogic/go-server"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func registerMetaHandler(ctx context.Context, prefix string, router server.HTTPRouter, mgr *manager.Manager) {
	handle(ctx, router, mgr, joinPath(prefix, "Meta.json"), http.MethodPost, func(w http.ResponseWriter, r *http.Request) error {
		var req schema.MetaRequest
		if err := decodeBody(r, &req); err != nil {
			return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
		}
		if req.Hostname == "" {
			return httpresponse.Error(w, httpresponse.ErrBadRequest.With("missing hostname"))
		}

		needed, err := mgr.AppendMeta(r.Context(), req.Hostname, req.Record())
		if err != nil {
			return httpresponse.Error(w, err)
		}

		return httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.HashArrayResponse{HashList: needed})
	})
}
