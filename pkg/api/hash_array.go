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

// registerHashArrayHandler wires POST /Hash_Array.json: the hash-set oracle
// (C4) invoked directly, with no storage side effect.
func registerHashArrayHandler(ctx context.Context, prefix string, router server.HTTPRouter, mgr *manager.Manager) {
	handle(ctx, router, mgr, joinPath(prefix, "Hash_Array.json"), http.MethodPost, func(w http.ResponseWriter, r *http.Request) error {
		var req schema.HashArrayRequest
		if err := decodeBody(r, &req); err != nil {
			return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
		}

		needed, err := mgr.NeededHashes(r.Context(), req.HashList)
		if err != nil {
			return httpresponse.Error(w, err)
		}

		return httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.HashArrayResponse{HashList: needed})
	})
}
