package api

import (
	"context"
	"net/http"
	"strings"

	// Packages
	manager "github.com/mutablelogic/go-cdp/pkg/manager"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	server "github.com/mutablelogic/go-server"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func registerDataHandlers(ctx context.Context, prefix string, router server.HTTPRouter, mgr *manager.Manager) {
	// GET /Data/Hash_Array.json is registered before the wildcard below; the
	// router prefers the literal segment over {hash}.
	handle(ctx, router, mgr, joinPath(prefix, "Data/Hash_Array.json"), http.MethodGet, func(w http.ResponseWriter, r *http.Request) error {
		hashes, err := decodeHashArrayHeader(r.Header.Get(schema.HeaderGetHashArray))
		if err != nil {
			return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
		}

		block, err := mgr.GetConcatenated(r.Context(), hashes)
		if err != nil {
			return httpresponse.Error(w, err)
		}

		return httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), block)
	})

	handle(ctx, router, mgr, joinPath(prefix, "Data/{hash}"), http.MethodGet, func(w http.ResponseWriter, r *http.Request) error {
		h, err := hashFromPath(r.PathValue("hash"))
		if err != nil {
			return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
		}

		block, err := mgr.GetBlock(r.Context(), h)
		if err != nil {
			return httpresponse.Error(w, err)
		}

		return httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), block)
	})

	handle(ctx, router, mgr, joinPath(prefix, "Data.json"), http.MethodPost, func(w http.ResponseWriter, r *http.Request) error {
		var block schema.Block
		if err := decodeBody(r, &block); err != nil {
			return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
		}

		if err := mgr.PutBlock(r.Context(), block); err != nil {
			return httpresponse.Error(w, err)
		}

		return httpresponse.Empty(w, http.StatusOK)
	})

	handle(ctx, router, mgr, joinPath(prefix, "Data_Array.json"), http.MethodPost, func(w http.ResponseWriter, r *http.Request) error {
		var req schema.DataArrayRequest
		if err := decodeBody(r, &req); err != nil {
			return httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
		}

		for _, block := range req.DataArray {
			if err := mgr.PutBlock(r.Context(), block); err != nil {
				return httpresponse.Error(w, err)
			}
		}

		return httpresponse.Empty(w, http.StatusOK)
	})
}

// hashFromPath strips characters outside [0-9a-f] from the captured path
// segment (which also removes the ".json" suffix) and rejects anything
// whose remaining length isn't the 64 hex characters of a Hash.
func hashFromPath(segment string) (schema.Hash, error) {
	var b strings.Builder
	for _, r := range segment {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			b.WriteRune(r)
		}
	}
	return schema.HashFromHex(b.String())
}

func decodeHashArrayHeader(header string) ([]schema.Hash, error) {
	if header == "" {
		return nil, nil
	}
	parts := strings.Split(header, ",")
	hashes := make([]schema.Hash, 0, len(parts))
	for _, p := range parts {
		h, err := schema.HashFromBase64(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, nil
}
