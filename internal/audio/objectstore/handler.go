// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package objectstore

import (
	"errors"
	"net/http"
	"path"
	"strings"

	xglog "github.com/ManuGH/metronome/internal/log"
)

// Handler serves objects behind signed links. It expects the request path
// to be the object key, so mount it with http.StripPrefix(MediaPrefix, ...).
type Handler struct {
	backend Backend
	signer  *Signer
}

func NewHandler(backend Backend, signer *Signer) *Handler {
	return &Handler{backend: backend, signer: signer}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := xglog.WithContext(r.Context(), xglog.WithComponent("media"))

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/")
	if err := ValidateKey(key); err != nil {
		http.Error(w, "invalid key", http.StatusBadRequest)
		return
	}
	if err := h.signer.Verify(key, r.URL.Query()); err != nil {
		logger.Debug().Err(err).Str(xglog.FieldObjectKey, key).Msg("rejected media link")
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	obj, err := h.backend.Open(r.Context(), key)
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldObjectKey, key).Msg("open media object")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer func() { _ = obj.Body.Close() }()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	http.ServeContent(w, r, path.Base(key), obj.ModTime, obj.Body)
}
