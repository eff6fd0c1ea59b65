// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ManuGH/metronome/internal/api/middleware"
	"github.com/ManuGH/metronome/internal/log"
	"github.com/ManuGH/metronome/internal/skill"
	"github.com/ManuGH/metronome/internal/telemetry"
)

// handleEvent decodes one skill event and answers with the skill response.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer func() { _ = body.Close() }()

	var ev skill.Event
	dec := json.NewDecoder(body)
	if err := dec.Decode(&ev); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "event_too_large", "")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_event", "request body is not a valid event")
		return
	}
	if _, err := dec.Token(); err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid_event", "trailing data after event")
		return
	}

	middleware.AddSpanAttributes(r, telemetry.EventAttributes(string(ev.Kind))...)

	resp, err := s.deps.Dispatcher.Dispatch(r.Context(), ev)
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrUnknownKind), errors.Is(err, skill.ErrMissingUser):
			writeError(w, http.StatusBadRequest, "invalid_event", err.Error())
		default:
			logger := log.WithContext(r.Context(), s.logger)
			logger.Error().Err(err).Str(log.FieldEventKind, string(ev.Kind)).Msg("event dispatch failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
