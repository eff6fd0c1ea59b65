// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
	FieldSessionID = "session_id"

	// Process
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldEventKind = "event_kind"
	FieldErrClass  = "error_class"

	// Playback state snapshot
	FieldBPM          = "bpm"
	FieldCursor       = "cursor"
	FieldSegmentCount = "segment_count"
	FieldEditParts    = "edit_parts"
	FieldOutcome      = "outcome"

	// Storage
	FieldObjectKey = "object_key"
	FieldBackend   = "backend"
	FieldPath      = "path"

	// HTTP
	FieldMethod   = "method"
	FieldRoute    = "route"
	FieldStatus   = "status"
	FieldDuration = "duration_ms"
)
