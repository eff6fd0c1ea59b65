// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared across spans.
const (
	BPMKey          = "metronome.bpm"
	LinkOutcomeKey  = "metronome.link.outcome"
	SegmentCountKey = "metronome.segments"
	CursorKey       = "metronome.cursor"
	EventKindKey    = "skill.event.kind"
	ErrorClassKey   = "skill.error.class"
	ObjectKeyKey    = "storage.object.key"
)

// LinkAttributes describes one audio link resolution.
func LinkAttributes(bpm int, key string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(BPMKey, bpm),
		attribute.String(ObjectKeyKey, key),
	}
}

// EventAttributes describes a dispatched skill event.
func EventAttributes(kind string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String(EventKindKey, kind)}
}

// PlaybackAttributes describes the cursor after an event.
func PlaybackAttributes(cursor, segments int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(CursorKey, cursor),
		attribute.Int(SegmentCountKey, segments),
	}
}
