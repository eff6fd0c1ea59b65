// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

// InProgressEdit is a custom sequence being dictated over several turns.
// A nil *InProgressEdit means no edit is running.
type InProgressEdit struct {
	Parts        []SegmentRequest `json:"parts"`
	AwaitingName bool             `json:"awaitingName"`
}

// Clone returns an independent copy. Clone of nil is nil.
func (e *InProgressEdit) Clone() *InProgressEdit {
	if e == nil {
		return nil
	}
	parts := make([]SegmentRequest, len(e.Parts))
	copy(parts, e.Parts)
	return &InProgressEdit{Parts: parts, AwaitingName: e.AwaitingName}
}
