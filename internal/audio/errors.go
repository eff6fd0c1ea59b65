// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package audio

import (
	"fmt"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// GenerationServiceError wraps a failed or refused clip generation.
type GenerationServiceError struct {
	BPM model.BPM
	Err error
}

func (e *GenerationServiceError) Error() string {
	return fmt.Sprintf("generate clip at %d bpm: %v", e.BPM, e.Err)
}

func (e *GenerationServiceError) Unwrap() error { return e.Err }

func (e *GenerationServiceError) Is(target error) bool { return target == model.ErrUpstream }

// StorageError wraps a content store failure other than a missing object.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("content store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == model.ErrUpstream }
