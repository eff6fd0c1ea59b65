// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import (
	"context"
	"fmt"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// Entitlements answers whether a user owns the custom sequences product.
type Entitlements interface {
	CustomSequences(ctx context.Context, userID string) (bool, error)
}

// StaticEntitlements grants or denies the product to everyone.
type StaticEntitlements bool

func (s StaticEntitlements) CustomSequences(context.Context, string) (bool, error) {
	return bool(s), nil
}

// EntitlementError wraps a failed purchase lookup.
type EntitlementError struct {
	UserID string
	Err    error
}

func (e *EntitlementError) Error() string {
	return fmt.Sprintf("entitlement check for %s: %v", e.UserID, e.Err)
}

func (e *EntitlementError) Unwrap() error { return e.Err }

func (e *EntitlementError) Is(target error) bool { return target == model.ErrUpstream }
