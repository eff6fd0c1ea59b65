// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package tempo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sosodev/duration"

	"github.com/ManuGH/metronome/internal/domain/metronome/model"
)

// maxSeconds is the longest duration that still fits a time.Duration.
const maxSeconds = int(math.MaxInt64 / int64(time.Second))

// DurationNotUnderstoodError is returned for a duration slot that cannot be
// parsed.
type DurationNotUnderstoodError struct {
	Input string
}

func (e *DurationNotUnderstoodError) Error() string {
	return fmt.Sprintf("cannot parse duration %q", e.Input)
}

func (e *DurationNotUnderstoodError) Is(target error) bool { return target == model.ErrInput }

// ParseDuration reads a duration slot. An empty slot means Forever. Plain
// integers are taken as seconds, anything else must be an ISO 8601 duration
// in whole weeks, days, hours, minutes and seconds.
func ParseDuration(s string) (model.Duration, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return model.Forever, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > maxSeconds {
			return model.Duration{}, &DurationNotUnderstoodError{Input: s}
		}
		return model.Seconds(n), nil
	}

	secs, ok := isoSeconds(s)
	if !ok {
		return model.Duration{}, &DurationNotUnderstoodError{Input: s}
	}
	return model.Seconds(secs), nil
}

// isoSeconds converts an ISO 8601 duration to whole seconds. Years and
// months have no fixed length and are refused.
func isoSeconds(s string) (int, bool) {
	// The parser accepts a bare designator and drops a trailing number.
	if s == "P" || s == "PT" || !strings.ContainsAny(s[len(s)-1:], "WDHMS") {
		return 0, false
	}
	d, err := duration.Parse(s)
	if err != nil || d.Negative || d.Years != 0 || d.Months != 0 {
		return 0, false
	}

	total := 0.0
	for _, part := range []struct{ n, unit float64 }{
		{d.Weeks, 7 * 24 * 3600},
		{d.Days, 24 * 3600},
		{d.Hours, 3600},
		{d.Minutes, 60},
		{d.Seconds, 1},
	} {
		if part.n != math.Trunc(part.n) || math.IsInf(part.n, 0) {
			return 0, false
		}
		total += part.n * part.unit
	}
	if total > float64(maxSeconds) {
		return 0, false
	}
	return int(d.ToTimeDuration() / time.Second), true
}
