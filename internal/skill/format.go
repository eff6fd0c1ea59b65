// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package skill

import (
	"strconv"
	"strings"
	"time"
)

// spokenDuration renders d the way it is read out, e.g. "1 minute, 30
// seconds". Sub-second parts are dropped.
func spokenDuration(d time.Duration) string {
	secs := int(d / time.Second)
	if secs <= 0 {
		return "0 seconds"
	}

	units := []struct {
		name string
		size int
	}{
		{"day", 24 * 3600},
		{"hour", 3600},
		{"minute", 60},
		{"second", 1},
	}
	var parts []string
	for _, u := range units {
		n := secs / u.size
		if n == 0 {
			continue
		}
		secs -= n * u.size
		parts = append(parts, plural(n, u.name))
	}
	return strings.Join(parts, ", ")
}

func spokenSeconds(n int) string {
	return spokenDuration(time.Duration(n) * time.Second)
}

// plural returns "1 minute" or "3 minutes".
func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}

var (
	ordinalWords = []string{
		"zeroth", "first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth",
		"tenth", "eleventh", "twelfth", "thirteenth", "fourteenth", "fifteenth", "sixteenth",
		"seventeenth", "eighteenth", "nineteenth",
	}
	tensWords = []string{"twent", "thirt", "fort", "fift", "sixt", "sevent", "eight", "ninet"}
)

// ordinal spells out n as an ordinal word for 0 to 99, e.g. "third",
// "twenty-first". Larger numbers fall back to digits.
func ordinal(n int) string {
	switch {
	case n < 0:
		return strconv.Itoa(n)
	case n < len(ordinalWords):
		return ordinalWords[n]
	case n < 100:
		tens := tensWords[n/10-2]
		if n%10 == 0 {
			return tens + "ieth"
		}
		return tens + "y-" + ordinalWords[n%10]
	default:
		return strconv.Itoa(n) + "th"
	}
}

// spokenList joins names as "a, b and c".
func spokenList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
