// Package timeutil parses and formats the coarse durations used for
// cooldowns.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitHours      = map[string]int{
		"h":     1,
		"hr":    1,
		"hrs":   1,
		"hour":  1,
		"hours": 1,
		"d":     24,
		"day":   24,
		"days":  24,
		"w":     7 * 24,
		"wk":    7 * 24,
		"wks":   7 * 24,
		"week":  7 * 24,
		"weeks": 7 * 24,
	}
)

// ParseCooldown parses a cooldown length such as "7d", "20h" or "1w2d6h" and
// returns it split into whole days and remaining hours. A bare number is
// read as days.
func ParseCooldown(input string) (days int, hours int, err error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, 0, fmt.Errorf("empty cooldown")
	}
	if n, convErr := strconv.Atoi(remaining); convErr == nil {
		remaining = strconv.Itoa(n) + "d"
	}

	total := 0
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, 0, fmt.Errorf("invalid cooldown segment %q", strings.TrimSpace(remaining))
		}
		value, convErr := strconv.Atoi(matches[1])
		if convErr != nil {
			return 0, 0, fmt.Errorf("invalid cooldown value %q: %w", matches[1], convErr)
		}
		per, ok := unitHours[matches[2]]
		if !ok {
			return 0, 0, fmt.Errorf("unsupported cooldown unit %q", matches[2])
		}
		total += value * per
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, 0, fmt.Errorf("cooldown must be greater than zero")
	}
	return total / 24, total % 24, nil
}

// FormatRemaining renders d as a compact countdown: whole days (rounded up)
// once a day or more is left, otherwise hours, then minutes.
func FormatRemaining(d time.Duration) string {
	switch {
	case d <= 0:
		return "0m"
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd", int(math.Ceil(d.Hours()/24)))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(math.Ceil(d.Hours())))
	default:
		return fmt.Sprintf("%dm", int(math.Ceil(d.Minutes())))
	}
}
