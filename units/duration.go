// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package units

import (
	"fmt"
	"time"
)

const (
	daySeconds   = 86400
	monthSeconds = 30 * daySeconds
)

// DurationLabel renders a lock duration the way the dashboard displays it:
// whole months when the duration is an exact multiple of 30 days, whole days
// when it is an exact multiple of one day, raw seconds otherwise.
func DurationLabel(durationSeconds uint64) string {
	switch {
	case durationSeconds == 0:
		return "0"
	case durationSeconds%monthSeconds == 0:
		months := durationSeconds / monthSeconds
		if months == 1 {
			return "1 Month"
		}
		return fmt.Sprintf("%d Months", months)
	case durationSeconds%daySeconds == 0:
		days := durationSeconds / daySeconds
		if days == 1 {
			return "1 Day"
		}
		return fmt.Sprintf("%d Days", days)
	default:
		return fmt.Sprintf("%d sec", durationSeconds)
	}
}

// TimeRemaining renders the time left until unlock as "D Days, H Hours,
// M Minutes", flooring at zero once the unlock date has passed.
func TimeRemaining(unlock time.Time, now time.Time) string {
	remaining := unlock.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	days := int64(remaining.Hours()) / 24
	hours := int64(remaining.Hours()) % 24
	minutes := int64(remaining.Minutes()) % 60

	return fmt.Sprintf("%d Days, %d Hours, %d Minutes", days, hours, minutes)
}
