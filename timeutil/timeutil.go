package timeutil

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// LatencyMS is the whole milliseconds from requested to replied.
// Clock skew can put replied before requested; that reads as zero.
func LatencyMS(requested, replied time.Time) int64 {
	ms := replied.Sub(requested).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

// DaysWindow renders d as a YGOPRODECK rolling window such as "90 day".
// Partial days round down and anything under a day becomes one day.
func DaysWindow(d time.Duration) string {
	days := int(d / day)
	if days < 1 {
		days = 1
	}
	return fmt.Sprintf("%d day", days)
}
