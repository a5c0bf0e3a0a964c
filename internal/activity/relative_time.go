package activity

import (
	"fmt"
	"time"
)

const absoluteDateLayout = "02 Jan 2006"

// RelativeTime renders the elapsed time between ts and now for the feed.
// Bands are exact at their boundaries: exactly one hour is "1h ago", never
// "60 min ago", and anything seven days or older shows the absolute date.
func RelativeTime(ts, now time.Time) string {
	elapsed := now.Sub(ts)

	switch {
	case elapsed < time.Minute:
		return "now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d min ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return ts.Format(absoluteDateLayout)
	}
}
