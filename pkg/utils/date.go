package utils

import (
	"fmt"
	"time"
)

// GetWibTimeLocation returns the Asia/Jakarta location, falling back to a fixed +07:00 zone
// when the tz database is unavailable.
func GetWibTimeLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func TimeNowWIB() time.Time {
	return time.Now().In(GetWibTimeLocation())
}

// RelativeTime renders the age of t relative to now as "Xm ago", "Xh ago" or "Xd ago".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// PrettyDate formats t in WIB, e.g. "Mon, 02 Jan 2006 15:04 WIB".
func PrettyDate(t time.Time) string {
	return t.In(GetWibTimeLocation()).Format("Mon, 02 Jan 2006 15:04") + " WIB"
}
