package weather

import "time"

// FormatLocalTime renders an hourly or current timestamp in the
// location's IANA timezone, e.g. "Mon, Jan 2, 3:04 PM". Timestamps that
// cannot be parsed, or timezones the platform does not know, fall back
// to the raw input.
func FormatLocalTime(ts, timezone string) string {
	t, err := time.Parse(hourTimeLayout, ts)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, ts); err != nil {
			return ts
		}
	}
	if loc, err := time.LoadLocation(timezone); err == nil {
		t = t.In(loc)
	}
	return t.Format("Mon, Jan 2, 3:04 PM")
}
