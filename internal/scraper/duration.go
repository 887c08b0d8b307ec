package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var isoDurationPattern = regexp.MustCompile(`(?i)^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts an ISO-8601 time duration such as "PT1H30M" into a
// display string such as "1h 30m". Input that does not look like an ISO
// duration is returned unchanged. Empty input and durations that render to
// zero minutes yield nil. Seconds are not displayed.
func ParseDuration(iso string) *string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return nil
	}
	minutes, ok := durationMinutes(iso)
	if !ok {
		return &iso
	}
	return formatMinutes(minutes)
}

// ResidualTime derives the time not accounted for by prep and cook, e.g.
// unattended freezing or resting. It returns nil when total is missing or
// the residual is not positive.
func ResidualTime(prep, cook, total string) *string {
	totalMinutes, ok := durationMinutes(total)
	if !ok || totalMinutes <= 0 {
		return nil
	}
	prepMinutes, _ := durationMinutes(prep)
	cookMinutes, _ := durationMinutes(cook)

	residual := totalMinutes - prepMinutes - cookMinutes
	if residual <= 0 {
		return nil
	}
	return formatMinutes(residual)
}

// durationMinutes returns the whole minutes of an ISO duration and whether
// the input matched.
func durationMinutes(iso string) (int, bool) {
	m := isoDurationPattern.FindStringSubmatch(strings.TrimSpace(iso))
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, true
}

func formatMinutes(total int) *string {
	if total <= 0 {
		return nil
	}
	h, m := total/60, total%60

	var parts []string
	if h > 0 {
		parts = append(parts, strconv.Itoa(h)+"h")
	}
	if m > 0 {
		parts = append(parts, strconv.Itoa(m)+"m")
	}
	s := strings.Join(parts, " ")
	return &s
}
