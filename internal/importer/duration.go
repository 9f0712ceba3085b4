package importer

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDuration = regexp.MustCompile(`^PT(\d+)H(\d+)M(\d+)S$`)

// FormatDuration renders an MSPDI work duration such as "PT16H0M0S" as
// "2 days", assuming an eight hour working day. Other values are returned
// unchanged.
func FormatDuration(raw string) string {
	m := isoDuration.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	total := float64(hours) + float64(minutes)/60

	days := total / 8
	switch {
	case total == 0:
		return "0 days"
	case days == 1:
		return "1 day"
	case days == float64(int(days)):
		return fmt.Sprintf("%d days", int(days))
	case total < 8:
		return strconv.FormatFloat(total, 'f', -1, 64) + " hrs"
	default:
		return strconv.FormatFloat(days, 'f', 2, 64) + " days"
	}
}
