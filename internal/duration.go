package internal

import (
	"fmt"
	"regexp"
	"strconv"
)

// fallbackDuration is shown when the duration string cannot be read
const fallbackDuration = "0:00"

// ISO 8601 duration pattern (PT#H#M#S)
var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// FormatDuration converts an ISO 8601 duration such as "PT1H2M3S" into a clock
// display ("1:02:03", "5:09"). Unreadable input yields "0:00".
func FormatDuration(isoDuration string) string {
	matches := durationPattern.FindStringSubmatch(isoDuration)
	if matches == nil {
		return fallbackDuration
	}

	hours := atoiOrZero(matches[1])
	minutes := atoiOrZero(matches[2])
	seconds := atoiOrZero(matches[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
