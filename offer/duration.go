package offer

import (
	"regexp"
	"strconv"
)

var (
	hourPattern   = regexp.MustCompile(`(\d+)h`)
	minutePattern = regexp.MustCompile(`(\d+)m`)
)

// ParseDuration converts a free-text duration token such as "7h 45m",
// "5h" or "45m" into total minutes. A missing hour or minute component
// contributes zero, and text with no recognizable component yields zero;
// the caller decides whether a zero duration is meaningful.
func ParseDuration(text string) int {
	minutes := 0
	if m := hourPattern.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		minutes += h * 60
	}
	if m := minutePattern.FindStringSubmatch(text); m != nil {
		mm, _ := strconv.Atoi(m[1])
		minutes += mm
	}
	return minutes
}
