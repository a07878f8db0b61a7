package schema

import (
	"fmt"
	"strconv"
	"time"
)

// ValueString renders an attribute value in its canonical string form. Both
// the profiler (top-value keys) and the output writers use this, so the same
// value always renders the same way.
func ValueString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// AbbreviateValue shortens a value string to at most maxLen runes for table
// display. Values at or under the limit are returned unchanged.
func AbbreviateValue(s string, maxLen int) string {
	if maxLen <= 3 {
		maxLen = 3
	}
	rr := []rune(s)
	if len(rr) <= maxLen {
		return s
	}
	return string(rr[:maxLen-3]) + "..."
}

// FormatBytes renders a byte count in human-readable form.
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(size) / float64(div)
	return fmt.Sprintf("%.1f %s", value, []string{"KB", "MB", "GB", "TB"}[exp])
}
