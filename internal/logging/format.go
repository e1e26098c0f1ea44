package logging

import (
	"fmt"
	"sort"
	"strings"
)

const clipLimit = 240

// Truncate flattens a value to a single display line, clipping very long
// content.
func Truncate(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	if value == "" {
		return "<empty>"
	}
	if len(value) > clipLimit {
		return value[:clipLimit] + "..."
	}
	return value
}

// FormatEventLine renders an event as a plain text line for non-color
// terminals and tests.
func FormatEventLine(event Event) string {
	ts := event.Time.Format("15:04:05")
	level := strings.ToUpper(event.Level.String())
	fields := ""
	if len(event.Fields) > 0 {
		keys := orderedFieldKeys(event.Fields)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, formatFieldValue(event.Fields[key])))
		}
		fields = " " + strings.Join(parts, " ")
	}
	return fmt.Sprintf("%s [%s] %s%s\n", ts, level, event.Message, fields)
}

func formatFieldValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return Truncate(v)
	case error:
		return Truncate(v.Error())
	case fmt.Stringer:
		return Truncate(v.String())
	default:
		return Truncate(fmt.Sprintf("%v", value))
	}
}

// orderedFieldKeys sorts keys alphabetically with "error" forced last, so the
// longest value does not bury the rest of the line.
func orderedFieldKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	hasError := false
	for key := range fields {
		if key == "error" {
			hasError = true
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if hasError {
		keys = append(keys, "error")
	}
	return keys
}
