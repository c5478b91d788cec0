package tagrow

import (
	"fmt"
	"strings"
)

// DefaultFallback is shown when a row has no usable labels.
const DefaultFallback = "remote"

// ProcessLabels drops empty and whitespace-only entries and substitutes the
// fallback when nothing is left, so the result is never empty. Kept labels are
// not modified; order and duplicates are preserved.
func ProcessLabels(raw []string, fallback string) []string {
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		fallback = strings.TrimSpace(fallback)
		if fallback == "" {
			fallback = DefaultFallback
		}
		return []string{fallback}
	}
	return out
}

// LabelsFromAny converts a decoded sequence into label strings. Nil entries are
// dropped; scalars are formatted with %v.
func LabelsFromAny(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			out = append(out, t)
		default:
			out = append(out, fmt.Sprintf("%v", t))
		}
	}
	return out
}
