package badge

import (
	"fmt"
	"strings"
)

// Variant selects badge sizing.
type Variant string

const (
	// Compact is the tight job-card badge.
	Compact Variant = "xs"
	// Normal is the roomier detail-panel badge.
	Normal Variant = "sm"
)

// DefaultVariant is used when no size is configured.
const DefaultVariant = Normal

// ParseVariant accepts "xs"/"compact" and "sm"/"normal" (case-insensitive).
// An empty string yields DefaultVariant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultVariant, nil
	case "xs", "compact":
		return Compact, nil
	case "sm", "normal":
		return Normal, nil
	default:
		return "", fmt.Errorf("invalid size %q (expected xs or sm)", s)
	}
}

// Padding returns the horizontal padding, in cells, on each side of the badge text.
func (v Variant) Padding() int {
	if v == Compact {
		return 1
	}
	return 2
}

// Toggle returns the other variant.
func (v Variant) Toggle() Variant {
	if v == Compact {
		return Normal
	}
	return Compact
}

// String implements pflag.Value.
func (v *Variant) String() string {
	if v == nil || *v == "" {
		return string(DefaultVariant)
	}
	return string(*v)
}

// Set implements pflag.Value.
func (v *Variant) Set(s string) error {
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type implements pflag.Value.
func (v *Variant) Type() string {
	return "size"
}
