package measure

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/tagline/internal/badge"
)

// Backend names accepted by ParseBackend.
const (
	BackendCell  = "cell"
	BackendRune  = "rune"
	BackendPixel = "pixel"
)

// ParseBackend validates a metrics backend name. An empty name is "cell".
func ParseBackend(name string) (string, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "":
		return BackendCell, nil
	case BackendCell, BackendRune, BackendPixel:
		return n, nil
	default:
		return "", fmt.Errorf("unknown metrics backend %q (expected cell, rune or pixel)", name)
	}
}

// ForBackend returns the provider for a backend name. build is used by the
// cell backend and may be nil for the others.
func ForBackend(name string, build func(badge.Variant) badge.Styles) (Provider, error) {
	n, err := ParseBackend(name)
	if err != nil {
		return nil, err
	}
	switch n {
	case BackendRune:
		return Runes{}, nil
	case BackendPixel:
		return NewPixels(), nil
	default:
		return NewCells(build), nil
	}
}
