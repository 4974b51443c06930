package enums

import (
	"fmt"
	"strings"
)

// Theme is the appearance theme preference. Values are stored and
// serialized lowercase.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

var validThemes = []Theme{
	ThemeLight,
	ThemeDark,
	ThemeSystem,
}

// String implements fmt.Stringer.
func (t Theme) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Theme.
func (t Theme) IsValid() bool {
	for _, candidate := range validThemes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTheme converts raw input into a Theme, case-insensitively.
func ParseTheme(value string) (Theme, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validThemes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid theme %q", value)
}

// Density is the appearance density preference.
type Density string

const (
	DensityCompact     Density = "compact"
	DensityComfortable Density = "comfortable"
	DensitySpacious    Density = "spacious"
)

var validDensities = []Density{
	DensityCompact,
	DensityComfortable,
	DensitySpacious,
}

// String implements fmt.Stringer.
func (d Density) String() string {
	return string(d)
}

// IsValid reports whether the value is a known Density.
func (d Density) IsValid() bool {
	for _, candidate := range validDensities {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDensity converts raw input into a Density, case-insensitively.
func ParseDensity(value string) (Density, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validDensities {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid density %q", value)
}
