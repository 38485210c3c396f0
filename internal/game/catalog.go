package game

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog  = errors.New("catalog has no levels")
	ErrLevelName     = errors.New("level name is required")
	ErrDuplicateName = errors.New("level names must be unique")
	ErrBadColor      = errors.New(`level colors must be "#rrggbb"`)
)

// LoadCatalog loads and validates a level catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path is cleaned and comes from config
	if err != nil {
		return nil, err
	}
	return ParseCatalog(b)
}

// ParseCatalog decodes a YAML catalog, assigns level indexes in file order
// and validates every question.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range c.Levels {
		c.Levels[i].Index = i
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the catalog can drive a session.
func (c *Catalog) Validate() error {
	if c == nil || len(c.Levels) == 0 {
		return ErrEmptyCatalog
	}
	names := make(map[string]bool, len(c.Levels))
	for i, lvl := range c.Levels {
		name := strings.TrimSpace(lvl.Name)
		if name == "" {
			return fmt.Errorf("level %d: %w", i, ErrLevelName)
		}
		key := strings.ToLower(name)
		if names[key] {
			return fmt.Errorf("level %d: %w: %q", i, ErrDuplicateName, name)
		}
		names[key] = true
		for _, c := range lvl.Colors {
			if _, ok := ParseColor(c); !ok {
				return fmt.Errorf("level %d (%s): %w: %q", i, name, ErrBadColor, c)
			}
		}
		if err := lvl.Question.Validate(); err != nil {
			return fmt.Errorf("level %d (%s): %w", i, name, err)
		}
	}
	return nil
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Levels)
}

// Level returns the level at index, or nil when out of range.
func (c *Catalog) Level(index int) *Level {
	if c == nil || index < 0 || index >= len(c.Levels) {
		return nil
	}
	return &c.Levels[index]
}

// Slug is the lower-case, underscore-separated level name used in asset paths.
func (l *Level) Slug() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(l.Name)), " ", "_")
}

// ParseColor reads a "#rrggbb" colour.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}
