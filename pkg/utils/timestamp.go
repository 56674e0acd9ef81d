package utils

import (
	"fmt"
	"strings"
	"time"
)

// Default layouts for naive local timestamps ("2023-10-01T10:00:00")
var DefaultDateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// TimestampParser parses naive wall-clock timestamps. Parsed values carry the
// UTC location so that calendar arithmetic never crosses a DST shift.
type TimestampParser struct {
	layouts []string
}

// NewTimestampParser creates a parser trying layouts in order
func NewTimestampParser(layouts []string) *TimestampParser {
	if len(layouts) == 0 {
		layouts = DefaultDateTimeLayouts
	}
	return &TimestampParser{layouts: layouts}
}

// Parse tries every configured layout and returns the first match
func (p *TimestampParser) Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range p.layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q matches none of %v", value, p.layouts)
}

// Format renders t with the primary layout
func (p *TimestampParser) Format(t time.Time) string {
	return t.Format(p.layouts[0])
}
