package utils

import (
	"fmt"
	"strings"
	"time"
)

// Supported month name locales
const (
	LocaleRU = "ru"
	LocaleEN = "en"
)

// Standalone (nominative) month names, indexed by time.Month-1
var monthNames = map[string][12]string{
	LocaleRU: {
		"январь", "февраль", "март", "апрель", "май", "июнь",
		"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
	},
	LocaleEN: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// IsSupportedLocale reports whether month names exist for locale
func IsSupportedLocale(locale string) bool {
	_, ok := monthNames[strings.ToLower(locale)]
	return ok
}

// MonthName returns the standalone month name in the given locale
func MonthName(m time.Month, locale string) string {
	names, ok := monthNames[strings.ToLower(locale)]
	if !ok {
		names = monthNames[LocaleEN]
	}
	return names[m-1]
}

// FormatYearMonth renders t as "<year> <month name>", e.g. "2023 октябрь"
func FormatYearMonth(t time.Time, locale string) string {
	return fmt.Sprintf("%d %s", t.Year(), MonthName(t.Month(), locale))
}

// ParseYearMonth is the inverse of FormatYearMonth. Month names match case-insensitively.
func ParseYearMonth(s, locale string) (time.Time, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid year-month %q", s)
	}

	var year int
	if _, err := fmt.Sscanf(parts[0], "%d", &year); err != nil {
		return time.Time{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}

	names, ok := monthNames[strings.ToLower(locale)]
	if !ok {
		return time.Time{}, fmt.Errorf("unsupported locale %q", locale)
	}
	for i, name := range names {
		if strings.EqualFold(name, parts[1]) {
			return time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown month %q for locale %s", parts[1], locale)
}
