package formatters

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"
)

// dateLayouts maps each supported date pattern to its Go reference
// layout. The pattern set is fixed; anything else falls through to the
// next formatter in the registry.
var dateLayouts = map[string]string{
	"yyyy": "2006",
	"MM":   "01",
	"dd":   "02",
	"HH":   "15",
	"mm":   "04",
	"ss":   "05",
	"E":    "Mon",
	"MMM":  "Jan",
	"MMMM": "January",

	"dd/MM/yyyy": "02/01/2006",
	"MM/dd/yyyy": "01/02/2006",
	"yyyy-MM-dd": "2006-01-02",
	"dd.MM.yyyy": "02.01.2006",

	"EEEE, MMMM dd, yyyy": "Monday, January 02, 2006",
	"MM/dd/yyyy HH:mm:ss": "01/02/2006 15:04:05",
	"dd/MM/yyyy HH:mm:ss": "02/01/2006 15:04:05",
}

// DateFormatter renders time values in a fixed zone. Month and weekday
// names follow the configured locale. String values are accepted and
// parsed as dates before formatting.
type DateFormatter struct {
	location *time.Location
	locale   monday.Locale
}

// NewDateFormatter returns a formatter rendering in loc with English
// month and weekday names.
func NewDateFormatter(loc *time.Location) *DateFormatter {
	return &DateFormatter{location: loc, locale: monday.LocaleEnUS}
}

// WithLocale sets the locale used for month and weekday names.
func (d *DateFormatter) WithLocale(locale monday.Locale) *DateFormatter {
	d.locale = locale
	return d
}

func (d *DateFormatter) Supports(format string) bool {
	_, ok := dateLayouts[format]
	return ok
}

func (d *DateFormatter) Format(value any, format string) (string, error) {
	layout, ok := dateLayouts[format]
	if !ok {
		return "", &UnsupportedFormatError{Format: format}
	}
	t, err := d.coerce(value)
	if err != nil {
		return "", err
	}
	return monday.Format(t.In(d.location), layout, d.locale), nil
}

func (d *DateFormatter) coerce(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	case string:
		t, err := dateparse.ParseIn(v, d.location)
		if err != nil {
			return time.Time{}, fmt.Errorf("value %q is not a parseable date: %w", v, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("value must be a time value or date string, got %T", value)
}
