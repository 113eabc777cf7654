// Package formatters provides the value formatter back-ends resolved by
// ${name|format} placeholders: a pattern-matched registry, a date
// formatter and a number formatter.
package formatters

import (
	"time"
)

// ValueFormatter formats values for a family of format patterns.
type ValueFormatter interface {
	// Supports reports whether this formatter handles the pattern.
	Supports(format string) bool
	// Format renders value according to the pattern.
	Format(value any, format string) (string, error)
}

// UnsupportedFormatError reports a pattern no registered formatter
// supports.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return "Unsupported format " + e.Format
}

// Registry is an ordered list of formatters; the first whose Supports
// returns true wins.
type Registry struct {
	list []ValueFormatter
}

// NewRegistry builds a registry from the given formatters, in order.
func NewRegistry(fs ...ValueFormatter) *Registry {
	return &Registry{list: fs}
}

// Default returns the stock registry: dates in loc, then numbers.
func Default(loc *time.Location) *Registry {
	return NewRegistry(NewDateFormatter(loc), NewNumberFormatter())
}

// Add appends a formatter. Later formatters only see patterns no earlier
// formatter claimed.
func (r *Registry) Add(f ValueFormatter) *Registry {
	r.list = append(r.list, f)
	return r
}

// SetDateFormatter replaces any registered date formatter with f,
// placing it first so it keeps priority over later additions.
func (r *Registry) SetDateFormatter(f *DateFormatter) *Registry {
	kept := make([]ValueFormatter, 0, len(r.list)+1)
	kept = append(kept, f)
	for _, existing := range r.list {
		if _, ok := existing.(*DateFormatter); ok {
			continue
		}
		kept = append(kept, existing)
	}
	r.list = kept
	return r
}

// Find returns the first formatter supporting the pattern.
func (r *Registry) Find(format string) (ValueFormatter, error) {
	for _, f := range r.list {
		if f.Supports(format) {
			return f, nil
		}
	}
	return nil, &UnsupportedFormatError{Format: format}
}

// Format dispatches value to the first matching formatter.
func (r *Registry) Format(value any, format string) (string, error) {
	f, err := r.Find(format)
	if err != nil {
		return "", err
	}
	return f.Format(value, format)
}
