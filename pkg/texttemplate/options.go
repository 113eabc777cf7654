package texttemplate

import (
	"errors"
	"time"

	"github.com/callcc/texttemplate/pkg/formatters"
)

// ErrIncludeNotConfigured is returned when a template uses $include but
// no loader was configured.
var ErrIncludeNotConfigured = errors.New("no content includer configured")

// Options configures a render call. The zero value is not usable
// directly; start from DefaultOptions. Options are not mutated by
// Render, so a configured value may be shared across concurrent renders.
type Options struct {
	// OnVariableNotFound supplies the output for a variable that resolves
	// to nil or null, including a key missing from a loop element's map.
	OnVariableNotFound func(name string, lookup Lookup) string

	// Formatters resolves the ${name|format} format patterns, first
	// supporting formatter wins.
	Formatters *formatters.Registry

	// Macros resolves $call by name.
	Macros map[string]Macro

	// LoadInclude resolves $include paths to template source.
	LoadInclude func(path string) (string, error)
}

// defaultLocation mirrors the engine's historical default zone.
var defaultLocation = loadLocation("CET")

// DefaultLocation returns the zone the stock date formatter renders in
// when no other zone is configured.
func DefaultLocation() *time.Location { return defaultLocation }

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultOptions returns options with the stock formatter registry
// (dates in CET, then numbers), no macros and no include loader.
func DefaultOptions() *Options {
	return &Options{
		OnVariableNotFound: func(string, Lookup) string { return "" },
		Formatters:         formatters.Default(defaultLocation),
		Macros:             map[string]Macro{},
	}
}

// WithTimeZone swaps the registry's date formatter for one rendering in
// loc, keeping any custom formatters.
func (o *Options) WithTimeZone(loc *time.Location) *Options {
	o.Formatters.SetDateFormatter(formatters.NewDateFormatter(loc))
	return o
}

// WithFormatter appends a custom formatter to the registry.
func (o *Options) WithFormatter(f formatters.ValueFormatter) *Options {
	o.Formatters.Add(f)
	return o
}

// WithMacro registers a macro under its own name.
func (o *Options) WithMacro(m Macro) *Options {
	o.Macros[m.Name()] = m
	return o
}

// WithMacros registers each macro in the list.
func (o *Options) WithMacros(ms []Macro) *Options {
	for _, m := range ms {
		o.Macros[m.Name()] = m
	}
	return o
}

// WithIncludes sets the loader used by $include.
func (o *Options) WithIncludes(load func(path string) (string, error)) *Options {
	o.LoadInclude = load
	return o
}

// WithNotFound sets the fallback for variables that resolve to nil or null.
func (o *Options) WithNotFound(fn func(name string) string) *Options {
	o.OnVariableNotFound = func(name string, _ Lookup) string { return fn(name) }
	return o
}
