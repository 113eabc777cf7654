// Package macrofile loads macro libraries from YAML files. Each entry
// names a macro and supplies its body either as template text or as a
// Starlark script defining a function with the macro's name.
package macrofile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/callcc/texttemplate/pkg/texttemplate"
	v "github.com/callcc/texttemplate/pkg/validator"
)

type Definition struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template,omitempty"`
	Script   string `yaml:"script,omitempty"`
}

func (d Definition) Validate() error {
	return v.All(
		v.NotEmpty(d.Name, "macro name"),
		v.ExactlyOne(fmt.Sprintf("macro %q", d.Name), d.Template != "", d.Script != ""),
	)
}

type File struct {
	Macros []Definition `yaml:"macros"`
}

func (f File) Validate() error {
	names := make([]string, 0, len(f.Macros))
	for _, d := range f.Macros {
		names = append(names, d.Name)
	}
	return v.All(
		v.Each(f.Macros),
		v.NoDuplicates(names, "macro names"),
	)
}

// Parse decodes and validates a macro library, returning the ready
// macros.
func Parse(data []byte) ([]texttemplate.Macro, error) {
	var f File
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding macro file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid macro file: %w", err)
	}

	macros := make([]texttemplate.Macro, 0, len(f.Macros))
	for _, d := range f.Macros {
		var (
			m   texttemplate.Macro
			err error
		)
		if d.Template != "" {
			m, err = texttemplate.NewStringMacro(d.Name, d.Template)
		} else {
			m, err = texttemplate.NewStarlarkMacro(d.Name, d.Script)
		}
		if err != nil {
			return nil, err
		}
		macros = append(macros, m)
	}
	return macros, nil
}

// Load reads a macro library from disk.
func Load(path string) ([]texttemplate.Macro, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading macro file: %w", err)
	}
	return Parse(data)
}
