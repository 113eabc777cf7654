package texttemplate

import (
	"fmt"

	"go.starlark.net/starlark"
)

// Macro is a caller-registered callable invoked by $call. Each $arg body
// is rendered to a string in the calling context before Apply runs.
type Macro interface {
	Name() string
	Apply(args map[string]string) (string, error)
}

// StringMacro is a macro whose body is itself a template. The template
// is parsed once at construction and rendered on every invocation with
// the argument map as its root context.
type StringMacro struct {
	name     string
	template *Template
}

// NewStringMacro parses spec and wraps it as a macro.
func NewStringMacro(name, spec string) (*StringMacro, error) {
	t, err := Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing macro %q: %w", name, err)
	}
	return &StringMacro{name: name, template: t}, nil
}

// MustStringMacro is NewStringMacro for statically known specs.
func MustStringMacro(name, spec string) *StringMacro {
	m, err := NewStringMacro(name, spec)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *StringMacro) Name() string { return m.name }

func (m *StringMacro) Apply(args map[string]string) (string, error) {
	ctx := make(map[string]any, len(args))
	for k, v := range args {
		ctx[k] = v
	}
	return Render(m.template, FromMap(ctx), nil)
}

// StarlarkMacro is a macro whose body is a Starlark function. The script
// must define a function with the macro's name taking a single dict of
// string arguments and returning a string.
type StarlarkMacro struct {
	name string
	fn   starlark.Callable
}

// NewStarlarkMacro executes script and binds the function named name.
func NewStarlarkMacro(name, script string) (*StarlarkMacro, error) {
	thread := &starlark.Thread{Name: "texttemplate"}
	globals, err := starlark.ExecFile(thread, name+".star", script, nil)
	if err != nil {
		return nil, fmt.Errorf("loading macro %q: %w", name, err)
	}
	fn, ok := globals[name].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("macro script does not define a function %q", name)
	}
	return &StarlarkMacro{name: name, fn: fn}, nil
}

func (m *StarlarkMacro) Name() string { return m.name }

func (m *StarlarkMacro) Apply(args map[string]string) (string, error) {
	dict := starlark.NewDict(len(args))
	for k, v := range args {
		if err := dict.SetKey(starlark.String(k), starlark.String(v)); err != nil {
			return "", fmt.Errorf("macro %q: %w", m.name, err)
		}
	}
	thread := &starlark.Thread{Name: "texttemplate"}
	out, err := starlark.Call(thread, m.fn, starlark.Tuple{dict}, nil)
	if err != nil {
		return "", fmt.Errorf("macro %q: %w", m.name, err)
	}
	s, ok := starlark.AsString(out)
	if !ok {
		return "", fmt.Errorf("macro %q returned %s, want string", m.name, out.Type())
	}
	return s, nil
}
