package texttemplate

import (
	"errors"
	"testing"
)

type funcMacro struct {
	name  string
	apply func(args map[string]string) (string, error)
}

func (m funcMacro) Name() string { return m.name }

func (m funcMacro) Apply(args map[string]string) (string, error) { return m.apply(args) }

func TestSimpleMacro(t *testing.T) {
	opts := DefaultOptions().WithMacro(funcMacro{
		name: "wrapper",
		apply: func(args map[string]string) (string, error) {
			return "BEGIN" + args["body"] + "END", nil
		},
	})
	got, err := RenderString("$call(wrapper)\n$arg(body)\n\nhello\n$end\n$end\n\n", FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "BEGIN\nhello\nEND\n" {
		t.Fatalf("got %q", got)
	}
}

func TestMacroWithMultipleArgs(t *testing.T) {
	opts := DefaultOptions().WithMacro(funcMacro{
		name: "link",
		apply: func(args map[string]string) (string, error) {
			return `<a href="` + args["url"] + `">` + args["text"] + `</a>`, nil
		},
	})
	got, err := RenderString("$call(link)\n$arg(url)https://example.com$end\n$arg(text)Click here$end\n$end\n", FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != `<a href="https://example.com">Click here</a>` {
		t.Fatalf("got %q", got)
	}
}

func TestMacroArgsRenderInCallingContext(t *testing.T) {
	opts := DefaultOptions().WithMacro(funcMacro{
		name: "echo",
		apply: func(args map[string]string) (string, error) {
			return args["x"], nil
		},
	})
	got, err := RenderString("$call(echo) $arg(x)${who}$end $end", FromMap(map[string]any{"who": "caller"}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "caller" {
		t.Fatalf("got %q", got)
	}
}

func TestStringMacro(t *testing.T) {
	opts := DefaultOptions().WithMacro(MustStringMacro("greeting", "Hello ${name}!"))
	got, err := RenderString("$call(greeting)\n$arg(name)World$end\n$end\n", FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "Hello World!" {
		t.Fatalf("got %q", got)
	}
}

func TestStringMacroWithConditional(t *testing.T) {
	opts := DefaultOptions().WithMacro(MustStringMacro("greet",
		"$if(formal)Dear ${name}$end$unless(formal)Hi ${name}$end"))

	formal, err := RenderString("$call(greet)\n$arg(name)Alice$end\n$arg(formal)yes$end\n$end\n", FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if formal != "Dear Alice" {
		t.Fatalf("formal: got %q", formal)
	}

	informal, err := RenderString("$call(greet)\n$arg(name)Bob$end\n$end\n", FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if informal != "Hi Bob" {
		t.Fatalf("informal: got %q", informal)
	}
}

func TestStringMacroList(t *testing.T) {
	opts := DefaultOptions().WithMacros([]Macro{
		MustStringMacro("hello", "Hello ${name}!"),
		MustStringMacro("bye", "Goodbye ${name}!"),
	})
	got, err := RenderString("$call(hello) $arg(name)World$end $end", FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "Hello World!" {
		t.Fatalf("got %q", got)
	}
	got, err = RenderString("$call(bye) $arg(name)World$end $end", FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "Goodbye World!" {
		t.Fatalf("got %q", got)
	}
}

func TestUnknownMacro(t *testing.T) {
	_, err := RenderString("$call(unknown) $arg(x)y$end $end", FromMap(map[string]any{}), nil)
	var macroErr *NoSuchMacroError
	if !errors.As(err, &macroErr) {
		t.Fatalf("want NoSuchMacroError, got %v", err)
	}
	if macroErr.Name != "unknown" {
		t.Fatalf("unexpected macro name %q", macroErr.Name)
	}
	if err.Error() != "No such macro unknown" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestStarlarkMacro(t *testing.T) {
	m, err := NewStarlarkMacro("shout", "def shout(args):\n    return args['text'].upper() + '!'\n")
	if err != nil {
		t.Fatalf("loading macro: %v", err)
	}
	opts := DefaultOptions().WithMacro(m)
	got, err := RenderString("$call(shout) $arg(text)hello$end $end", FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "HELLO!" {
		t.Fatalf("got %q", got)
	}
}

func TestStarlarkMacroMissingFunction(t *testing.T) {
	_, err := NewStarlarkMacro("missing", "x = 1\n")
	if err == nil {
		t.Fatal("want error for script without the macro function")
	}
}

func TestStarlarkMacroNonStringResult(t *testing.T) {
	m, err := NewStarlarkMacro("bad", "def bad(args):\n    return 42\n")
	if err != nil {
		t.Fatalf("loading macro: %v", err)
	}
	if _, err := m.Apply(map[string]string{}); err == nil {
		t.Fatal("want error for non-string result")
	}
}
