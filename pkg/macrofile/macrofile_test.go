package macrofile

import (
	"strings"
	"testing"

	"github.com/callcc/texttemplate/pkg/texttemplate"
)

func TestParseMacroFile(t *testing.T) {
	data := `
macros:
  - name: greeting
    template: "Hello ${name}!"
  - name: shout
    script: |
      def shout(args):
          return args['text'].upper()
`
	macros, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(macros) != 2 {
		t.Fatalf("want 2 macros, got %d", len(macros))
	}

	opts := texttemplate.DefaultOptions().WithMacros(macros)
	got, err := texttemplate.RenderString("$call(greeting) $arg(name)World$end $end", texttemplate.FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "Hello World!" {
		t.Fatalf("got %q", got)
	}

	got, err = texttemplate.RenderString("$call(shout) $arg(text)hey$end $end", texttemplate.FromMap(map[string]any{}), opts)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "HEY" {
		t.Fatalf("got %q", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"missing name", "macros:\n  - template: x\n", "must not be empty"},
		{"both bodies", "macros:\n  - name: a\n    template: x\n    script: y\n", "exactly one"},
		{"neither body", "macros:\n  - name: a\n", "exactly one"},
		{"duplicate names", "macros:\n  - name: a\n    template: x\n  - name: a\n    template: y\n", "duplicate"},
		{"unknown field", "macros:\n  - name: a\n    template: x\n    extra: y\n", "field extra not found"},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.data)); err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestParseRejectsBadMacroTemplate(t *testing.T) {
	_, err := Parse([]byte("macros:\n  - name: broken\n    template: \"$if(x) no end\"\n"))
	if err == nil {
		t.Fatal("want error for unparseable macro template")
	}
}
