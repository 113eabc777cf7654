package texttemplate

import (
	"bytes"
	"strconv"
	"strings"
)

// Render walks the template against the given root lookup and returns
// the output. A nil opts uses DefaultOptions. The template itself is
// never mutated; concurrent renders of the same Template are safe.
func Render(t *Template, lookup Lookup, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	var buf bytes.Buffer
	if err := renderNodes(&buf, t.Children, lookup, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderString parses src and renders it in one step.
func RenderString(src string, lookup Lookup, opts *Options) (string, error) {
	t, err := Parse(src)
	if err != nil {
		return "", err
	}
	return Render(t, lookup, opts)
}

// RenderMap renders with a plain map as the root context.
func RenderMap(t *Template, ctx map[string]any, opts *Options) (string, error) {
	return Render(t, FromMap(ctx), opts)
}

func renderNodes(buf *bytes.Buffer, nodes []Node, lookup Lookup, opts *Options) error {
	for _, n := range nodes {
		if err := renderNode(buf, n, lookup, opts); err != nil {
			return err
		}
	}
	return nil
}

func renderNode(buf *bytes.Buffer, n Node, lookup Lookup, opts *Options) error {
	switch t := n.(type) {
	case *TextNode:
		buf.WriteString(t.Text)
	case *CommentNode:
		// renders nothing
	case *Template:
		return renderNodes(buf, t.Children, lookup, opts)
	case *VariableNode:
		return renderVariable(buf, t, lookup, opts)
	case *IfTrueNode:
		v, err := lookup(t.Condition)
		if err != nil {
			return err
		}
		if isTruthy(v) {
			return renderNodes(buf, t.Body, lookup, opts)
		}
	case *IfFalseNode:
		v, err := lookup(t.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(v) {
			return renderNodes(buf, t.Body, lookup, opts)
		}
	case *IfEqNode:
		v, err := lookup(t.Variable)
		if err != nil {
			return err
		}
		if project(v) == t.Literal {
			return renderNodes(buf, t.Body, lookup, opts)
		}
	case *UnlessEqNode:
		v, err := lookup(t.Variable)
		if err != nil {
			return err
		}
		if project(v) != t.Literal {
			return renderNodes(buf, t.Body, lookup, opts)
		}
	case *GreaterThanNode:
		return renderComparison(buf, t.Variable, t.Body, lookup, opts, func(n int) bool { return n > t.Literal })
	case *LessThanNode:
		return renderComparison(buf, t.Variable, t.Body, lookup, opts, func(n int) bool { return n < t.Literal })
	case *GreaterThanOrEqNode:
		return renderComparison(buf, t.Variable, t.Body, lookup, opts, func(n int) bool { return n >= t.Literal })
	case *LessThanOrEqNode:
		return renderComparison(buf, t.Variable, t.Body, lookup, opts, func(n int) bool { return n <= t.Literal })
	case *IfHasManyNode:
		v, err := lookup(t.Iterable)
		if err != nil {
			return err
		}
		if hasMany(v) {
			return renderNodes(buf, t.Body, lookup, opts)
		}
	case *UnlessHasManyNode:
		v, err := lookup(t.Iterable)
		if err != nil {
			return err
		}
		if hasAtMostOne(v) {
			return renderNodes(buf, t.Body, lookup, opts)
		}
	case *LengthNode:
		v, err := lookup(t.Iterable)
		if err != nil {
			return err
		}
		buf.WriteString(strconv.Itoa(valueLength(v)))
	case *IndexNode:
		return renderIndex(buf, t, lookup)
	case *LoopNode:
		return renderLoop(buf, t, lookup, opts)
	case *FirstNode:
		v, err := lookup(t.Iterable)
		if err != nil {
			return err
		}
		if seq, ok := asSequence(v); ok && len(seq) > 0 {
			return renderNodes(buf, t.Body, derivedContext(seq[0], lookup), opts)
		}
	case *LastNode:
		v, err := lookup(t.Iterable)
		if err != nil {
			return err
		}
		if seq, ok := asSequence(v); ok && len(seq) > 0 {
			return renderNodes(buf, t.Body, derivedContext(seq[len(seq)-1], lookup), opts)
		}
	case *IncludeNode:
		return renderInclude(buf, t, lookup, opts)
	case *MacroNode:
		return renderMacro(buf, t, lookup, opts)
	}
	return nil
}

func renderVariable(buf *bytes.Buffer, n *VariableNode, lookup Lookup, opts *Options) error {
	v, err := lookup(n.Name)
	if err != nil {
		return err
	}
	if isNull(v) {
		buf.WriteString(opts.OnVariableNotFound(n.Name, lookup))
		return nil
	}
	if n.Format != "" {
		s, err := opts.Formatters.Format(v.Unwrap(), n.Format)
		if err != nil {
			return err
		}
		buf.WriteString(s)
		return nil
	}
	buf.WriteString(v.String())
	return nil
}

func renderComparison(buf *bytes.Buffer, variable string, body []Node, lookup Lookup, opts *Options, cmp func(int) bool) error {
	v, err := lookup(variable)
	if err != nil {
		return err
	}
	if n, ok := asInt(v); ok && cmp(n) {
		return renderNodes(buf, body, lookup, opts)
	}
	return nil
}

// renderIndex resolves the index argument, which is either a literal or
// a ${NAME} reference into the current context, and emits the addressed
// element. Out-of-range or unparseable indexes emit nothing.
func renderIndex(buf *bytes.Buffer, n *IndexNode, lookup Lookup) error {
	v, err := lookup(n.Variable)
	if err != nil {
		return err
	}
	if n.Index == "" {
		return nil
	}
	index := n.Index
	if strings.HasPrefix(index, "${") && strings.HasSuffix(index, "}") {
		kv, err := lookup(index[2 : len(index)-1])
		if err != nil {
			return err
		}
		index = project(kv)
	}
	switch t := v.(type) {
	case ListValue:
		i, err := strconv.Atoi(index)
		if err != nil || i < 0 || i >= len(t) {
			return nil
		}
		buf.WriteString(t[i].String())
	case *MapValue:
		if el := t.Get(index); el != nil {
			buf.WriteString(el.String())
		}
	}
	return nil
}

func renderLoop(buf *bytes.Buffer, n *LoopNode, lookup Lookup, opts *Options) error {
	v, err := lookup(n.Iterable)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case ListValue:
		total := len(t)
		for i, item := range t {
			if err := renderNodes(buf, n.Body, derivedLoopContext(item, lookup, i, total), opts); err != nil {
				return err
			}
		}
	case *MapValue:
		total := t.Len()
		for i, k := range t.Keys() {
			if err := renderNodes(buf, n.Body, derivedEntryContext(k, t.Get(k), lookup, i, total), opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderInclude(buf *bytes.Buffer, n *IncludeNode, lookup Lookup, opts *Options) error {
	if opts.LoadInclude == nil {
		return &IncludeError{Path: n.Path, Err: ErrIncludeNotConfigured}
	}
	content, err := opts.LoadInclude(n.Path)
	if err != nil {
		return &IncludeError{Path: n.Path, Err: err}
	}
	sub, err := Parse(content)
	if err != nil {
		return &IncludeError{Path: n.Path, Err: err}
	}
	// Included templates participate in the caller's scope chain.
	return renderNodes(buf, sub.Children, lookup, opts)
}

func renderMacro(buf *bytes.Buffer, n *MacroNode, lookup Lookup, opts *Options) error {
	args := make(map[string]string, len(n.Args))
	for _, arg := range n.Args {
		var body bytes.Buffer
		if err := renderNodes(&body, arg.Body, lookup, opts); err != nil {
			return err
		}
		args[arg.Name] = body.String()
	}
	m, ok := opts.Macros[n.Name]
	if !ok {
		return &NoSuchMacroError{Name: n.Name}
	}
	out, err := m.Apply(args)
	if err != nil {
		return err
	}
	buf.WriteString(out)
	return nil
}
