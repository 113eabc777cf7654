package texttemplate

import (
	"bytes"
	"fmt"
)

type Visitor interface {
	Visit(n Node) error
}

// Walk visits n and its body nodes depth-first.
func Walk(v Visitor, n Node) error {
	if err := v.Visit(n); err != nil {
		return err
	}
	for _, c := range children(n) {
		if err := Walk(v, c); err != nil {
			return err
		}
	}
	return nil
}

func children(n Node) []Node {
	switch t := n.(type) {
	case *Template:
		return t.Children
	case *IfTrueNode:
		return t.Body
	case *IfFalseNode:
		return t.Body
	case *IfEqNode:
		return t.Body
	case *UnlessEqNode:
		return t.Body
	case *GreaterThanNode:
		return t.Body
	case *LessThanNode:
		return t.Body
	case *GreaterThanOrEqNode:
		return t.Body
	case *LessThanOrEqNode:
		return t.Body
	case *IfHasManyNode:
		return t.Body
	case *UnlessHasManyNode:
		return t.Body
	case *LoopNode:
		return t.Body
	case *FirstNode:
		return t.Body
	case *LastNode:
		return t.Body
	case *MacroNode:
		var out []Node
		for _, a := range t.Args {
			out = append(out, a.Body...)
		}
		return out
	}
	return nil
}

// Pretty returns a line-oriented string representation of the AST.
func Pretty(t *Template) string {
	var buf bytes.Buffer
	ppNode(&buf, 0, t)
	return buf.String()
}

func ppNode(buf *bytes.Buffer, indent int, n Node) {
	ind := func() {
		for i := 0; i < indent; i++ {
			buf.WriteByte(' ')
		}
	}
	ppBody := func(body []Node) {
		for _, c := range body {
			ppNode(buf, indent+2, c)
		}
	}
	switch t := n.(type) {
	case *Template:
		ind()
		buf.WriteString("Template\n")
		ppBody(t.Children)
	case *TextNode:
		ind()
		fmt.Fprintf(buf, "Text(%q)\n", t.Text)
	case *VariableNode:
		ind()
		if t.Format != "" {
			fmt.Fprintf(buf, "Variable(%q | %q)\n", t.Name, t.Format)
		} else {
			fmt.Fprintf(buf, "Variable(%q)\n", t.Name)
		}
	case *CommentNode:
		ind()
		buf.WriteString("Comment\n")
	case *IfTrueNode:
		ind()
		fmt.Fprintf(buf, "If(%q)\n", t.Condition)
		ppBody(t.Body)
	case *IfFalseNode:
		ind()
		fmt.Fprintf(buf, "Unless(%q)\n", t.Condition)
		ppBody(t.Body)
	case *IfEqNode:
		ind()
		fmt.Fprintf(buf, "IfEq(%q == %q)\n", t.Variable, t.Literal)
		ppBody(t.Body)
	case *UnlessEqNode:
		ind()
		fmt.Fprintf(buf, "UnlessEq(%q != %q)\n", t.Variable, t.Literal)
		ppBody(t.Body)
	case *GreaterThanNode:
		ind()
		fmt.Fprintf(buf, "GreaterThan(%q > %d)\n", t.Variable, t.Literal)
		ppBody(t.Body)
	case *LessThanNode:
		ind()
		fmt.Fprintf(buf, "LessThan(%q < %d)\n", t.Variable, t.Literal)
		ppBody(t.Body)
	case *GreaterThanOrEqNode:
		ind()
		fmt.Fprintf(buf, "GreaterThanOrEq(%q >= %d)\n", t.Variable, t.Literal)
		ppBody(t.Body)
	case *LessThanOrEqNode:
		ind()
		fmt.Fprintf(buf, "LessThanOrEq(%q <= %d)\n", t.Variable, t.Literal)
		ppBody(t.Body)
	case *IfHasManyNode:
		ind()
		fmt.Fprintf(buf, "IfHasMany(%q)\n", t.Iterable)
		ppBody(t.Body)
	case *UnlessHasManyNode:
		ind()
		fmt.Fprintf(buf, "UnlessHasMany(%q)\n", t.Iterable)
		ppBody(t.Body)
	case *LoopNode:
		ind()
		fmt.Fprintf(buf, "Each(%q)\n", t.Iterable)
		ppBody(t.Body)
	case *FirstNode:
		ind()
		fmt.Fprintf(buf, "First(%q)\n", t.Iterable)
		ppBody(t.Body)
	case *LastNode:
		ind()
		fmt.Fprintf(buf, "Last(%q)\n", t.Iterable)
		ppBody(t.Body)
	case *LengthNode:
		ind()
		fmt.Fprintf(buf, "Length(%q)\n", t.Iterable)
	case *IndexNode:
		ind()
		fmt.Fprintf(buf, "Index(%q, %q)\n", t.Variable, t.Index)
	case *IncludeNode:
		ind()
		fmt.Fprintf(buf, "Include(%q)\n", t.Path)
	case *MacroNode:
		ind()
		fmt.Fprintf(buf, "Call(%q)\n", t.Name)
		for _, a := range t.Args {
			for i := 0; i < indent+2; i++ {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "Arg(%q)\n", a.Name)
			for _, c := range a.Body {
				ppNode(buf, indent+4, c)
			}
		}
	}
}
