// Package texttemplate implements a small text templating engine aimed
// at document generation: variable interpolation with typed formatting,
// conditionals, loops over sequences and maps, includes and macros.
// Templates parse into an immutable tree that may be cached and rendered
// concurrently against different contexts.
package texttemplate

// Node is any AST node in a parsed template.
type Node interface {
	node()
}

// TextNode represents literal text between directives.
type TextNode struct {
	Text string
}

func (*TextNode) node() {}

// VariableNode represents a placeholder: ${name} or ${name|format}.
// Format is empty when no format was given.
type VariableNode struct {
	Name   string
	Format string
}

func (*VariableNode) node() {}

// CommentNode represents $-- ... --$. It renders nothing.
type CommentNode struct{}

func (*CommentNode) node() {}

// IfTrueNode emits its body when the condition value is truthy,
// i.e. non-nil and not the empty string.
type IfTrueNode struct {
	Condition string
	Body      []Node
}

func (*IfTrueNode) node() {}

// IfFalseNode is $unless: the complement of IfTrueNode.
type IfFalseNode struct {
	Condition string
	Body      []Node
}

func (*IfFalseNode) node() {}

// IfEqNode emits its body when the string projection of the variable
// equals the literal.
type IfEqNode struct {
	Variable string
	Literal  string
	Body     []Node
}

func (*IfEqNode) node() {}

// UnlessEqNode is the complement of IfEqNode.
type UnlessEqNode struct {
	Variable string
	Literal  string
	Body     []Node
}

func (*UnlessEqNode) node() {}

// GreaterThanNode emits its body when the variable parses as an integer
// strictly greater than the literal.
type GreaterThanNode struct {
	Variable string
	Literal  int
	Body     []Node
}

func (*GreaterThanNode) node() {}

// LessThanNode is the strict less-than counterpart.
type LessThanNode struct {
	Variable string
	Literal  int
	Body     []Node
}

func (*LessThanNode) node() {}

// GreaterThanOrEqNode is the inclusive greater-than comparison.
type GreaterThanOrEqNode struct {
	Variable string
	Literal  int
	Body     []Node
}

func (*GreaterThanOrEqNode) node() {}

// LessThanOrEqNode is the inclusive less-than comparison.
type LessThanOrEqNode struct {
	Variable string
	Literal  int
	Body     []Node
}

func (*LessThanOrEqNode) node() {}

// IfHasManyNode emits its body when the value is a sequence with at
// least two elements.
type IfHasManyNode struct {
	Iterable string
	Body     []Node
}

func (*IfHasManyNode) node() {}

// UnlessHasManyNode emits its body when the value is nil or a sequence
// with at most one element.
type UnlessHasManyNode struct {
	Iterable string
	Body     []Node
}

func (*UnlessHasManyNode) node() {}

// LoopNode is $each: renders the body once per element with it, key,
// _index, _first and _last bound in a derived context.
type LoopNode struct {
	Iterable string
	Body     []Node
}

func (*LoopNode) node() {}

// FirstNode renders its body once with the first element as it.
type FirstNode struct {
	Iterable string
	Body     []Node
}

func (*FirstNode) node() {}

// LastNode renders its body once with the last element as it.
type LastNode struct {
	Iterable string
	Body     []Node
}

func (*LastNode) node() {}

// LengthNode emits the element count of the named value.
type LengthNode struct {
	Iterable string
}

func (*LengthNode) node() {}

// IndexNode emits collection[i] or map[key]. Index may have the form
// ${NAME}, in which case the key is resolved against the current context.
// An empty Index emits nothing.
type IndexNode struct {
	Variable string
	Index    string
}

func (*IndexNode) node() {}

// IncludeNode loads a sub-template through the configured loader and
// renders it inline in the current context.
type IncludeNode struct {
	Path string
}

func (*IncludeNode) node() {}

// MacroArgument is one $arg(name) ... $end block of a macro call.
type MacroArgument struct {
	Name string
	Body []Node
}

// MacroNode is $call: renders each argument body to a string and hands
// the resulting map to the named macro.
type MacroNode struct {
	Name string
	Args []MacroArgument
}

func (*MacroNode) node() {}

// Template is the root node produced by Parse. It is immutable and safe
// to share across concurrent renders.
type Template struct {
	Children []Node
}

func (*Template) node() {}
