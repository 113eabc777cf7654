package texttemplate

import (
	"strconv"
	"strings"
)

// Parse parses template source into an immutable Template. Errors carry
// the zero-based offset at which the problem was detected; their messages
// are stable and part of the engine's contract.
func Parse(src string) (*Template, error) {
	p := &parser{src: src}
	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	return &Template{Children: nodes}, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) match(expected string) bool {
	if strings.HasPrefix(p.src[p.pos:], expected) {
		p.pos += len(expected)
		return true
	}
	return false
}

func (p *parser) errorf(message string) error {
	return &ParseError{Message: message, Position: p.pos}
}

// parseUntil consumes up to but not including the terminator.
func (p *parser) parseUntil(terminator byte) string {
	start := p.pos
	for !p.atEnd() && p.peek() != terminator {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// trimWhitespace skips whitespace but stops immediately after consuming
// the first newline. Invoked after every block-directive header and every
// $end so a directive written on its own line does not leak its trailing
// newline into the output; this is what keeps Markdown tables intact.
func (p *parser) trimWhitespace() {
	for !p.atEnd() {
		c := p.peek()
		if !isSpace(c) {
			return
		}
		p.pos++
		if c == '\n' {
			return
		}
	}
}

// skipWhitespace skips all whitespace, newlines included. Used between
// the argument blocks of a macro call.
func (p *parser) skipWhitespace() {
	for !p.atEnd() && isSpace(p.peek()) {
		p.pos++
	}
}

// parseNodes parses a node sequence, stopping at $end or end of input.
func (p *parser) parseNodes() ([]Node, error) {
	var nodes []Node
	for !p.atEnd() && !strings.HasPrefix(p.src[p.pos:], "$end") {
		if p.peek() != '$' {
			nodes = append(nodes, p.parseText())
			continue
		}
		n, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *parser) parseText() Node {
	start := p.pos
	for !p.atEnd() && p.peek() != '$' {
		p.pos++
	}
	return &TextNode{Text: p.src[start:p.pos]}
}

func (p *parser) parseDirective() (Node, error) {
	switch {
	case p.match("$$"):
		return &TextNode{Text: "$"}, nil
	case p.match("${"):
		return p.parseVariable()
	case p.match("$if_eq("):
		v, lit, body, err := p.parseEqHeader()
		if err != nil {
			return nil, err
		}
		return &IfEqNode{Variable: v, Literal: lit, Body: body}, nil
	case p.match("$unless_eq("):
		v, lit, body, err := p.parseEqHeader()
		if err != nil {
			return nil, err
		}
		return &UnlessEqNode{Variable: v, Literal: lit, Body: body}, nil
	case p.match("$if_has_many("):
		arg, body, err := p.parseNameHeader()
		if err != nil {
			return nil, err
		}
		return &IfHasManyNode{Iterable: arg, Body: body}, nil
	case p.match("$unless_has_many("):
		arg, body, err := p.parseNameHeader()
		if err != nil {
			return nil, err
		}
		return &UnlessHasManyNode{Iterable: arg, Body: body}, nil
	case p.match("$greater_than_or_eq("):
		v, lit, body, err := p.parseIntHeader()
		if err != nil {
			return nil, err
		}
		return &GreaterThanOrEqNode{Variable: v, Literal: lit, Body: body}, nil
	case p.match("$less_than_or_eq("):
		v, lit, body, err := p.parseIntHeader()
		if err != nil {
			return nil, err
		}
		return &LessThanOrEqNode{Variable: v, Literal: lit, Body: body}, nil
	case p.match("$greater_than("):
		v, lit, body, err := p.parseIntHeader()
		if err != nil {
			return nil, err
		}
		return &GreaterThanNode{Variable: v, Literal: lit, Body: body}, nil
	case p.match("$less_than("):
		v, lit, body, err := p.parseIntHeader()
		if err != nil {
			return nil, err
		}
		return &LessThanNode{Variable: v, Literal: lit, Body: body}, nil
	case p.match("$if("):
		arg, body, err := p.parseNameHeader()
		if err != nil {
			return nil, err
		}
		return &IfTrueNode{Condition: arg, Body: body}, nil
	case p.match("$unless("):
		arg, body, err := p.parseNameHeader()
		if err != nil {
			return nil, err
		}
		return &IfFalseNode{Condition: arg, Body: body}, nil
	case p.match("$each("):
		arg, body, err := p.parseNameHeader()
		if err != nil {
			return nil, err
		}
		return &LoopNode{Iterable: arg, Body: body}, nil
	case p.match("$first("):
		arg, body, err := p.parseNameHeader()
		if err != nil {
			return nil, err
		}
		return &FirstNode{Iterable: arg, Body: body}, nil
	case p.match("$last("):
		arg, body, err := p.parseNameHeader()
		if err != nil {
			return nil, err
		}
		return &LastNode{Iterable: arg, Body: body}, nil
	case p.match("$--"):
		return p.parseComment()
	case p.match("$call("):
		return p.parseMacro()
	case p.match("$include("):
		return p.parseInclude()
	case p.match("$length("):
		return p.parseLength()
	case p.match("$index("):
		return p.parseIndex()
	default:
		return nil, p.errorf("Unknown directive")
	}
}

// parseVariable parses the remainder of ${name} or ${name|format}. The
// name is taken verbatim; the format is trimmed and may be empty.
func (p *parser) parseVariable() (Node, error) {
	nameStart := p.pos
	for !p.atEnd() && p.peek() != '}' && p.peek() != '|' {
		p.pos++
	}
	name := p.src[nameStart:p.pos]
	format := ""
	if !p.atEnd() && p.peek() == '|' {
		p.pos++
		formatStart := p.pos
		for !p.atEnd() && p.peek() != '}' {
			p.pos++
		}
		format = strings.TrimSpace(p.src[formatStart:p.pos])
	}
	if !p.match("}") {
		return nil, p.errorf("Expected '}'")
	}
	return &VariableNode{Name: name, Format: format}, nil
}

// parseNameHeader finishes a single-argument block directive: the header
// argument, the closing paren, the post-terminator trim and the body.
func (p *parser) parseNameHeader() (string, []Node, error) {
	arg := p.parseUntil(')')
	if !p.match(")") {
		return "", nil, p.errorf("Expected ')'")
	}
	p.trimWhitespace()
	body, err := p.parseBlock()
	if err != nil {
		return "", nil, err
	}
	return arg, body, nil
}

// parseEqHeader finishes $if_eq/$unless_eq: name, comma, quoted literal.
func (p *parser) parseEqHeader() (string, string, []Node, error) {
	variable := p.parseUntil(',')
	if !p.match(",") {
		return "", "", nil, p.errorf("Expected ','")
	}
	literal, err := p.parseStringLiteral()
	if err != nil {
		return "", "", nil, err
	}
	if !p.match(")") {
		return "", "", nil, p.errorf("Expected ')'")
	}
	p.trimWhitespace()
	body, err := p.parseBlock()
	if err != nil {
		return "", "", nil, err
	}
	return variable, literal, body, nil
}

// parseIntHeader finishes the integer comparison directives.
func (p *parser) parseIntHeader() (string, int, []Node, error) {
	variable := p.parseUntil(',')
	if !p.match(",") {
		return "", 0, nil, p.errorf("Expected ','")
	}
	literal, err := p.parseIntegerLiteral()
	if err != nil {
		return "", 0, nil, err
	}
	if !p.match(")") {
		return "", 0, nil, p.errorf("Expected ')'")
	}
	p.trimWhitespace()
	body, err := p.parseBlock()
	if err != nil {
		return "", 0, nil, err
	}
	return variable, literal, body, nil
}

// parseStringLiteral parses a double-quoted literal. No escapes: content
// runs to the next quote.
func (p *parser) parseStringLiteral() (string, error) {
	p.trimWhitespace()
	if !p.match("\"") {
		return "", p.errorf("Expected '\"'")
	}
	start := p.pos
	for !p.atEnd() && p.peek() != '"' {
		p.pos++
	}
	literal := p.src[start:p.pos]
	if !p.match("\"") {
		return "", p.errorf("Expected '\"'")
	}
	return literal, nil
}

// parseIntegerLiteral parses a bare decimal literal: digits only, no
// sign, no base prefix.
func (p *parser) parseIntegerLiteral() (int, error) {
	p.trimWhitespace()
	start := p.pos
	for !p.atEnd() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("Expected integer literal")
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("Expected integer literal")
	}
	return n, nil
}

func (p *parser) parseComment() (Node, error) {
	for !p.atEnd() && !strings.HasPrefix(p.src[p.pos:], "--$") {
		p.pos++
	}
	if !p.match("--$") {
		return nil, p.errorf("Expected '--$' to close comment")
	}
	p.trimWhitespace()
	return &CommentNode{}, nil
}

func (p *parser) parseInclude() (Node, error) {
	path := p.parseUntil(')')
	if !p.match(")") {
		return nil, p.errorf("Expected ')'")
	}
	p.trimWhitespace()
	return &IncludeNode{Path: path}, nil
}

// parseLength finishes $length(...). Leaf directive: no post-terminator
// trim, so surrounding whitespace is preserved.
func (p *parser) parseLength() (Node, error) {
	name := p.parseUntil(')')
	if !p.match(")") {
		return nil, p.errorf("Expected ')'")
	}
	return &LengthNode{Iterable: name}, nil
}

// parseIndex finishes $index(variable, index). Also a leaf: no trim.
func (p *parser) parseIndex() (Node, error) {
	variable := p.parseUntil(',')
	if !p.match(",") {
		return nil, p.errorf("Expected ','")
	}
	index := strings.TrimSpace(p.parseUntil(')'))
	if !p.match(")") {
		return nil, p.errorf("Expected ')'")
	}
	return &IndexNode{Variable: variable, Index: index}, nil
}

func (p *parser) parseMacro() (Node, error) {
	name := p.parseUntil(')')
	if !p.match(")") {
		return nil, p.errorf("Expected ')'")
	}
	p.trimWhitespace()
	args, err := p.parseMacroArgs()
	if err != nil {
		return nil, err
	}
	return &MacroNode{Name: name, Args: args}, nil
}

// parseMacroArgs parses the $arg blocks of a macro call. Between blocks
// all whitespace is skipped, newlines included.
func (p *parser) parseMacroArgs() ([]MacroArgument, error) {
	var args []MacroArgument
	p.skipWhitespace()
	for !p.atEnd() && !strings.HasPrefix(p.src[p.pos:], "$end") {
		arg, err := p.parseMacroArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipWhitespace()
	}
	if !p.match("$end") {
		return nil, p.errorf("Expected '$end'")
	}
	p.trimWhitespace()
	return args, nil
}

func (p *parser) parseMacroArg() (MacroArgument, error) {
	p.match("$arg(")
	name := p.parseUntil(')')
	if !p.match(")") {
		return MacroArgument{}, p.errorf("Expected ')'")
	}
	p.trimWhitespace()
	body, err := p.parseBlock()
	if err != nil {
		return MacroArgument{}, err
	}
	return MacroArgument{Name: name, Body: body}, nil
}

// parseBlock parses a body up to its closing $end, consuming it and the
// following trim.
func (p *parser) parseBlock() ([]Node, error) {
	children, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	if !p.match("$end") {
		return nil, p.errorf("Expected '$end'")
	}
	p.trimWhitespace()
	return children, nil
}
