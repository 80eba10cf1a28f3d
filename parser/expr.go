package parser

import "fmt"

// ParseExpr parses a single expression, as used for command-line overrides.
func ParseExpr(raw string) (*Node, error) {
	toks, err := tokenize(raw)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: toks}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected token %s after expression", p.peek())
	}
	return expr, nil
}

type parser struct {
	tokens []token
	pos    int
	depth  int
}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{kind: tokEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) isKeyword(word string) bool {
	t := p.peek()
	return t.kind == tokKeyword && t.lit == word
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("line %d: expected %s, found %s", t.line, what, t)
	}
	return t, nil
}

func (p *parser) expectKeyword(word string) error {
	t := p.next()
	if t.kind != tokKeyword || t.lit != word {
		return fmt.Errorf("line %d: expected %q, found %s", t.line, word, t)
	}
	return nil
}

// parseExpr parses a path chain. a--b~~c folds right-nested; a trailing
// --* or ~~* closes the whole chain.
func (p *parser) parseExpr() (*Node, error) {
	p.depth++
	if p.depth > 256 {
		return nil, fmt.Errorf("line %d: expression nesting too deep", p.peek().line)
	}
	defer func() { p.depth-- }()

	first, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	operands := []*Node{first}
	var ops []token
	for p.peek().kind == tokPath {
		ops = append(ops, p.next())
		rhs, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		operands = append(operands, rhs)
	}
	n := operands[len(operands)-1]
	for i := len(ops) - 1; i >= 0; i-- {
		n = &Node{Symbol: SymPathOp, Value: ops[i].lit, HasValue: true, Children: []*Node{operands[i], n}, Line: ops[i].line}
	}
	if p.peek().kind == tokClose {
		op := p.next()
		n = &Node{Symbol: SymPolygonOp, Value: op.lit, HasValue: true, Children: []*Node{n}, Line: op.line}
	}
	return n, nil
}

func (p *parser) parseBinary(minPrec int) (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokOp {
			break
		}
		prec := opPrecedence(tok.lit)
		if prec == 0 || prec < minPrec {
			break
		}
		op := p.next()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &Node{Symbol: SymBinary, Value: op.lit, HasValue: true, Children: []*Node{left, right}, Line: op.line}
	}
	return left, nil
}

func opPrecedence(op string) int {
	switch op {
	case "||":
		return 1
	case "&&":
		return 2
	case "==", "!=":
		return 3
	case "<", "<=", ">", ">=":
		return 4
	case "+", "-":
		return 5
	case "*", "/", "%":
		return 6
	default:
		return 0
	}
}

func (p *parser) parseUnary() (*Node, error) {
	t := p.peek()
	if t.kind != tokOp {
		return p.parsePrimary()
	}
	switch t.lit {
	case "!":
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Symbol: SymUnary, Value: "!", HasValue: true, Children: []*Node{operand}, Line: t.line}, nil
	case "-":
		p.next()
		if lit := p.peek(); lit.kind == tokInt || lit.kind == tokFloat {
			p.next()
			sym := SymInt
			if lit.kind == tokFloat {
				sym = SymFloat
			}
			return leaf(sym, "-"+lit.lit, lit.line), nil
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := leaf(SymInt, "0", t.line)
		return &Node{Symbol: SymBinary, Value: "-", HasValue: true, Children: []*Node{zero, operand}, Line: t.line}, nil
	}
	return nil, fmt.Errorf("line %d: unexpected operator %s", t.line, t)
}

func (p *parser) parsePrimary() (*Node, error) {
	t := p.next()
	switch t.kind {
	case tokInt:
		return leaf(SymInt, t.lit, t.line), nil
	case tokFloat:
		return leaf(SymFloat, t.lit, t.line), nil
	case tokIdent:
		return p.parseIdentSuffix(t)
	case tokLParen:
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind == tokComma {
			p.next()
			second, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen, "')' after point"); err != nil {
				return nil, err
			}
			return branch(SymPoint, t.line, first, second), nil
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return first, nil
	case tokLBracket:
		arr := branch(SymArray, t.line)
		if p.peek().kind == tokRBracket {
			p.next()
			return arr, nil
		}
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			arr.Children = append(arr.Children, e)
			if p.peek().kind == tokComma {
				p.next()
				continue
			}
			break
		}
		if _, err := p.expect(tokRBracket, "']' after array elements"); err != nil {
			return nil, err
		}
		return arr, nil
	case tokKeyword:
		return p.parseKeywordExpr(t)
	}
	return nil, fmt.Errorf("line %d: unexpected token %s", t.line, t)
}

func (p *parser) parseKeywordExpr(t token) (*Node, error) {
	switch t.lit {
	case "true", "false":
		return leaf(SymBool, t.lit, t.line), nil
	case "rgba":
		if _, err := p.expect(tokLParen, "'(' after rgba"); err != nil {
			return nil, err
		}
		args, err := p.parseExprList(tokRParen)
		if err != nil {
			return nil, err
		}
		if len(args) != 4 {
			return nil, fmt.Errorf("line %d: rgba takes 4 components, got %d", t.line, len(args))
		}
		return branch(SymColor, t.line, args...), nil
	case "figure":
		if _, err := p.expect(tokLParen, "'(' after figure"); err != nil {
			return nil, err
		}
		path, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')' after figure path"); err != nil {
			return nil, err
		}
		named, err := p.parseNamedArgs()
		if err != nil {
			return nil, err
		}
		return branch(SymFigure, t.line, path, named), nil
	case "place":
		base, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		dir := p.next()
		if dir.kind != tokKeyword || !isDirection(dir.lit) {
			return nil, fmt.Errorf("line %d: expected placement direction, found %s", dir.line, dir)
		}
		second, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := branch(SymPlace, t.line, base, leaf(SymDirection, dir.lit, dir.line), second)
		if p.isKeyword("offset") {
			p.next()
			off, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, off)
		}
		return n, nil
	case "scale", "rotate":
		base, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("by"); err != nil {
			return nil, err
		}
		factor, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		sym := SymScale
		if t.lit == "rotate" {
			sym = SymRotate
		}
		return branch(sym, t.line, base, factor), nil
	}
	return nil, fmt.Errorf("line %d: unexpected keyword %q in expression", t.line, t.lit)
}

func isDirection(word string) bool {
	switch word {
	case "top", "bottom", "left", "right", "ontop", "center":
		return true
	}
	return false
}

func (p *parser) parseIdentSuffix(t token) (*Node, error) {
	switch p.peek().kind {
	case tokLParen:
		p.next()
		args, err := p.parseExprList(tokRParen)
		if err != nil {
			return nil, err
		}
		return branch(SymFCall, t.line, leaf(SymIdent, t.lit, t.line), branch(SymArgs, t.line, args...)), nil
	case tokLArgs:
		named, err := p.parseNamedArgs()
		if err != nil {
			return nil, err
		}
		return branch(SymSCall, t.line, leaf(SymIdent, t.lit, t.line), named), nil
	case tokLBracket:
		p.next()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket, "']' after index"); err != nil {
			return nil, err
		}
		return branch(SymIndex, t.line, leaf(SymIdent, t.lit, t.line), idx), nil
	case tokDot:
		p.next()
		field := p.next()
		if field.kind != tokIdent && field.kind != tokKeyword {
			return nil, fmt.Errorf("line %d: expected field name after '.', found %s", field.line, field)
		}
		return branch(SymMember, t.line, leaf(SymIdent, t.lit, t.line), leaf(SymIdent, field.lit, field.line)), nil
	}
	return leaf(SymIdent, t.lit, t.line), nil
}

// parseExprList parses comma separated expressions up to and including end.
func (p *parser) parseExprList(end tokenKind) ([]*Node, error) {
	var out []*Node
	if p.peek().kind == end {
		p.next()
		return out, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(end, "closing delimiter"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseNamedArgs() (*Node, error) {
	open, err := p.expect(tokLArgs, "'(|'")
	if err != nil {
		return nil, err
	}
	named := branch(SymNamedArgs, open.line)
	if p.peek().kind == tokRArgs {
		p.next()
		return named, nil
	}
	for {
		name, err := p.expect(tokIdent, "argument name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokAssign, "'=' after argument name"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		arg := leaf(SymNamedArg, name.lit, name.line)
		arg.Children = []*Node{val}
		named.Children = append(named.Children, arg)
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(tokRArgs, "'|)'"); err != nil {
		return nil, err
	}
	return named, nil
}
