package parser

import (
	"fmt"
)

// ParseProgram parses a whole source file: a declaration section, the
// keyword begin, and a statement section.
func ParseProgram(src string) (*Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: toks}

	decls := branch(SymDecls, 1)
	for !p.isKeyword("begin") {
		if p.peek().kind == tokEOF {
			return nil, fmt.Errorf("line %d: missing begin", p.peek().line)
		}
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls.Children = append(decls.Children, d)
	}
	begin := p.next()

	body := branch(SymBody, begin.line)
	for p.peek().kind != tokEOF {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body.Children = append(body.Children, st)
	}
	return branch(SymProgram, 1, decls, body), nil
}

func (p *parser) parseDecl() (*Node, error) {
	if p.isKeyword("import") {
		t := p.next()
		name, err := p.expect(tokIdent, "import alias")
		if err != nil {
			return nil, err
		}
		path, err := p.expect(tokString, "import path string")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi, "';' after import"); err != nil {
			return nil, err
		}
		return branch(SymImport, t.line, leaf(SymIdent, name.lit, name.line), leaf(SymString, path.lit, path.line)), nil
	}
	name, err := p.expect(tokIdent, "declaration name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, "':' after declaration name"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	d := branch(SymDecl, name.line, leaf(SymIdent, name.lit, name.line), typ)
	if p.peek().kind == tokAssign {
		p.next()
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		d.Children = append(d.Children, val)
	}
	if _, err := p.expect(tokSemi, "';' after declaration"); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *parser) parseType() (*Node, error) {
	t := p.next()
	if t.kind == tokLBracket {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket, "']' after array element type"); err != nil {
			return nil, err
		}
		return branch(SymArrayType, t.line, elem), nil
	}
	if t.kind != tokKeyword {
		return nil, fmt.Errorf("line %d: expected type, found %s", t.line, t)
	}
	switch t.lit {
	case "int", "float", "bool", "shape", "point", "color", "path", "polygon":
		return leaf(SymType, t.lit, t.line), nil
	}
	return nil, fmt.Errorf("line %d: expected type, found %s", t.line, t)
}

func (p *parser) parseBlock() (*Node, error) {
	open, err := p.expect(tokLBrace, "'{'")
	if err != nil {
		return nil, err
	}
	block := branch(SymBlock, open.line)
	for p.peek().kind != tokRBrace {
		if p.peek().kind == tokEOF {
			return nil, fmt.Errorf("line %d: unterminated block", open.line)
		}
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Children = append(block.Children, st)
	}
	p.next()
	return block, nil
}

func (p *parser) endStmt(what string) error {
	_, err := p.expect(tokSemi, "';' after "+what)
	return err
}

func (p *parser) parseStmt() (*Node, error) {
	t := p.peek()
	if t.kind == tokIdent {
		return p.parseAssign()
	}
	if t.kind != tokKeyword {
		return nil, fmt.Errorf("line %d: unexpected token %s at start of statement", t.line, t)
	}
	switch t.lit {
	case "let":
		p.next()
		name, err := p.expect(tokIdent, "variable name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, "':' after variable name"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokAssign, "'=' in let"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.endStmt("let"); err != nil {
			return nil, err
		}
		return branch(SymVarDecl, t.line, leaf(SymIdent, name.lit, name.line), typ, val), nil
	case "fn":
		return p.parseFunc()
	case "return":
		p.next()
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.endStmt("return"); err != nil {
			return nil, err
		}
		return branch(SymReturn, t.line, val), nil
	case "draw":
		p.next()
		shape, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n := branch(SymDraw, t.line, shape)
		if p.isKeyword("at") {
			p.next()
			at, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, at)
		}
		if err := p.endStmt("draw"); err != nil {
			return nil, err
		}
		return n, nil
	case "for":
		p.next()
		counter, err := p.expect(tokIdent, "loop counter")
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("in"); err != nil {
			return nil, err
		}
		from, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("to"); err != nil {
			return nil, err
		}
		to, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return branch(SymFor, t.line, leaf(SymIdent, counter.lit, counter.line), from, to, body), nil
	case "fork":
		return p.parseFork()
	}
	return nil, fmt.Errorf("line %d: unexpected keyword %q at start of statement", t.line, t.lit)
}

func (p *parser) parseAssign() (*Node, error) {
	name := p.next()
	target := leaf(SymIdent, name.lit, name.line)
	if p.peek().kind == tokLBracket {
		p.next()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket, "']' after index"); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokAssign, "'=' in element assignment"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.endStmt("assignment"); err != nil {
			return nil, err
		}
		return branch(SymArrayAsgn, name.line, target, idx, val), nil
	}
	if _, err := p.expect(tokAssign, "'=' in assignment"); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.endStmt("assignment"); err != nil {
		return nil, err
	}
	return branch(SymAssign, name.line, target, val), nil
}

func (p *parser) parseFunc() (*Node, error) {
	t := p.next()
	name, err := p.expect(tokIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen, "'(' after function name"); err != nil {
		return nil, err
	}
	params := branch(SymParams, t.line)
	for p.peek().kind != tokRParen {
		if len(params.Children) > 0 {
			if _, err := p.expect(tokComma, "',' between parameters"); err != nil {
				return nil, err
			}
		}
		pname, err := p.expect(tokIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, "':' after parameter name"); err != nil {
			return nil, err
		}
		ptype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params.Children = append(params.Children, branch(SymParam, pname.line, leaf(SymIdent, pname.lit, pname.line), ptype))
	}
	p.next()
	if _, err := p.expect(tokArrow, "'->' before return type"); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return branch(SymFuncDecl, t.line, leaf(SymIdent, name.lit, name.line), params, ret, body), nil
}

func (p *parser) parseFork() (*Node, error) {
	t := p.next()
	if _, err := p.expect(tokLBrace, "'{' after fork"); err != nil {
		return nil, err
	}
	fork := branch(SymFork, t.line)
	seenOtherwise := false
	for p.peek().kind != tokRBrace {
		open, err := p.expect(tokLParen, "'(' before fork guard")
		if err != nil {
			return nil, err
		}
		if seenOtherwise {
			return nil, fmt.Errorf("line %d: fork branch after otherwise", open.line)
		}
		if p.isKeyword("otherwise") {
			p.next()
			if _, err := p.expect(tokRParen, "')' after otherwise"); err != nil {
				return nil, err
			}
			if _, err := p.expect(tokArrow, "'->' after fork guard"); err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			fork.Children = append(fork.Children, branch(SymOtherwise, open.line, body))
			seenOtherwise = true
			continue
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')' after fork guard"); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokArrow, "'->' after fork guard"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fork.Children = append(fork.Children, branch(SymBranch, open.line, cond, body))
	}
	p.next()
	return fork, nil
}
