package parser

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokFloat
	tokString
	tokIdent
	tokKeyword
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokLArgs // (|
	tokRArgs // |)
	tokComma
	tokSemi
	tokColon
	tokDot
	tokArrow
	tokAssign
	tokOp
	tokPath  // -- ~~
	tokClose // --* ~~*
)

type token struct {
	kind tokenKind
	lit  string
	line int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.lit)
}

var keywords = map[string]struct{}{
	"begin": {}, "import": {}, "let": {}, "fn": {}, "return": {}, "draw": {}, "at": {},
	"for": {}, "in": {}, "to": {}, "fork": {}, "otherwise": {}, "true": {}, "false": {},
	"rgba": {}, "figure": {}, "place": {}, "offset": {}, "scale": {}, "rotate": {}, "by": {},
	"int": {}, "float": {}, "bool": {}, "shape": {}, "point": {}, "color": {}, "path": {}, "polygon": {},
	"top": {}, "bottom": {}, "left": {}, "right": {}, "ontop": {}, "center": {},
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// symbols are matched longest first
var punct = []struct {
	lit  string
	kind tokenKind
}{
	{"--*", tokClose}, {"~~*", tokClose},
	{"--", tokPath}, {"~~", tokPath},
	{"(|", tokLArgs}, {"|)", tokRArgs},
	{"->", tokArrow},
	{"==", tokOp}, {"!=", tokOp}, {"<=", tokOp}, {">=", tokOp}, {"&&", tokOp}, {"||", tokOp},
	{"+", tokOp}, {"-", tokOp}, {"*", tokOp}, {"/", tokOp}, {"%", tokOp},
	{"<", tokOp}, {">", tokOp}, {"!", tokOp},
	{"=", tokAssign},
	{"(", tokLParen}, {")", tokRParen},
	{"[", tokLBracket}, {"]", tokRBracket},
	{"{", tokLBrace}, {"}", tokRBrace},
	{",", tokComma}, {";", tokSemi}, {":", tokColon}, {".", tokDot},
}

func tokenize(raw string) ([]token, error) {
	toks := make([]token, 0, len(raw)/3)
	r := []rune(raw)
	line := 1
	for i := 0; i < len(r); {
		ch := r[i]
		if ch == '\n' {
			line++
			i++
			continue
		}
		if unicode.IsSpace(ch) {
			i++
			continue
		}
		if ch == '/' && i+1 < len(r) && r[i+1] == '/' {
			for i < len(r) && r[i] != '\n' {
				i++
			}
			continue
		}
		if unicode.IsDigit(ch) {
			j := i + 1
			for j < len(r) && unicode.IsDigit(r[j]) {
				j++
			}
			kind := tokInt
			if j+1 < len(r) && r[j] == '.' && unicode.IsDigit(r[j+1]) {
				kind = tokFloat
				j += 2
				for j < len(r) && unicode.IsDigit(r[j]) {
					j++
				}
			}
			toks = append(toks, token{kind: kind, lit: string(r[i:j]), line: line})
			i = j
			continue
		}
		if isIdentStart(ch) {
			j := i + 1
			for j < len(r) && isIdentPart(r[j]) {
				j++
			}
			word := string(r[i:j])
			kind := tokIdent
			if _, ok := keywords[word]; ok {
				kind = tokKeyword
			}
			toks = append(toks, token{kind: kind, lit: word, line: line})
			i = j
			continue
		}
		if ch == '"' {
			j := i + 1
			escape := false
			for j < len(r) && r[j] != '\n' {
				if escape {
					escape = false
					j++
					continue
				}
				if r[j] == '\\' {
					escape = true
					j++
					continue
				}
				if r[j] == '"' {
					break
				}
				j++
			}
			if j >= len(r) || r[j] != '"' {
				return nil, fmt.Errorf("line %d: unterminated string", line)
			}
			v, ok := unquoteString(string(r[i : j+1]))
			if !ok {
				return nil, fmt.Errorf("line %d: invalid string literal", line)
			}
			toks = append(toks, token{kind: tokString, lit: v, line: line})
			i = j + 1
			continue
		}
		matched := false
		rest := string(r[i:min(i+3, len(r))])
		for _, p := range punct {
			if strings.HasPrefix(rest, p.lit) {
				toks = append(toks, token{kind: p.kind, lit: p.lit, line: line})
				i += len([]rune(p.lit))
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("line %d: unexpected character %q", line, ch)
		}
	}
	toks = append(toks, token{kind: tokEOF, line: line})
	return toks, nil
}
