// parse.go — lexer and recursive-descent parser for the constraint
// expression grammar. The grammar is tiny on purpose: identifiers,
// quoted strings, call/index argument lists. No evaluation happens here.

package typeexpr

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// node is the parsed form of a constraint expression.
type node interface{ isNode() }

// identNode is a bare name: "int", "CustomType", "callable".
type identNode struct{ name string }

// callNode is a constructor application in either spelling:
// "Optional[int]" or "Optional(int)".
type callNode struct {
	callee string
	args   []node
}

// stringNode is a quoted literal, consumed only by Typename.
type stringNode struct{ value string }

func (identNode) isNode()  {}
func (callNode) isNode()   {}
func (stringNode) isNode() {}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	c := l.src[l.pos]
	switch c {
	case '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket, text: "[", pos: start}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket, text: "]", pos: start}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	case '\'', '"':
		quote := c
		l.pos++
		end := strings.IndexByte(l.src[l.pos:], quote)
		if end < 0 {
			return token{}, fmt.Errorf("%w: unterminated string at offset %d", ErrSyntax, start)
		}
		text := l.src[l.pos : l.pos+end]
		l.pos += end + 1
		return token{kind: tokString, text: text, pos: start}, nil
	}
	if isIdentStart(rune(c)) {
		for l.pos < len(l.src) && isIdentPart(rune(l.src[l.pos])) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	}
	return token{}, fmt.Errorf("%w: unexpected character %q at offset %d", ErrSyntax, c, start)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parse consumes the whole text as exactly one expression.
func parse(text string) (node, error) {
	p := &parser{lex: &lexer{src: text}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: trailing input %q at offset %d", ErrSyntax, p.tok.text, p.tok.pos)
	}
	return n, nil
}

func (p *parser) expr() (node, error) {
	switch p.tok.kind {
	case tokString:
		n := stringNode{value: p.tok.text}
		return n, p.advance()
	case tokIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		var closing tokenKind
		switch p.tok.kind {
		case tokLParen:
			closing = tokRParen
		case tokLBracket:
			closing = tokRBracket
		default:
			return identNode{name: name}, nil
		}
		args, err := p.argList(closing)
		if err != nil {
			return nil, err
		}
		return callNode{callee: name, args: args}, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, p.tok.text, p.tok.pos)
	}
}

// argList parses "( a, b )" or "[ a, b ]" with the opening token current.
func (p *parser) argList(closing tokenKind) ([]node, error) {
	if err := p.advance(); err != nil { // consume the opener
		return nil, err
	}
	var args []node
	if p.tok.kind == closing {
		return args, p.advance()
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case closing:
			return args, p.advance()
		default:
			return nil, fmt.Errorf("%w: expected ',' or closing bracket at offset %d", ErrSyntax, p.tok.pos)
		}
	}
}
