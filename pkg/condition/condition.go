// Package condition compiles small boolean expressions over form values,
// used to switch fields on and off while a form is being edited.
//
// Supported syntax:
//
//	enabled                      truthy check
//	role == "admin"              comparison with string, number, bool or null
//	count != 3 && !archived      composition with &&, || and !
//	(a || b) && c                grouping
//
// Identifiers are dotted paths into the value map. Pointers are followed,
// so the values a form.Group reports can be used directly.
package condition

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbind/pkg/form"
)

// ErrSyntax wraps every compilation failure.
var ErrSyntax = errors.New("condition: syntax error")

// Rule is a compiled expression.
type Rule struct {
	source string
	root   node
}

// Compile parses source. A blank source compiles to a rule that always
// holds.
func Compile(source string) (*Rule, error) {
	trimmed := strings.TrimSpace(source)
	rule := &Rule{source: trimmed}
	if trimmed == "" {
		return rule, nil
	}
	tokens, err := lex(trimmed)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, p.tokens[p.pos].raw)
	}
	rule.root = root
	return rule, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(source string) *Rule {
	rule, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return rule
}

// String returns the trimmed source.
func (r *Rule) String() string { return r.source }

// Eval evaluates the rule against values.
func (r *Rule) Eval(values map[string]any) (bool, error) {
	if r == nil || r.root == nil {
		return true, nil
	}
	return r.root.eval(values)
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokNull
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	raw  string
}

type lexer struct {
	input  string
	pos    int
	tokens []token
}

func lex(input string) ([]token, error) {
	l := &lexer{input: input}
	for l.pos < len(l.input) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) emit(kind tokenKind, raw string) {
	l.tokens = append(l.tokens, token{kind: kind, raw: raw})
}

// pair consumes a two character operator whose first character was seen.
func (l *lexer) pair(second byte, kind tokenKind, raw string) error {
	l.pos++
	if l.peek() != second {
		return fmt.Errorf("%w: expected %q", ErrSyntax, raw)
	}
	l.pos++
	l.emit(kind, raw)
	return nil
}

func (l *lexer) next() error {
	switch ch := l.peek(); ch {
	case ' ', '\t', '\n', '\r':
		l.pos++
	case '(':
		l.pos++
		l.emit(tokLParen, "(")
	case ')':
		l.pos++
		l.emit(tokRParen, ")")
	case '!':
		l.pos++
		if l.peek() == '=' {
			l.pos++
			l.emit(tokNeq, "!=")
			return nil
		}
		l.emit(tokNot, "!")
	case '=':
		return l.pair('=', tokEq, "==")
	case '&':
		return l.pair('&', tokAnd, "&&")
	case '|':
		return l.pair('|', tokOr, "||")
	case '"', '\'':
		return l.quoted(ch)
	default:
		l.word()
	}
	return nil
}

func (l *lexer) quoted(quote byte) error {
	start := l.pos
	l.pos++
	escaped := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		l.pos++
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			body := l.input[start+1 : l.pos-1]
			if quote == '\'' {
				body = strings.ReplaceAll(body, `\'`, `'`)
				body = strings.ReplaceAll(body, `"`, `\"`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return fmt.Errorf("%w: invalid string literal: %w", ErrSyntax, err)
			}
			l.emit(tokString, value)
			return nil
		}
	}
	return fmt.Errorf("%w: unterminated string literal", ErrSyntax)
}

func (l *lexer) word() {
	start := l.pos
	for l.pos < len(l.input) && !strings.ContainsRune(" \t\n\r()!=&|", rune(l.input[l.pos])) {
		l.pos++
	}
	raw := l.input[start:l.pos]
	switch lower := strings.ToLower(raw); {
	case lower == "true" || lower == "false":
		l.emit(tokBool, lower)
	case lower == "null" || lower == "nil":
		l.emit(tokNull, "null")
	case looksLikeNumber(raw):
		l.emit(tokNumber, raw)
	default:
		l.emit(tokIdent, raw)
	}
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+'
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) match(kind tokenKind) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(tokOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(tokAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.match(tokNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.match(tokLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.match(tokRParen) {
			return nil, fmt.Errorf("%w: missing closing ')'", ErrSyntax)
		}
		return inner, nil
	}
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	tok := p.tokens[p.pos]
	if tok.kind != tokIdent {
		return nil, fmt.Errorf("%w: expected identifier, got %q", ErrSyntax, tok.raw)
	}
	p.pos++

	for _, op := range []tokenKind{tokEq, tokNeq} {
		if !p.match(op) {
			continue
		}
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compareNode{path: tok.raw, negate: op == tokNeq, lit: lit}, nil
	}
	return truthyNode{path: tok.raw}, nil
}

func (p *parser) literal() (token, error) {
	if p.pos >= len(p.tokens) {
		return token{}, fmt.Errorf("%w: missing literal", ErrSyntax)
	}
	tok := p.tokens[p.pos]
	p.pos++
	switch tok.kind {
	case tokString, tokBool, tokNull:
		return tok, nil
	case tokNumber:
		if _, err := strconv.ParseFloat(tok.raw, 64); err != nil {
			return token{}, fmt.Errorf("%w: invalid number %q", ErrSyntax, tok.raw)
		}
		return tok, nil
	case tokIdent:
		// Bare words compare as strings.
		return token{kind: tokString, raw: tok.raw}, nil
	default:
		return token{}, fmt.Errorf("%w: expected literal, got %q", ErrSyntax, tok.raw)
	}
}

type node interface {
	eval(values map[string]any) (bool, error)
}

type orNode struct{ left, right node }

func (n orNode) eval(values map[string]any) (bool, error) {
	ok, err := n.left.eval(values)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(values)
}

type andNode struct{ left, right node }

func (n andNode) eval(values map[string]any) (bool, error) {
	ok, err := n.left.eval(values)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(values)
}

type notNode struct{ inner node }

func (n notNode) eval(values map[string]any) (bool, error) {
	ok, err := n.inner.eval(values)
	return !ok, err
}

type truthyNode struct{ path string }

func (n truthyNode) eval(values map[string]any) (bool, error) {
	return truthy(lookup(values, n.path)), nil
}

type compareNode struct {
	path   string
	negate bool
	lit    token
}

func (n compareNode) eval(values map[string]any) (bool, error) {
	value := lookup(values, n.path)
	var equal bool
	switch n.lit.kind {
	case tokNull:
		equal = value == nil
	case tokBool:
		equal = truthy(value) == (n.lit.raw == "true")
	case tokNumber:
		want, _ := strconv.ParseFloat(n.lit.raw, 64)
		got, ok := number(value)
		equal = ok && got == want
	default:
		equal = text(value) == n.lit.raw
	}
	return equal != n.negate, nil
}

// lookup resolves path in values, preferring a flat key, and follows
// pointers and interfaces. Missing paths and nil pointers yield nil.
func lookup(values map[string]any, path string) any {
	value, ok := values[path]
	if !ok {
		value, ok = form.GetPath(values, path)
	}
	if !ok {
		return nil
	}
	return deref(value)
}

func deref(value any) any {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	}
	if f, ok := number(value); ok {
		return f != 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	return true
}

func number(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		return f, err == nil
	}
	return 0, false
}

func text(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
