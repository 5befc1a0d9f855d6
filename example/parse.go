// Package example evaluates the tiny literal-expression grammar used
// wherever TJS syntax asks for an "example value" (spec GLOSSARY:
// "example-typed parameter"): parameter defaults, declared return-type
// examples, and the right-hand side of `Type N EXAMPLE` declarations. This
// is deliberately not a general JS expression evaluator — only literals,
// array/object literals, identifier references into a binding environment,
// and `||`-joined unions, which is everything spec §3/§4.3 need to infer a
// Type from. No example-literal grammar exists as a library anywhere in the
// retrieved pack, so this hand-rolled recursive-descent parser over the
// package's own small tokenizer (tokenize.go) is the justified stdlib exception recorded in
// DESIGN.md — it is not a JS parser substitute; see package parser for that.
package example

import (
	"fmt"
	"strconv"
	"strings"

	tjstypes "github.com/tjs-lang/tjs/types"
)

// Env resolves identifiers appearing in example expressions to previously
// bound example values (declared via `Type`/`Enum`/... earlier in the same
// module, or a prior parameter in the same list).
type Env map[string]any

// Parse evaluates src as an example-literal expression using env to resolve
// bare identifiers, returning a value in the vocabulary InferTypeFromValue
// understands: nil, bool, float64, string, []any, *tjstypes.OrderedObject,
// *tjstypes.UnionExample, tjstypes.Undefined, or whatever env binds a bare
// identifier to.
func Parse(src string, env Env) (any, error) {
	p := &parser{toks: tokenize(src), env: env, src: src}
	v, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("example: unexpected trailing input near %q", p.rest())
	}
	return v, nil
}

type token struct {
	kind string // "num","str","ident","punct"
	text string
}

type parser struct {
	toks []token
	pos  int
	env  Env
	src  string
}

func (p *parser) skipSpace() {}

func (p *parser) rest() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	var b strings.Builder
	for _, t := range p.toks[p.pos:] {
		b.WriteString(t.text)
		b.WriteByte(' ')
	}
	return b.String()
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) expectPunct(s string) error {
	t, ok := p.next()
	if !ok || t.kind != "punct" || t.text != s {
		return fmt.Errorf("example: expected %q", s)
	}
	return nil
}

// parseUnion handles the top-level `A || B || C` grammar (spec §4.3).
func (p *parser) parseUnion() (any, error) {
	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	members := []any{first}
	for {
		t, ok := p.peek()
		if !ok || t.kind != "punct" || t.text != "||" {
			break
		}
		p.next()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		members = append(members, v)
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return &tjstypes.UnionExample{Members: members}, nil
}

func (p *parser) parseValue() (any, error) {
	t, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("example: unexpected end of expression")
	}
	switch {
	case t.kind == "num":
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("example: invalid number %q: %w", t.text, err)
		}
		return f, nil
	case t.kind == "str":
		return t.text, nil
	case t.kind == "ident" && t.text == "true":
		return true, nil
	case t.kind == "ident" && t.text == "false":
		return false, nil
	case t.kind == "ident" && t.text == "null":
		return nil, nil
	case t.kind == "ident" && t.text == "undefined":
		return tjstypes.Undefined{}, nil
	case t.kind == "ident":
		if v, ok := p.env[t.text]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("example: unresolved identifier %q", t.text)
	case t.kind == "punct" && t.text == "-":
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("example: unary '-' applied to non-number")
		}
		return -f, nil
	case t.kind == "punct" && t.text == "[":
		return p.parseArray()
	case t.kind == "punct" && t.text == "{":
		return p.parseObject()
	default:
		return nil, fmt.Errorf("example: unexpected token %q", t.text)
	}
}

func (p *parser) parseArray() (any, error) {
	var items []any
	for {
		t, ok := p.peek()
		if ok && t.kind == "punct" && t.text == "]" {
			p.next()
			break
		}
		v, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		t, ok = p.peek()
		if ok && t.kind == "punct" && t.text == "," {
			p.next()
			continue
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		break
	}
	if items == nil {
		items = []any{}
	}
	return items, nil
}

func (p *parser) parseObject() (any, error) {
	obj := tjstypes.NewOrderedObject()
	for {
		t, ok := p.peek()
		if ok && t.kind == "punct" && t.text == "}" {
			p.next()
			break
		}
		key, ok := p.next()
		if !ok || (key.kind != "ident" && key.kind != "str") {
			return nil, fmt.Errorf("example: expected object key")
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		v, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		obj.Set(key.text, v)
		t, ok = p.peek()
		if ok && t.kind == "punct" && t.text == "," {
			p.next()
			continue
		}
		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
		break
	}
	return obj, nil
}
