package dsl

import "strings"

// Parse compiles DSL source into an ordered AST. Parsing is all-or-nothing:
// on error no partial AST is returned.
//
// Grammar:
//
//	file    := item*
//	item    := ["pub"] ("label_enum" enum | "struct" metric)
//	enum    := Ident "{" variants "}"
//	metric  := Ident ":" Kind "{" labels "}"
//	variants:= (variant ",")* [variant]
//	variant := Ident [":" String]
//	labels  := (label ",")* [label]
//	label   := String "=>" ("{" variants "}" | Ident)
func Parse(src string) (*File, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	f := &File{}
	for p.tok.kind != tokenEOF {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		f.Items = append(f.Items, item)
	}
	return f, nil
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

func (p *parser) errorf(msg string) error {
	return &ParseError{Pos: p.tok.pos, Token: p.tok.text, Msg: msg}
}

// expect consumes the current token if it has the wanted kind.
func (p *parser) expect(kind tokenKind) (token, error) {
	if p.tok.kind != kind {
		return token{}, p.errorf("expected " + kind.String())
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return tok, nil
}

func (p *parser) parseItem() (Item, error) {
	pos := p.tok.pos

	public := false
	if p.tok.kind == tokenIdent && p.tok.text == "pub" {
		public = true
		if err := p.advance(); err != nil {
			return Item{}, err
		}
	}

	if p.tok.kind != tokenIdent {
		return Item{}, p.errorf("expected \"label_enum\" or \"struct\"")
	}
	switch p.tok.text {
	case "label_enum":
		if err := p.advance(); err != nil {
			return Item{}, err
		}
		e, err := p.parseEnum(public, pos)
		if err != nil {
			return Item{}, err
		}
		return Item{Enum: e}, nil
	case "struct":
		if err := p.advance(); err != nil {
			return Item{}, err
		}
		m, err := p.parseMetric(public, pos)
		if err != nil {
			return Item{}, err
		}
		return Item{Metric: m}, nil
	}
	return Item{}, p.errorf("expected \"label_enum\" or \"struct\"")
}

func (p *parser) parseEnum(public bool, pos Pos) (*EnumDef, error) {
	name, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	variants, err := p.parseVariantBlock()
	if err != nil {
		return nil, err
	}
	return &EnumDef{Name: name.text, Public: public, Variants: variants, Pos: pos}, nil
}

func (p *parser) parseMetric(public bool, pos Pos) (*MetricDef, error) {
	name, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenColon); err != nil {
		return nil, err
	}
	kindTok := p.tok
	kind, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	if !Kind(kind.text).Valid() {
		return nil, &ParseError{Pos: kindTok.pos, Token: kindTok.text, Msg: "unknown metric kind"}
	}

	if _, err := p.expect(tokenLBrace); err != nil {
		return nil, err
	}
	m := &MetricDef{Name: name.text, Public: public, Kind: Kind(kind.text), Pos: pos}
	for p.tok.kind != tokenRBrace {
		label, err := p.parseLabel()
		if err != nil {
			return nil, err
		}
		m.Labels = append(m.Labels, label)
		if p.tok.kind == tokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(tokenRBrace); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *parser) parseLabel() (LabelDef, error) {
	pos := p.tok.pos
	key, err := p.expect(tokenString)
	if err != nil {
		return LabelDef{}, err
	}
	if _, err := p.expect(tokenArrow); err != nil {
		return LabelDef{}, err
	}

	switch p.tok.kind {
	case tokenLBrace:
		values, err := p.parseVariantBlock()
		if err != nil {
			return LabelDef{}, err
		}
		return LabelDef{Key: key.text, Values: values, Pos: pos}, nil
	case tokenIdent:
		ref := p.tok.text
		if err := p.advance(); err != nil {
			return LabelDef{}, err
		}
		return LabelDef{Key: key.text, EnumRef: ref, Pos: pos}, nil
	}
	return LabelDef{}, p.errorf("expected value block or enum name")
}

// parseVariantBlock parses "{ name [: \"value\"], ... }". A bare identifier
// doubles as its label string, folded to lower case.
func (p *parser) parseVariantBlock() ([]Variant, error) {
	if _, err := p.expect(tokenLBrace); err != nil {
		return nil, err
	}
	var variants []Variant
	for p.tok.kind != tokenRBrace {
		nameTok := p.tok
		name, err := p.expect(tokenIdent)
		if err != nil {
			return nil, err
		}
		v := Variant{Name: name.text, Value: strings.ToLower(name.text), Pos: nameTok.pos}
		if p.tok.kind == tokenColon {
			if err := p.advance(); err != nil {
				return nil, err
			}
			value, err := p.expect(tokenString)
			if err != nil {
				return nil, err
			}
			v.Value = value.text
		}
		variants = append(variants, v)
		if p.tok.kind == tokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(tokenRBrace); err != nil {
		return nil, err
	}
	return variants, nil
}
