package attr

import (
	"fmt"
	"strconv"
)

// Position is a source location inside the parsed text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError reports malformed config text with its location.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("attr: %s at %s", e.Message, e.Pos)
}

// ParseOptions configures parsing.
type ParseOptions struct {
	// Registry resolves {'Type':'IService','ModuleName':...} dicts into
	// ref values. Without one, such a dict is a parse error.
	Registry Registry
}

// Parse converts config text into a Value tree. Input must hold exactly
// one value; whitespace, CR, LF and TAB between tokens are insignificant.
// Numbers parse as unsigned 64-bit (optional 0x selects base 16). Service
// reference dicts require a Registry; use ParseWithOptions.
func Parse(input string) (*Value, error) {
	return ParseWithOptions(input, ParseOptions{})
}

// ParseWithOptions parses with an explicit registry.
func ParseWithOptions(input string, opts ParseOptions) (*Value, error) {
	p := &parser{src: input, line: 1, col: 1, reg: opts.Registry}
	out := &Value{}
	if err := p.value(out); err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("trailing input after value")
	}
	return out, nil
}

type parser struct {
	src  string
	pos  int
	line int
	col  int
	reg  Registry
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\r', '\n', '\t':
			p.next()
		default:
			return
		}
	}
}

func (p *parser) position() Position {
	return Position{Line: p.line, Column: p.col, Offset: p.pos}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: p.position()}
}

func (p *parser) value(out *Value) error {
	p.skipSpace()
	if p.eof() {
		return p.errorf("unexpected end of input")
	}
	switch c := p.peek(); c {
	case '\'', '"':
		return p.stringLit(out)
	case '[':
		return p.list(out)
	case '{':
		return p.dict(out)
	case '(':
		return p.data(out)
	default:
		return p.scalar(out)
	}
}

// stringLit reads a quoted string. The grammar has no escapes: the string
// runs to the next occurrence of the opening quote character.
func (p *parser) stringLit(out *Value) error {
	quote := p.next()
	start := p.pos
	for !p.eof() {
		if p.peek() == quote {
			out.MakeString(p.src[start:p.pos])
			p.next()
			return nil
		}
		p.next()
	}
	return p.errorf("unterminated string")
}

func (p *parser) list(out *Value) error {
	p.next() // [
	out.MakeList(0)
	for {
		p.skipSpace()
		if p.eof() {
			return p.errorf("unterminated list")
		}
		if p.peek() == ']' {
			p.next()
			return nil
		}
		var elem Value
		if err := p.value(&elem); err != nil {
			return err
		}
		n := out.size
		out.reallocList(n + 1)
		out.list[n] = elem // move; elem is parser-owned
		p.skipSpace()
		if !p.eof() && p.peek() == ',' {
			p.next()
		}
	}
}

func (p *parser) dict(out *Value) error {
	p.next() // {
	out.MakeDict()
	for {
		p.skipSpace()
		if p.eof() {
			return p.errorf("unterminated dict")
		}
		if p.peek() == '}' {
			p.next()
			break
		}
		var key Value
		if err := p.value(&key); err != nil {
			return err
		}
		if key.kind != KindString {
			return p.errorf("dict key must be a string, got %s", key.kind)
		}
		p.skipSpace()
		if p.eof() || p.peek() != ':' {
			return p.errorf("expected ':' after dict key %q", key.strVal)
		}
		p.next()
		var val Value
		if err := p.value(&val); err != nil {
			return err
		}
		slot, err := out.Ensure(key.strVal)
		if err != nil {
			return err
		}
		*slot = val // move
		p.skipSpace()
		if !p.eof() && p.peek() == ',' {
			p.next()
		}
	}
	return p.resolveRef(out)
}

// resolveRef replaces a freshly parsed dict carrying the recognized
// service tag with a ref bound through the registry. Dicts with other
// Type values stay plain dicts.
func (p *parser) resolveRef(out *Value) error {
	if !out.HasKey("Type") {
		return nil
	}
	tv, err := out.Get("Type")
	if err != nil || !tv.EqualString(ServiceFace) {
		return nil
	}
	nv, err := out.Get("ModuleName")
	if err != nil || nv.kind != KindString {
		return p.errorf("service reference without ModuleName")
	}
	if p.reg == nil {
		return p.errorf("no registry to resolve module %q", nv.strVal)
	}
	svc, ok := p.reg.Resolve(nv.strVal)
	if !ok {
		return p.errorf("module %q not found in registry", nv.strVal)
	}
	out.MakeRef(svc)
	return nil
}

func (p *parser) data(out *Value) error {
	p.next() // (
	var buf []byte
	for {
		p.skipSpace()
		if p.eof() {
			return p.errorf("unterminated data")
		}
		if p.peek() == ')' {
			p.next()
			out.MakeDataBytes(buf)
			return nil
		}
		var b byte
		for n := 0; n < 2; n++ {
			if p.eof() {
				return p.errorf("unterminated data")
			}
			d, ok := hexNibble(p.peek())
			if !ok {
				return p.errorf("invalid hex digit %q in data", p.peek())
			}
			b = b<<4 | d
			p.next()
		}
		buf = append(buf, b)
		p.skipSpace()
		if !p.eof() && p.peek() == ',' {
			p.next()
		}
	}
}

// hexNibble accepts the grammar's digits: 0-9 and uppercase A-F.
func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func (p *parser) scalar(out *Value) error {
	if p.literal("None") {
		out.MakeNil()
		return nil
	}
	if p.literal("true") {
		out.MakeBool(true)
		return nil
	}
	if p.literal("false") {
		out.MakeBool(false)
		return nil
	}
	return p.number(out)
}

// literal consumes word if it is next in the input.
func (p *parser) literal(word string) bool {
	if len(p.src)-p.pos < len(word) || p.src[p.pos:p.pos+len(word)] != word {
		return false
	}
	for range word {
		p.next()
	}
	return true
}

// number reads an integer (optional 0x prefix, stored as an unsigned
// 64-bit magnitude) or a float (digits with a fractional part, which the
// encoder produces for float values). A leading '-' yields a signed int
// or a negative float.
func (p *parser) number(out *Value) error {
	neg := false
	if p.peek() == '-' {
		neg = true
		p.next()
		if p.eof() {
			return p.errorf("unexpected end of input in number")
		}
	}
	base := 10
	if !neg && len(p.src)-p.pos >= 2 && p.src[p.pos] == '0' && p.src[p.pos+1] == 'x' {
		base = 16
		p.next()
		p.next()
	}
	start := p.pos
	for !p.eof() && isDigit(p.peek(), base) {
		p.next()
	}
	if p.pos == start {
		if p.eof() {
			return p.errorf("unexpected end of input in number")
		}
		return p.errorf("unexpected character %q", p.peek())
	}

	if base == 10 && !p.eof() && p.peek() == '.' {
		p.next()
		fstart := p.pos
		for !p.eof() && isDigit(p.peek(), 10) {
			p.next()
		}
		if p.pos == fstart {
			return p.errorf("missing digits after decimal point")
		}
		f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return p.errorf("invalid number %q", p.src[start:p.pos])
		}
		if neg {
			f = -f
		}
		out.MakeFloat(f)
		return nil
	}

	u, err := strconv.ParseUint(p.src[start:p.pos], base, 64)
	if err != nil {
		return p.errorf("invalid number %q", p.src[start:p.pos])
	}
	if neg {
		out.MakeInt(-int64(u))
		return nil
	}
	out.MakeUint(u)
	return nil
}

func isDigit(c byte, base int) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if base != 16 {
		return false
	}
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
