package rtype

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/rtype/i18n"
)

// maxNesting bounds descriptor recursion.
const maxNesting = 256

// Parser turns descriptor strings into types. A Parser is safe for
// concurrent use.
type Parser struct {
	cache *Cache
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithCache injects the memoization store. A nil cache disables caching.
func WithCache(c *Cache) ParserOption {
	return func(p *Parser) { p.cache = c }
}

// NewParser returns a parser with a private cache unless WithCache is given.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{cache: NewCache()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Cache returns the parser's cache, or nil when caching is off.
func (p *Parser) Cache() *Cache { return p.cache }

// Parse converts a descriptor into a Type. Any input matching none of the
// grammar productions fails with unsupported_operation.
func (p *Parser) Parse(descriptor string) (Type, error) {
	if p.cache == nil {
		return p.build(descriptor)
	}
	return p.cache.GetOrInsert(descriptor, func() (Type, error) {
		return p.build(descriptor)
	})
}

func (p *Parser) build(descriptor string) (Type, error) {
	r := &descReader{src: descriptor}
	t, err := r.parse()
	if err != nil {
		return nil, newError(CodeUnsupportedOperation, i18n.BadDescriptor,
			map[string]string{"descriptor": descriptor}, err)
	}
	return t, nil
}

var defaultParser = NewParser()

// FromString parses descriptor with the package parser.
func FromString(descriptor string) (Type, error) { return defaultParser.Parse(descriptor) }

// DefaultCache returns the cache used by FromString.
func DefaultCache() *Cache { return defaultParser.cache }

// ClearCache empties the FromString cache.
func ClearCache() { defaultParser.cache.Clear() }

// DisableCache turns off memoization for FromString.
func DisableCache() { defaultParser.cache.Disable() }

// EnableCache turns memoization for FromString back on.
func EnableCache() { defaultParser.cache.Enable() }

var errNesting = errors.New("descriptor nests too deeply")

// descReader is a recursive-descent reader over one descriptor.
type descReader struct {
	src   string
	pos   int
	depth int
}

func (r *descReader) parse() (Type, error) {
	t, err := r.parseType()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if r.pos != len(r.src) {
		return nil, r.unexpected()
	}
	return t, nil
}

func (r *descReader) parseType() (Type, error) {
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > maxNesting {
		return nil, errNesting
	}
	r.skipSpace()
	t, err := r.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		save := r.pos
		r.skipSpace()
		if !strings.HasPrefix(r.src[r.pos:], "[]") {
			r.pos = save
			return t, nil
		}
		r.pos += 2
		if t, err = ArrayOf(t); err != nil {
			return nil, err
		}
	}
}

func (r *descReader) parsePrimary() (Type, error) {
	if r.peek() == '{' {
		return r.parseShapeBody()
	}
	start := r.pos
	for r.pos < len(r.src) && isIdentByte(r.src[r.pos]) {
		r.pos++
	}
	word := r.src[start:r.pos]
	switch word {
	case "integer":
		return Integer, nil
	case "float":
		return Float, nil
	case "string":
		return String, nil
	case "date":
		return Date, nil
	case "boolean":
		return Boolean, nil
	case "object":
		return Object, nil
	case "any":
		return Any, nil
	case "enum":
		return r.parseEnum()
	case "union":
		return r.parseUnion()
	case "shape":
		if err := r.expect('('); err != nil {
			return nil, err
		}
		r.skipSpace()
		t, err := r.parseShapeBody()
		if err != nil {
			return nil, err
		}
		if err := r.expect(')'); err != nil {
			return nil, err
		}
		return t, nil
	case "":
		return nil, r.unexpected()
	}
	return nil, fmt.Errorf("unknown type %q", word)
}

func (r *descReader) parseEnum() (Type, error) {
	if err := r.expect('('); err != nil {
		return nil, err
	}
	var values []string
	for {
		r.skipSpace()
		v, err := r.enumValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		r.skipSpace()
		switch r.peek() {
		case ',':
			r.pos++
			continue
		case ')':
			r.pos++
			return Enum(values[0], values...)
		}
		return nil, r.unexpected()
	}
}

// enumValue reads a single-quoted or bare value, trimmed.
func (r *descReader) enumValue() (string, error) {
	if r.peek() == '\'' {
		end := strings.IndexByte(r.src[r.pos+1:], '\'')
		if end < 0 {
			return "", errors.New("unterminated enum value")
		}
		v := r.src[r.pos+1 : r.pos+1+end]
		r.pos += end + 2
		return strings.TrimSpace(v), nil
	}
	start := r.pos
	for r.pos < len(r.src) && r.src[r.pos] != ',' && r.src[r.pos] != ')' {
		r.pos++
	}
	v := strings.TrimSpace(r.src[start:r.pos])
	if v == "" {
		return "", r.unexpected()
	}
	return v, nil
}

func (r *descReader) parseUnion() (Type, error) {
	if err := r.expect('('); err != nil {
		return nil, err
	}
	var members []Type
	for {
		t, err := r.parseType()
		if err != nil {
			return nil, err
		}
		members = append(members, t)
		r.skipSpace()
		switch r.peek() {
		case ',':
			r.pos++
			continue
		case ')':
			r.pos++
			return Union(members...)
		}
		return nil, r.unexpected()
	}
}

// parseShapeBody reads a JSON object whose values are nested descriptors.
// Keys keep their order of appearance.
func (r *descReader) parseShapeBody() (Type, error) {
	body, err := r.scanObject()
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(body)) {
		return nil, fmt.Errorf("invalid shape body %s", body)
	}
	dec := json.NewDecoder(strings.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var fields []Field
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("invalid shape key %v", kt)
		}
		vt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		desc, ok := vt.(string)
		if !ok {
			return nil, fmt.Errorf("shape field %q: descriptor must be a string", key)
		}
		nested := &descReader{src: desc, depth: r.depth}
		t, err := nested.parse()
		if err != nil {
			return nil, fmt.Errorf("shape field %q: %w", key, err)
		}
		fields = append(fields, F(key, t))
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return Shape(fields...)
}

// scanObject consumes a balanced JSON object starting at '{' and returns its
// text. Braces inside strings are ignored.
func (r *descReader) scanObject() (string, error) {
	if r.peek() != '{' {
		return "", r.unexpected()
	}
	start := r.pos
	depth := 0
	inString := false
	for i := r.pos; i < len(r.src); i++ {
		c := r.src[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				r.pos = i + 1
				return r.src[start:r.pos], nil
			}
		}
	}
	return "", errors.New("unterminated object")
}

func (r *descReader) expect(c byte) error {
	r.skipSpace()
	if r.peek() != c {
		return r.unexpected()
	}
	r.pos++
	return nil
}

func (r *descReader) peek() byte {
	if r.pos >= len(r.src) {
		return 0
	}
	return r.src[r.pos]
}

func (r *descReader) skipSpace() {
	for r.pos < len(r.src) {
		switch r.src[r.pos] {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

func (r *descReader) unexpected() error {
	if r.pos >= len(r.src) {
		return errors.New("unexpected end of descriptor")
	}
	return fmt.Errorf("unexpected %q at offset %d", r.src[r.pos], r.pos)
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
