package engine

import (
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// countingReader records how many bytes the decoder has pulled.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type jsonFrame struct {
	kind         containerKind
	expectingKey bool
}

// jsonSource adapts a goccy/go-json Decoder token stream to TokenSource,
// telling object keys apart from string values.
type jsonSource struct {
	in    *countingReader
	dec   *json.Decoder
	stack []jsonFrame
}

// NewJSON wraps r into a TokenSource backed by goccy/go-json. Location
// reports the bytes read from r so far.
func NewJSON(r io.Reader) TokenSource {
	in := &countingReader{r: r}
	dec := json.NewDecoder(in)
	dec.UseNumber()
	return &jsonSource{in: in, dec: dec}
}

func (s *jsonSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	off := s.in.n
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, jsonFrame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject, Offset: off}, nil
		case '[':
			s.stack = append(s.stack, jsonFrame{kind: kindArray})
			return Token{Kind: KindBeginArray, Offset: off}, nil
		case '}':
			s.pop()
			return Token{Kind: KindEndObject, Offset: off}, nil
		case ']':
			s.pop()
			return Token{Kind: KindEndArray, Offset: off}, nil
		}
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].kind == kindObject && s.stack[n-1].expectingKey {
			s.stack[n-1].expectingKey = false
			return Token{Kind: KindKey, String: v, Offset: off}, nil
		}
		s.valueDone()
		return Token{Kind: KindString, String: v, Offset: off}, nil
	case bool:
		s.valueDone()
		return Token{Kind: KindBool, Bool: v, Offset: off}, nil
	case json.Number:
		s.valueDone()
		return Token{Kind: KindNumber, Number: string(v), Offset: off}, nil
	case float64:
		s.valueDone()
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: off}, nil
	}
	s.valueDone()
	return Token{Kind: KindNull, Offset: off}, nil
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

// valueDone marks the value of the enclosing object as consumed.
func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].kind == kindObject {
		s.stack[n-1].expectingKey = true
	}
}

func (s *jsonSource) Location() int64 { return s.in.n }
