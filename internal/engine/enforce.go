package engine

import (
	"strconv"
	"strings"
)

// Options controls runtime enforcement: duplicate keys, nesting depth and
// consumed bytes. Zero limits are unlimited.
type Options struct {
	OnDuplicate DuplicatePolicy
	MaxDepth    int
	MaxBytes    int64
	// Warn receives non-fatal issues (duplicate keys under DupWarn).
	Warn func(Issue)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind      containerKind
	path      string
	keys      map[string]struct{}
	key       string // pending key of an object
	nextIndex int
}

// Enforce wraps inner so that policy violations surface as *IssueError from
// NextToken.
func Enforce(inner TokenSource, opt Options) TokenSource {
	return &enforcingSource{inner: inner, opt: opt}
}

type enforcingSource struct {
	inner TokenSource
	opt   Options
	stack []frame
}

func (e *enforcingSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	if e.opt.MaxBytes > 0 && e.inner.Location() > e.opt.MaxBytes {
		return Token{}, &IssueError{Issue{Code: CodeTruncated, Path: e.path(), Message: "max bytes exceeded"}}
	}

	switch tok.Kind {
	case KindKey:
		top := &e.stack[len(e.stack)-1]
		top.key = tok.String
		if e.opt.OnDuplicate == DupIgnore {
			return tok, nil
		}
		if _, dup := top.keys[tok.String]; dup {
			is := Issue{Code: CodeDuplicateKey, Path: joinPointer(top.path, tok.String), Message: "key '" + tok.String + "' duplicated"}
			if e.opt.OnDuplicate == DupError {
				return Token{}, &IssueError{is}
			}
			if e.opt.Warn != nil {
				e.opt.Warn(is)
			}
		}
		top.keys[tok.String] = struct{}{}
	case KindBeginObject, KindBeginArray:
		f := frame{kind: kindArray, path: e.valuePath()}
		if tok.Kind == KindBeginObject {
			f.kind = kindObject
			f.keys = map[string]struct{}{}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, parseError(normalize(f.path), "max depth exceeded")
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	default:
		e.valuePath()
	}
	return tok, nil
}

// valuePath returns the pointer of the value about to be read and advances
// the array index of the enclosing container.
func (e *enforcingSource) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.kind == kindArray {
		p := joinPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	return joinPointer(top.path, top.key)
}

func (e *enforcingSource) path() string {
	if n := len(e.stack); n > 0 {
		return normalize(e.stack[n-1].path)
	}
	return "/"
}

func (e *enforcingSource) Location() int64 { return e.inner.Location() }

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
