package rtype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/rtype/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeNotImplemented marks a capability a type cannot provide. It is a
	// programmer error and is never swallowed by CanCast or IsValid.
	CodeNotImplemented = "not_implemented"
	// CodeInvalidCast reports a value that is present but not coercible.
	CodeInvalidCast = "invalid_cast"
	// CodeUnsupportedOperation reports malformed construction, a malformed
	// descriptor or a structural mismatch (missing or undeclared keys).
	CodeUnsupportedOperation = "unsupported_operation"
)

// Sentinels usable with errors.Is; matching is by code.
var (
	ErrNotImplemented       = &Error{Code: CodeNotImplemented}
	ErrInvalidCast          = &Error{Code: CodeInvalidCast}
	ErrUnsupportedOperation = &Error{Code: CodeUnsupportedOperation}
)

// Error is the failure returned by Cast, the factories and the parser.
type Error struct {
	Code    string
	Path    string // JSON Pointer of the offending value (for example: /items/2); empty at the root.
	Message string
	// Params carries structured parameters (e.g., {"key": "id"}) for i18n and
	// observability.
	Params map[string]string
	Cause  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Path, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(code, msgKey string, params map[string]string, cause error) *Error {
	return &Error{Code: code, Message: i18n.T(msgKey, params), Params: params, Cause: cause}
}

func invalidCast(v any, t Type) *Error {
	return newError(CodeInvalidCast, i18n.InvalidCast, map[string]string{"value": describeValue(v), "type": t.Kind().String()}, nil)
}

func unsupported(msgKey string, params map[string]string) *Error {
	return newError(CodeUnsupportedOperation, msgKey, params, nil)
}

// AsError extracts an *Error using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of err, or "" when err is not an *Error.
func CodeOf(err error) string {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// IsRecoverable reports whether err is one of the failure kinds CanCast and
// IsValid turn into false.
func IsRecoverable(err error) bool {
	e, ok := AsError(err)
	if !ok {
		return false
	}
	return e.Code == CodeInvalidCast || e.Code == CodeUnsupportedOperation
}

// PrefixPath rebases the path of err under token (an object key or array
// index). Errors that are not *Error are returned unchanged.
func PrefixPath(err error, token string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Path = joinPointer(token, e.Path)
	return &cp
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(token, rest string) string {
	return "/" + pointerEscaper.Replace(token) + rest
}

// Issue represents a single validation entry in a batch report.
type Issue struct {
	Path    string `json:"path"` // JSON Pointer (for example: /items/2/price).
	Code    string `json:"code"`
	Message string `json:"message"`
	// Source optionally names the document the issue belongs to (file name,
	// request id).
	Source string `json:"source,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		path := it.Path
		if path == "" {
			path = "/"
		}
		// e.g. invalid_cast at /path
		fmt.Fprintf(b, "%s at %s", it.Code, path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// IssueFromError flattens err into an Issue. Errors that are not *Error keep
// their text and get no code.
func IssueFromError(err error) Issue {
	if e, ok := AsError(err); ok {
		return Issue{Path: e.Path, Code: e.Code, Message: e.Message}
	}
	return Issue{Message: err.Error()}
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
