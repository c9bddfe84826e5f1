// Package source decodes JSON and YAML payloads into the dynamic values
// accepted by rtype types: map[string]any, []any, strings, booleans, nil and
// numbers (json.Number for JSON, int64/float64 for YAML).
package source

import (
	"bytes"
	"io"

	json "github.com/goccy/go-json"

	"github.com/reoring/rtype/internal/engine"
)

// DuplicatePolicy controls duplicate object key handling.
type DuplicatePolicy = engine.DuplicatePolicy

const (
	// Ignore keeps the last value silently.
	Ignore = engine.DupIgnore
	// Warn keeps the last value and reports the key through Options.Warn.
	Warn = engine.DupWarn
	// Reject fails with a duplicate_key error.
	Reject = engine.DupError
)

// Issue codes.
const (
	CodeParseError   = engine.CodeParseError
	CodeDuplicateKey = engine.CodeDuplicateKey
	CodeTruncated    = engine.CodeTruncated
)

// Issue is a payload problem located by a JSON Pointer.
type Issue = engine.Issue

// Error is returned for any payload that cannot be decoded under Options.
type Error = engine.IssueError

// Options bounds decoding. Zero limits are unlimited.
type Options struct {
	OnDuplicate DuplicatePolicy
	MaxDepth    int
	MaxBytes    int64
	// Warn receives non-fatal issues.
	Warn func(Issue)
}

// DefaultOptions rejects duplicate keys and limits nesting to 512 levels.
func DefaultOptions() Options {
	return Options{OnDuplicate: Reject, MaxDepth: 512}
}

func (o Options) engine() engine.Options {
	return engine.Options{OnDuplicate: o.OnDuplicate, MaxDepth: o.MaxDepth, MaxBytes: o.MaxBytes, Warn: o.Warn}
}

// JSON decodes a single JSON document.
func JSON(data []byte, opt Options) (any, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, &Error{Issue: Issue{Code: CodeTruncated, Path: "/", Message: "max bytes exceeded"}}
	}
	// the token stream does not check separators
	if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
		return nil, &Error{Issue: Issue{Code: CodeParseError, Path: "/", Message: "invalid JSON"}}
	}
	return engine.Decode(engine.Enforce(engine.NewJSON(bytes.NewReader(data)), opt.engine()))
}

// JSONReader decodes a single JSON document from r. At most MaxBytes+1 bytes
// are read, so an oversized body fails with truncated.
func JSONReader(r io.Reader, opt Options) (any, error) {
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Issue: Issue{Code: CodeParseError, Path: "/", Message: err.Error()}}
	}
	return JSON(data, opt)
}
