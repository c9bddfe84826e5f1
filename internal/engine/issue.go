package engine

import "errors"

// Issue codes produced while reading payloads.
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// DuplicatePolicy controls duplicate object key handling.
type DuplicatePolicy int

const (
	DupIgnore DuplicatePolicy = iota
	DupWarn
	DupError
)

// Issue is a payload-level problem located by a JSON Pointer.
type Issue struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// IssueError is the error returned for a fatal Issue.
type IssueError struct{ Issue }

func (e *IssueError) Error() string {
	return e.Code + " at " + e.Path + ": " + e.Message
}

func parseError(path, msg string) *IssueError {
	return &IssueError{Issue{Code: CodeParseError, Path: path, Message: msg}}
}

// asIssueError keeps IssueErrors and turns decoder failures into parse_error.
func asIssueError(err error) error {
	var ie *IssueError
	if errors.As(err, &ie) {
		return ie
	}
	return parseError("/", err.Error())
}
