package rtype_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reoring/rtype"
	"github.com/reoring/rtype/i18n"
)

func TestError_IsMatchesByCode(t *testing.T) {
	_, err := rtype.Integer.Cast("abc")
	if !errors.Is(err, rtype.ErrInvalidCast) || errors.Is(err, rtype.ErrUnsupportedOperation) {
		t.Fatalf("unexpected match result for %v", err)
	}
	wrapped := fmt.Errorf("context: %w", err)
	if rtype.CodeOf(wrapped) != rtype.CodeInvalidCast {
		t.Fatalf("CodeOf must see through wrapping")
	}
	if !rtype.IsRecoverable(wrapped) || rtype.IsRecoverable(errors.New("x")) {
		t.Fatalf("IsRecoverable mismatch")
	}
	if rtype.CodeOf(errors.New("plain")) != "" {
		t.Fatalf("plain errors have no code")
	}
}

func TestError_MessageAndPath(t *testing.T) {
	s := rtype.Must(rtype.Shape(rtype.F("items", rtype.Must(rtype.ArrayOf(rtype.Integer)))))
	_, err := s.Cast(map[string]any{"items": []any{1, "x"}})
	e, ok := rtype.AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Path != "/items/1" {
		t.Fatalf("path: %q", e.Path)
	}
	if !strings.HasPrefix(e.Error(), "invalid_cast at /items/1: ") {
		t.Fatalf("error text: %s", e.Error())
	}
	if e.Message != "The value at key 'items' cannot be cast to array." {
		t.Fatalf("message: %s", e.Message)
	}
}

func TestError_PointerEscaping(t *testing.T) {
	s := rtype.Must(rtype.Shape(rtype.F("a/b~c", rtype.Integer)))
	_, err := s.Cast(map[string]any{"a/b~c": "x"})
	if e, _ := rtype.AsError(err); e == nil || e.Path != "/a~1b~0c" {
		t.Fatalf("unexpected path: %v", err)
	}
}

func TestError_Localized(t *testing.T) {
	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })
	s := rtype.Must(rtype.Shape(rtype.F("id", rtype.Integer)))
	_, err := s.Cast(map[string]any{})
	e, _ := rtype.AsError(err)
	if e == nil || e.Message != "キー 'id' がありません" {
		t.Fatalf("localized message: %v", err)
	}
}

func TestIssues(t *testing.T) {
	var iss rtype.Issues
	for _, in := range []any{"a", "b", "c", "d"} {
		_, err := rtype.Integer.Cast(in)
		iss = rtype.AppendIssues(iss, rtype.IssueFromError(rtype.PrefixPath(err, in.(string))))
	}
	if len(iss) != 4 || iss[2].Path != "/c" || iss[0].Code != rtype.CodeInvalidCast {
		t.Fatalf("unexpected issues: %+v", iss)
	}
	want := "invalid_cast at /a; invalid_cast at /b; invalid_cast at /c; ... (total 4)"
	if iss.Error() != want {
		t.Fatalf("summary:\n got %s\nwant %s", iss.Error(), want)
	}
	got, ok := rtype.AsIssues(fmt.Errorf("wrap: %w", iss))
	if !ok || len(got) != 4 {
		t.Fatalf("AsIssues: %v %v", got, ok)
	}
	plain := rtype.IssueFromError(errors.New("io failure"))
	if plain.Code != "" || plain.Message != "io failure" {
		t.Fatalf("plain issue: %+v", plain)
	}
}
