package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/reoring/rtype/i18n"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c, err := New(args)
	qt.Assert(t, qt.IsNil(err))
	var out bytes.Buffer
	c.SetOutput(&out)
	c.SetInput(strings.NewReader(stdin))
	err = c.Run(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	qt.Assert(t, qt.IsNil(os.WriteFile(p, []byte(content), 0o644)))
	return p
}

func TestCheckStdin(t *testing.T) {
	out, err := run(t, `{"id":"42","tags":["a"]}`, "check", "--type", `{"id":"integer","tags":"string[]"}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"id":42,"tags":["a"]}`+"\n"))
}

func TestCheckReportsIssues(t *testing.T) {
	out, err := run(t, `{"id":"x"}`, "check", "-t", `{"id":"integer"}`)
	qt.Assert(t, qt.Equals(err, ErrPrintedError))
	qt.Assert(t, qt.StringContains(out, "<stdin>: invalid_cast at /id: The value at key 'id' cannot be cast to integer."))
}

func TestCheckYAMLDocuments(t *testing.T) {
	file := writeFile(t, "docs.yaml", "id: 1\n---\nid: nope\n")
	out, err := run(t, "", "check", "--type", `{"id":"integer"}`, file)
	qt.Assert(t, qt.Equals(err, ErrPrintedError))
	qt.Assert(t, qt.StringContains(out, `{"id":1}`+"\n"))
	qt.Assert(t, qt.StringContains(out, file+"#1: invalid_cast at /id"))
}

func TestCheckDuplicates(t *testing.T) {
	out, err := run(t, `{"id":1,"id":2}`, "check", "--type", `{"id":"integer"}`)
	qt.Assert(t, qt.Equals(err, ErrPrintedError))
	qt.Assert(t, qt.StringContains(out, "duplicate_key at /id"))

	out, err = run(t, `{"id":1,"id":2}`, "check", "--type", `{"id":"integer"}`, "--duplicates", "ignore")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `{"id":2}`+"\n"))

	_, err = run(t, `{}`, "check", "--type", "any", "--duplicates", "maybe")
	qt.Assert(t, qt.ErrorMatches(err, `invalid --duplicates value "maybe"`))
}

func TestCheckStdinYAMLFormat(t *testing.T) {
	out, err := run(t, "- 1\n- 2\n", "check", "--type", "integer[]", "--format", "yaml")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "[1,2]\n"))
}

func TestCheckRequiresType(t *testing.T) {
	_, err := run(t, `{}`, "check")
	qt.Assert(t, qt.ErrorMatches(err, `check: --type is required`))
}

func TestBadDescriptor(t *testing.T) {
	_, err := run(t, "", "fmt", "integr")
	qt.Assert(t, qt.ErrorMatches(err, `(?s)type "integr": unsupported_operation.*`))
}

func TestFmt(t *testing.T) {
	out, err := run(t, "", "fmt", `{"a": "integer", "b?": "union(string,float)"}`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `shape({"a":"integer","b?":"union(string,float)"})`+"\n"))
}

func TestTS(t *testing.T) {
	desc := `{"test":"integer","optional?":"string"}`
	out, err := run(t, "", "ts", desc)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "{ test: number, optional?: string }\n"))

	out, err = run(t, "", "ts", "--multiline", desc)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "{\n\ttest: number;\n\toptional?: string;\n}\n"))
}

func TestJSONSchema(t *testing.T) {
	out, err := run(t, "", "jsonschema", "string[]")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.JSONEquals([]byte(out), map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}))
}

func TestConfigTypesAndLanguage(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	cfg := writeFile(t, "rtype.yaml", "lang: ja\ntypes:\n  order: '{\"id\":\"integer\"}'\n")

	out, err := run(t, "", "--config", cfg, "fmt", "order")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, `shape({"id":"integer"})`+"\n"))

	out, err = run(t, `{}`, "--config", cfg, "check", "--type", "order")
	qt.Assert(t, qt.Equals(err, ErrPrintedError))
	qt.Assert(t, qt.StringContains(out, "キー 'id' がありません"))
}

func TestConfigUnknownField(t *testing.T) {
	cfg := writeFile(t, "rtype.yaml", "typez: {}\n")
	_, err := run(t, "", "--config", cfg, "fmt", "integer")
	qt.Assert(t, qt.ErrorMatches(err, `(?s)config .*: yaml: .*`))
}
