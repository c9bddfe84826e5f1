package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML decodes every document of a (multi-document) YAML stream. Mappings
// become map[string]any with non-string keys rendered as text; integers are
// int64 and floats float64. Duplicate keys follow opt.OnDuplicate.
func YAML(data []byte, opt Options) ([]any, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, &Error{Issue: Issue{Code: CodeTruncated, Path: "/", Message: "max bytes exceeded"}}
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []any
	for {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, &Error{Issue: Issue{Code: CodeParseError, Path: "/", Message: err.Error()}}
		}
		c := &yamlConverter{opt: opt, budget: expansionBudget(&root)}
		v, err := c.convert(&root, "", 0)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
}

// Alias expansion may produce at most this many times the nodes written in
// the document, and never less than minExpansion.
const (
	expansionRatio = 100
	minExpansion   = 100_000
)

// expansionBudget bounds the values built from a document whose aliases are
// expanded.
func expansionBudget(root *yaml.Node) int {
	written := countNodes(root)
	if written > minExpansion/expansionRatio {
		return written * expansionRatio
	}
	return minExpansion
}

// countNodes counts the nodes of n without following aliases.
func countNodes(n *yaml.Node) int {
	total := 1
	for _, c := range n.Content {
		total += countNodes(c)
	}
	return total
}

type yamlConverter struct {
	opt    Options
	budget int
	built  int
}

func (c *yamlConverter) convert(n *yaml.Node, path string, depth int) (any, error) {
	c.built++
	if c.built > c.budget {
		return nil, &Error{Issue: Issue{Code: CodeParseError, Path: pointer(path), Message: "document expands too many aliases"}}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0], path, depth)
	case yaml.AliasNode:
		return c.convert(n.Alias, path, depth)
	case yaml.MappingNode, yaml.SequenceNode:
		if c.opt.MaxDepth > 0 && depth+1 > c.opt.MaxDepth {
			return nil, &Error{Issue: Issue{Code: CodeParseError, Path: pointer(path), Message: "max depth exceeded"}}
		}
	}
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			key := k.Value
			kp := path + "/" + escapeToken(key)
			if line, dup := first[key]; dup && c.opt.OnDuplicate != Ignore {
				is := Issue{Code: CodeDuplicateKey, Path: kp, Message: fmt.Sprintf("key '%s' duplicated at line %d (first at line %d)", key, k.Line, line)}
				if c.opt.OnDuplicate == Reject {
					return nil, &Error{Issue: is}
				}
				if c.opt.Warn != nil {
					c.opt.Warn(is)
				}
			}
			first[key] = k.Line
			val, err := c.convert(v, kp, depth+1)
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, e := range n.Content {
			v, err := c.convert(e, path+"/"+strconv.Itoa(i), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalar(n), nil
	}
	return nil, nil
}

func scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsNaN(f) {
			return f
		}
	}
	return n.Value
}

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeToken(s string) string { return tokenEscaper.Replace(s) }

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
