package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/rtype"
	"github.com/reoring/rtype/source"
)

func newCheckCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check --type T [files]",
		Short: "cast JSON or YAML documents with a type",
		Long: `Check decodes every given file (standard input when none is given or
the file is "-"), casts each document with the type selected by --type and
prints the canonical value as one line of JSON.

YAML files may hold several documents; each is checked separately.
Failures are reported on standard error as

	file: code at path: message

and make the command exit with status 1.`,
		Args: cobra.ArbitraryArgs,
		RunE: mkRunE(c, runCheck),
	}
	cmd.Flags().StringP(string(flagType), "t", "", "type descriptor or name from the config file")
	addInputFlags(cmd.Flags())
	return cmd
}

func runCheck(cmd *Command, args []string) error {
	name := flagType.String(cmd)
	if name == "" {
		return errors.New("check: --type is required")
	}
	t, err := cmd.lookupType(name)
	if err != nil {
		return err
	}
	opt, err := sourceOptions(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	out := cmd.OutOrStdout()
	var issues rtype.Issues
	for _, file := range args {
		docs, err := readDocs(cmd, file, opt)
		if err != nil {
			iss := issueOf(err)
			iss.Source = displayName(file)
			issues = rtype.AppendIssues(issues, iss)
			continue
		}
		for i, doc := range docs {
			src := displayName(file)
			if len(docs) > 1 {
				src = fmt.Sprintf("%s#%d", src, i)
			}
			v, err := t.Cast(doc)
			if err != nil {
				iss := issueOf(err)
				iss.Source = src
				issues = rtype.AppendIssues(issues, iss)
				continue
			}
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			fmt.Fprintf(out, "%s\n", b)
			cmd.logger.Debug("document ok", "source", src, "type", t.String())
		}
	}

	for _, iss := range issues {
		path := iss.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(cmd.Stderr(), "%s: %s at %s: %s\n", iss.Source, iss.Code, path, iss.Message)
	}
	if len(issues) > 0 {
		cmd.logger.Info("check failed", "issues", issues.Error())
	}
	return nil
}

func sourceOptions(cmd *Command) (source.Options, error) {
	opt := source.DefaultOptions()
	opt.MaxDepth = flagMaxDepth.Int(cmd)
	switch p := flagDuplicates.String(cmd); p {
	case "reject":
		opt.OnDuplicate = source.Reject
	case "warn":
		opt.OnDuplicate = source.Warn
	case "ignore":
		opt.OnDuplicate = source.Ignore
	default:
		return opt, fmt.Errorf("invalid --%s value %q", flagDuplicates, p)
	}
	opt.Warn = func(is source.Issue) {
		cmd.logger.Warn("duplicate key", "path", is.Path, "message", is.Message)
	}
	return opt, nil
}

// readDocs decodes file into its documents. The format follows the file
// extension, then --format, then defaults to JSON.
func readDocs(cmd *Command, file string, opt source.Options) ([]any, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.input())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}

	format := flagFormat.String(cmd)
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		format = "yaml"
	case ".json":
		format = "json"
	}
	switch format {
	case "yaml":
		return source.YAML(data, opt)
	case "", "json":
		doc, err := source.JSON(data, opt)
		if err != nil {
			return nil, err
		}
		return []any{doc}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func issueOf(err error) rtype.Issue {
	var se *source.Error
	if errors.As(err, &se) {
		return rtype.Issue{Path: se.Path, Code: se.Code, Message: se.Message}
	}
	return rtype.IssueFromError(err)
}

func displayName(file string) string {
	if file == "-" {
		return "<stdin>"
	}
	return file
}
