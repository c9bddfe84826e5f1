// Package cmd implements the rtype command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/rtype"
	"github.com/reoring/rtype/i18n"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// newRootCmd creates the base command when called without any subcommands
func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "rtype",
		Short: "rtype casts documents with runtime type descriptors.",
		Long: `rtype reads type descriptors such as

	{"id":"integer","tags":"string[]","status":"enum('open','closed')"}

and uses them to check JSON or YAML documents, or to print the descriptor
as canonical text, a TypeScript declaration or a JSON Schema.

Descriptors may be given literally or by name, in which case they are
looked up in the "types" map of the configuration file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd, logger: slog.Default()}
	cmd.PersistentPreRunE = mkRunE(c, setup)

	subCommands := []*cobra.Command{
		newCheckCmd(c),
		newFmtCmd(c),
		newTSCmd(c),
		newJSONSchemaCmd(c),
	}

	addGlobalFlags(cmd.PersistentFlags())

	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// setup applies the global flags before any sub-command runs.
func setup(cmd *Command, args []string) error {
	level := slog.LevelWarn
	if flagVerbose.Bool(cmd) {
		level = slog.LevelDebug
	}
	cmd.logger = slog.New(slog.NewTextHandler(cmd.root.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(flagConfig.String(cmd))
	if err != nil {
		return err
	}
	cmd.config = cfg

	lang := flagLang.String(cmd)
	if lang == "" {
		lang = cfg.Lang
	}
	if lang != "" {
		i18n.SetLanguage(lang)
	}
	cmd.logger.Debug("configured", "config", flagConfig.String(cmd), "types", len(cfg.Types), "lang", lang)
	return nil
}

// Main runs the rtype tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:])
	if err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	cmd, err := New(args)
	if err != nil {
		return err
	}
	return cmd.Run(ctx)
}

type Command struct {
	// The currently active command.
	*cobra.Command

	root *cobra.Command

	stdin  io.Reader
	config *Config
	logger *slog.Logger
	parser *rtype.Parser

	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.root.ErrOrStderr().Write(b)
}

// Stderr returns a writer that should be used for error messages. Writing
// to it makes the command exit with a non-zero status.
func (c *Command) Stderr() io.Writer {
	return (*errWriter)(c)
}

// SetOutput directs standard and error output to w.
func (c *Command) SetOutput(w io.Writer) {
	c.root.SetOut(w)
	c.root.SetErr(w)
}

// SetInput replaces standard input.
func (c *Command) SetInput(r io.Reader) {
	c.stdin = r
}

func (c *Command) input() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// ErrPrintedError indicates error messages have been printed to stderr.
var ErrPrintedError = errors.New("terminating because of errors")

func (c *Command) Run(ctx context.Context) error {
	if err := c.root.ExecuteContext(ctx); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}

// New creates the command tree for args.
func New(args []string) (*Command, error) {
	cmd := newRootCmd()
	cmd.root.SetArgs(args)
	// private cache, scoped to this invocation
	cmd.parser = rtype.NewParser()
	return cmd, nil
}

// lookupType resolves name through the configuration file and parses the
// resulting descriptor.
func (c *Command) lookupType(name string) (rtype.Type, error) {
	desc := c.config.resolve(name)
	t, err := c.parser.Parse(desc)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", name, err)
	}
	c.logger.Debug("parsed type", "name", name, "descriptor", t.String())
	return t, nil
}
