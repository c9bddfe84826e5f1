package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Common flags
const (
	flagConfig     flagName = "config"
	flagDuplicates flagName = "duplicates"
	flagFormat     flagName = "format"
	flagLang       flagName = "lang"
	flagMaxDepth   flagName = "max-depth"
	flagMultiline  flagName = "multiline"
	flagType       flagName = "type"
	flagVerbose    flagName = "verbose"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.StringP(string(flagConfig), "c", "", "configuration file with named types")
	f.BoolP(string(flagVerbose), "v", false, "print information about progress")
	f.String(string(flagLang), "", "message language (en|ja)")
}

func addInputFlags(f *pflag.FlagSet) {
	f.String(string(flagFormat), "", "input format for stdin and unknown extensions (json|yaml)")
	f.String(string(flagDuplicates), "reject", "duplicate key policy (reject|warn|ignore)")
	f.Int(string(flagMaxDepth), 512, "maximum nesting depth of input documents")
}

type flagName string

// ensureAdded detects if a flag is being used without it first being
// added to the flagSet.
func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("Cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}
