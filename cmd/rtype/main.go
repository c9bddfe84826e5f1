// Command rtype checks JSON and YAML documents against type descriptors and
// projects descriptors to TypeScript and JSON Schema.
package main

import (
	"os"

	"github.com/reoring/rtype/cmd/rtype/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
