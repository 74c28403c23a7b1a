// Command traitdex is the implementor-index CLI.
package main

import "github.com/docforge/traitdex/internal/cli"

func main() {
	cli.Execute()
}
