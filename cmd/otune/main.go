// cmd/otune/main.go
package main

import (
	cmd "github.com/mjarrell/otune/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the otune CLI application by delegating to the
// cobra root command defined in the otune package.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
