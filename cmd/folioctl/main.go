// Command folioctl runs maintenance and reporting tasks against the folio
// database.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&migrateCmd{}, "maintenance")
	commander.Register(&recomputeCmd{}, "maintenance")
	commander.Register(&tokenCmd{}, "maintenance")

	commander.Register(&closeCmd{}, "prices")

	commander.Register(&reportCmd{}, "reports")
	commander.Register(&gainCmd{}, "reports")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
