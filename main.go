package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gonuts/commander"

	"moran/app"
	"moran/webapi"
)

var cmd = &commander.Command{
	UsageLine: os.Args[0] + " analyze|compile|api",
	Short:     "invoke moran as a standalone app or as an api server",
}

func init() {
	cmd.Subcommands = append(app.AllCommands().Subcommands, webapi.AllCommands().Subcommands...)
}

func exit(err error) {
	fmt.Printf("**error**: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := cmd.Dispatch(context.Background(), os.Args[1:]); err != nil {
		exit(err)
	}
}
