package app

import (
	"log"
	"os"

	"github.com/gonuts/commander"
)

var (
	modelFile  string
	beamSize   int
	topK       int
	numThreads int
	noAllo     bool
	nfc        bool
	limit      int
)

var DEFAULT_MODEL_DIRS = []string{".", "data", "models"}

func VerifyFlags(cmd *commander.Command, required []string) {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value.String() == "" {
			log.Printf("Required flag %s not set", name)
			cmd.Usage()
			os.Exit(1)
		}
	}
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0] + " analyze|compile [arguments]",
		Short:     "morphological analysis application",
		Subcommands: []*commander.Command{
			AnalyzeCmd(),
			CompileCmd(),
		},
	}
	return cmd
}
