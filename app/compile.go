package app

import (
	"flag"
	"fmt"
	"log"

	"github.com/gonuts/commander"

	"moran/nlp/format/lex"
	"moran/nlp/ma"
)

var (
	lexFile    string
	ngramsFile string
	outModel   string
	modelName  string
	lmOrder    int
)

func Compile(cmd *commander.Command, args []string) error {
	VerifyFlags(cmd, []string{"lex", "o"})

	log.Println("Reading lexicon file", lexFile)
	entries, err := lex.ReadEntriesFile(lexFile)
	if err != nil {
		panic(fmt.Sprintf("Failed reading lexicon file - %v", err))
	}
	var counts []lex.NgramCount
	if len(ngramsFile) > 0 {
		counts, err = lex.ReadNgramsFile(ngramsFile)
		if err != nil {
			panic(fmt.Sprintf("Failed reading n-gram counts file - %v", err))
		}
		log.Println("Read", len(counts), "n-gram count rows")
	} else {
		log.Println("No n-gram counts given; compiling with unigram floor only")
	}

	payload, err := ma.CompileModel(entries, counts, ma.CompileOptions{
		Name:  modelName,
		Order: lmOrder,
	})
	if err != nil {
		return err
	}
	if err := ma.WriteModel(outModel, payload); err != nil {
		return err
	}
	log.Println("Wrote model", outModel, "with", len(payload.Entries),
		"entries,", len(payload.Ngrams), "n-grams, order", payload.Order)
	return nil
}

func CompileCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Compile,
		UsageLine: "compile <file options> [arguments]",
		Short:     "compile lexicon and n-gram counts into a binary model",
		Long: `
compile lexicon and n-gram counts into a binary model

	$ ./moran compile -lex <lexicon file> -ngrams <counts file> -o <model file> [options]

`,
		Flag: *flag.NewFlagSet("compile", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&lexFile, "lex", "", "Lexicon TSV file")
	cmd.Flag.StringVar(&ngramsFile, "ngrams", "", "N-gram counts TSV file")
	cmd.Flag.StringVar(&outModel, "o", "", "Output model file")
	cmd.Flag.StringVar(&modelName, "name", "", "Model name")
	cmd.Flag.IntVar(&lmOrder, "order", 2, "Language model order")
	return cmd
}
