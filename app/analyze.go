package app

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonuts/commander"

	"moran/nlp/analyzer"
	"moran/nlp/format/raw"
	"moran/nlp/format/tabular"
	"moran/nlp/ma"
	"moran/util"
)

var (
	inRawFile  string
	inlineText string
	outFile    string
)

func AnalyzeConfigOut() {
	log.Println("Configuration")
	log.Printf("Model:\t\t%s", modelFile)
	log.Printf("Beam:\t\t%v", beamSize)
	log.Printf("Top K:\t\t%v", topK)
	log.Printf("Threads:\t\t%v", numThreads)
	log.Printf("Allomorphs:\t%v", !noAllo)
	if len(inlineText) > 0 {
		log.Printf("Input:\t\tinline text")
	} else if len(inRawFile) > 0 {
		log.Printf("Raw Input:\t%s", inRawFile)
	} else {
		log.Printf("Raw Input:\tstdin")
	}
	if len(outFile) > 0 {
		log.Printf("Output:\t\t%s", outFile)
	} else {
		log.Printf("Output:\t\tstdout")
	}
	log.Println()
}

func Analyze(cmd *commander.Command, args []string) error {
	VerifyFlags(cmd, []string{"m"})
	AnalyzeConfigOut()

	location, found := util.LocateFile(modelFile, DEFAULT_MODEL_DIRS)
	if !found {
		panic(fmt.Sprintf("Model file not found: %v", modelFile))
	}
	log.Println("Found model file", location, " ... loading model")
	opts := analyzer.DefaultOptions()
	opts.BeamSize = beamSize
	opts.NumThreads = numThreads
	opts.IntegrateAllomorphs = !noAllo
	opts.NormalizeNFC = nfc
	anl, err := analyzer.New(location, opts)
	if err != nil {
		panic(fmt.Sprintf("Failed loading model - %v", err))
	}
	log.Println("Loaded", anl.Lexicon().Len(), "lexicon entries")

	var sents []string
	if len(inlineText) > 0 {
		sents = []string{inlineText}
	} else if len(inRawFile) > 0 {
		sents, err = raw.ReadFile(inRawFile, limit)
		if err != nil {
			panic(fmt.Sprintf("Failed reading raw file - %v", err))
		}
	} else {
		sents, err = raw.Read(os.Stdin, limit)
		if err != nil {
			panic(fmt.Sprintf("Failed reading stdin - %v", err))
		}
	}

	log.Println("Running Morphological Analysis on", len(sents), "sentences")
	corpus, err := anl.AnalyzeAll(sents, topK)
	if err != nil {
		return err
	}
	stats := latticeStats(anl, sents)
	log.Println("Built", stats.TotalEdges, "lattice edges over", len(sents), "sentences")
	log.Println("Encountered", stats.UnknownEdges, "occurences of",
		len(stats.UniqUnknown), "unique unknown surfaces")

	if len(outFile) > 0 {
		if err := tabular.WriteFile(outFile, corpus); err != nil {
			return err
		}
		log.Println("Wrote", len(corpus), "analyses to", outFile)
		return nil
	}
	return tabular.Write(os.Stdout, corpus)
}

// latticeStats rebuilds the candidate lattices to aggregate dictionary
// coverage over the batch.
func latticeStats(anl *analyzer.Analyzer, sents []string) *ma.AnalyzeStats {
	stats := new(ma.AnalyzeStats)
	stats.Init()
	for _, sent := range sents {
		stats.AddLattice(anl.Lexicon().BuildLattice(sent))
	}
	return stats
}

func AnalyzeCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Analyze,
		UsageLine: "analyze <file options> [arguments]",
		Short:     "run morphological analysis on raw input",
		Long: `
run morphological analysis on raw input

	$ ./moran analyze -m <model file> [-i <raw file>|-text <text>] [options]

`,
		Flag: *flag.NewFlagSet("analyze", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "m", "", "Compiled model file")
	cmd.Flag.StringVar(&inRawFile, "i", "", "Input raw file, one sentence per line (default: stdin)")
	cmd.Flag.StringVar(&inlineText, "text", "", "Analyze a single inline text")
	cmd.Flag.StringVar(&outFile, "out", "", "Output file (default: stdout)")
	cmd.Flag.IntVar(&topK, "k", 1, "Number of best paths per sentence")
	cmd.Flag.IntVar(&beamSize, "b", analyzer.DefaultBeamSize, "Beam size")
	cmd.Flag.IntVar(&numThreads, "threads", 1, "Number of analysis workers")
	cmd.Flag.BoolVar(&noAllo, "noallo", false, "Do not integrate allomorphic variants")
	cmd.Flag.BoolVar(&nfc, "nfc", false, "NFC-normalize input before analysis")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit input sentences")
	return cmd
}
