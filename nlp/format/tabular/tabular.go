package tabular

// Package tabular writes analysis results as tab-separated token rows:
// one "# path <rank> score <score>" header per path, then
// index/surface/lemma/tag/start/end rows, and a blank line after each
// sentence.

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"moran/nlp/types"
)

func Write(writer io.Writer, corpus [][]types.Analysis) error {
	buf := bufio.NewWriter(writer)
	for _, analyses := range corpus {
		for rank, analysis := range analyses {
			fmt.Fprintf(buf, "# path %d score %.6f\n", rank+1, analysis.Score)
			for i, token := range analysis.Tokens {
				fmt.Fprintf(buf, "%d\t%s\t%s\t%s\t%d\t%d\n",
					i+1, token.Surface, token.Lemma, token.Tag,
					token.Start, token.End)
			}
		}
		fmt.Fprintln(buf)
	}
	return buf.Flush()
}

func WriteFile(filename string, corpus [][]types.Analysis) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return Write(file, corpus)
}
