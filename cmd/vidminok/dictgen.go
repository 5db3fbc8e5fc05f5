package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/steosofficial/vidminok/analyzer"
)

func newDictgenCmd() *cobra.Command {
	var (
		input  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "dictgen",
		Short: "Зібрати бінарний словник із TSV-лексикону",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := analyzer.CompileLexicon(input, output)
			if err != nil {
				return err
			}
			log.Printf("словник зібрано: %s", output)
			log.Printf("лексем: %d, форм: %d", stats.Lexemes, stats.Forms)
			log.Printf("вузлів: %d, ребер: %d, правил передбачення: %d", stats.Nodes, stats.Edges, stats.PredictRules)
			log.Printf("розмір: %d байт", stats.Bytes)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "lexicon.tsv", "шлях до TSV-лексикону")
	cmd.Flags().StringVarP(&output, "output", "o", analyzer.DictFileName, "шлях до бінарного словника")
	return cmd
}
