// vidminok - консольна утиліта відмінювання українських ПІБ, посад і фраз.
// Без аргументів запускається інтерактивна консоль; підкоманди name,
// sentence та serve дають разовий і серверний режими, dictgen збирає
// бінарний словник із текстового лексикону.
package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steosofficial/vidminok/analyzer"
	"github.com/steosofficial/vidminok/morpher"
)

var dictPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vidminok",
		Short: "Відмінювання українських ПІБ, посад і фраз",
		Long: `vidminok відмінює українські ПІБ, назви посад і довільні фрази
в сім відмінків. Без аргументів запускається інтерактивна консоль.

Приклади:
  vidminok name "Іваненко Тарас Петрович" --case datv
  vidminok sentence "головний бухгалтер" --case gent --position
  vidminok serve --addr :8554
  vidminok dictgen --input lexicon.tsv --output morph.dawg`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildMorpher()
			if err != nil {
				return err
			}
			return runInteractive(m)
		},
	}
	root.PersistentFlags().StringVar(&dictPath, "dict", "",
		"шлях до бінарного словника (типово: $"+analyzer.EnvDictPath+" або поруч із пакетом)")
	root.AddCommand(newNameCmd(), newSentenceCmd(), newServeCmd(), newDictgenCmd())
	return root
}

// buildMorpher завантажує словник (з прапорця --dict або за типовими
// шляхами) і створює морфер.
func buildMorpher() (*morpher.Morpher, error) {
	var (
		a   *analyzer.MorphAnalyzer
		err error
	)
	if dictPath != "" {
		a, err = analyzer.Load(dictPath)
	} else {
		a, err = analyzer.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	return morpher.New(a)
}

func newNameCmd() *cobra.Command {
	var caseCode string
	cmd := &cobra.Command{
		Use:   "name [ПІБ]",
		Short: "Відмінити ПІБ (Прізвище Ім'я По батькові)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildMorpher()
			if err != nil {
				return err
			}
			out, err := m.MorphName(strings.Join(args, " "), caseCode)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&caseCode, "case", "c", "gent",
		"код відмінка: nomn, gent, datv, accs, ablt, loct, voct")
	return cmd
}

func newSentenceCmd() *cobra.Command {
	var (
		caseCode string
		position bool
	)
	cmd := &cobra.Command{
		Use:   "sentence [фраза]",
		Short: "Відмінити фразу або назву посади",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildMorpher()
			if err != nil {
				return err
			}
			out, err := m.MorphSentence(strings.Join(args, " "), caseCode, position)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&caseCode, "case", "c", "gent",
		"код відмінка: nomn, gent, datv, accs, ablt, loct, voct")
	cmd.Flags().BoolVarP(&position, "position", "p", false,
		"режим посади: відмінюється лише прикметникова група та головний іменник")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
