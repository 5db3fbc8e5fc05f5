// Пакет morpher відмінює українські ПІБ, назви посад і довільні фрази
// в сім відмінків. Словникову роботу виконує аналізатор, поверх нього
// працюють правила-коректори та евристика визначення роду.
package morpher

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/steosofficial/vidminok/analyzer"
)

// Analyzer - словниковий рушій, потрібний морферу. *analyzer.MorphAnalyzer
// реалізує інтерфейс; у тестах його підмінюють легшими реалізаціями.
type Analyzer interface {
	Parse(word string) []*analyzer.Parsed
	Lexeme(p *analyzer.Parsed) []*analyzer.Parsed
	Inflect(p *analyzer.Parsed, target analyzer.Case, hint analyzer.Gender) (string, bool)
}

// Morpher - потокобезпечний відмінювач: після створення стан лише читається.
type Morpher struct {
	analyzer Analyzer
	rules    *ruleEngine

	namePriority bool // у конфліктах роду перемагає ім'я, а не по батькові
	plainSurname bool // не піднімати прізвище у верхній регістр
}

// Option налаштовує морфер під час створення.
type Option func(*config)

type config struct {
	rules        []CorrectionRule
	namePriority bool
	plainSurname bool
}

// WithRules замінює стандартний набір правил-коректорів.
func WithRules(rules []CorrectionRule) Option {
	return func(c *config) { c.rules = rules }
}

// WithGivenNamePriority змушує у конфліктах роду довіряти імені,
// а не по батькові.
func WithGivenNamePriority() Option {
	return func(c *config) { c.namePriority = true }
}

// WithPlainSurname вимикає верхній регістр прізвища у результатах MorphName.
func WithPlainSurname() Option {
	return func(c *config) { c.plainSurname = true }
}

// New створює морфер поверх аналізатора. Правила перевіряються одразу:
// некоректна конфігурація - помилка створення.
func New(a Analyzer, opts ...Option) (*Morpher, error) {
	if a == nil {
		return nil, errors.New("morpher: аналізатор не заданий")
	}

	cfg := config{rules: DefaultRules()}
	for _, opt := range opts {
		opt(&cfg)
	}

	engine, err := newRuleEngine(cfg.rules)
	if err != nil {
		return nil, err
	}

	return &Morpher{
		analyzer:     a,
		rules:        engine,
		namePriority: cfg.namePriority,
		plainSurname: cfg.plainSurname,
	}, nil
}

// inflectionContext - параметри одного запиту на відмінювання.
type inflectionContext struct {
	target analyzer.Case
	gender analyzer.Gender
}

// morphToken відмінює одне слово. Невідоме слово повертається без змін:
// промах аналізатора не зупиняє обробку.
func (m *Morpher) morphToken(word string, ctx inflectionContext) string {
	parses := m.analyzer.Parse(word)
	if len(parses) == 0 {
		return word
	}
	return m.inflectParsed(word, pickParse(parses, ctx.gender), ctx)
}

// pickParse обирає розбір, що узгоджується з підказкою роду. Розбори
// відсортовані за спаданням упевненості, тож перший сумісний - найкращий.
func pickParse(parses []*analyzer.Parsed, gender analyzer.Gender) *analyzer.Parsed {
	if gender == analyzer.GenderUnknown {
		return parses[0]
	}
	for _, p := range parses {
		if p.Tag.Gender == gender || p.Tag.Gender == analyzer.GenderUnknown {
			return p
		}
	}
	return parses[0]
}

// inflectParsed ставить обраний розбір у цільовий відмінок, пропускає
// результат крізь правила і відновлює регістр першої літери.
func (m *Morpher) inflectParsed(word string, p *analyzer.Parsed, ctx inflectionContext) string {
	inflected, ok := m.analyzer.Inflect(p, ctx.target, ctx.gender)
	if !ok {
		return word
	}

	gender := ctx.gender
	if gender == analyzer.GenderUnknown {
		gender = p.Tag.Gender
	}
	corrected := m.rules.apply(&TransformContext{
		Word:      word,
		Inflected: inflected,
		Parse:     p,
		Target:    ctx.target,
		Gender:    gender,
		Analyzer:  m.analyzer,
	})
	return matchCapitalization(word, corrected)
}

// matchCapitalization переносить регістр першої літери вихідного слова
// на результат. Словник зберігає все в нижньому регістрі.
func matchCapitalization(original, inflected string) string {
	for _, r := range original {
		if unicode.IsUpper(r) {
			return cases.Title(language.Ukrainian).String(inflected)
		}
		break
	}
	return inflected
}

// MorphWord відмінює одне слово в заданий відмінок. Код відмінка -
// один із nomn, gent, datv, accs, ablt, loct, voct.
func (m *Morpher) MorphWord(word, caseCode string) (string, error) {
	target, err := ParseCaseCode(caseCode)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return word, nil
	}
	return m.morphToken(trimmed, inflectionContext{target: target}), nil
}
