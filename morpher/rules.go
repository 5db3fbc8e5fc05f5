// Файл rules.go містить рушій правил-коректорів. Правила виправляють
// форму, яку обрав словниковий аналізатор: тримають незмінювані слова,
// застосовують особливі парадигми прізвищ, обирають паралельні закінчення.
// Правила перевіряються по порядку, застосовується перше, що підійшло.
package morpher

import (
	"fmt"
	"strings"

	"github.com/steosofficial/vidminok/analyzer"
)

// CaseSet - бітова множина відмінків, у яких правило активне.
type CaseSet uint16

// CasesOf збирає множину з переліку відмінків.
func CasesOf(cases ...analyzer.Case) CaseSet {
	var s CaseSet
	for _, c := range cases {
		s |= 1 << uint(c)
	}
	return s
}

// Has перевіряє, чи входить відмінок у множину.
func (s CaseSet) Has(c analyzer.Case) bool {
	return s&(1<<uint(c)) != 0
}

// GenderSet - бітова множина родів, для яких правило активне.
type GenderSet uint8

// GendersOf збирає множину з переліку родів.
func GendersOf(genders ...analyzer.Gender) GenderSet {
	var s GenderSet
	for _, g := range genders {
		s |= 1 << uint(g)
	}
	return s
}

// Has перевіряє, чи входить рід у множину.
func (s GenderSet) Has(g analyzer.Gender) bool {
	return s&(1<<uint(g)) != 0
}

// AllCases - усі сім відмінків.
var AllCases = CasesOf(
	analyzer.Nominative, analyzer.Genitive, analyzer.Dative,
	analyzer.Accusative, analyzer.Instrumental, analyzer.Locative,
	analyzer.Vocative,
)

// AllGenders - будь-який рід, включно з невідомим: у режимі фрази рід
// слова ніхто не підказує.
var AllGenders = GendersOf(
	analyzer.GenderUnknown, analyzer.Masculine,
	analyzer.Feminine, analyzer.Neuter,
)

// TransformContext - усе, що правило знає про слово в момент перевірки.
type TransformContext struct {
	Word      string           // вихідне слово, як його передав викликач
	Inflected string           // форма, яку обрав аналізатор (нижній регістр)
	Parse     *analyzer.Parsed // розбір вихідного слова, може бути nil
	Target    analyzer.Case    // цільовий відмінок
	Gender    analyzer.Gender  // ефективний рід (підказка або рід розбору)
	Analyzer  Analyzer         // доступ до словника для складних перетворень
}

// Matcher - умова застосування правила.
type Matcher interface {
	Matches(tx *TransformContext) bool
}

type matcherFunc func(tx *TransformContext) bool

func (f matcherFunc) Matches(tx *TransformContext) bool { return f(tx) }

// Transform обчислює виправлену форму слова.
type Transform func(tx *TransformContext) string

// CorrectionRule - одне правило-коректор.
type CorrectionRule struct {
	Name    string    // коротка назва для повідомлень про помилки
	Match   Matcher   // умова на слово та його розбір
	Cases   CaseSet   // відмінки, в яких правило активне
	Genders GenderSet // роди, для яких правило активне
	Apply   Transform // перетворення форми
}

// --- УМОВИ ---

// ExactWords спрацьовує на точний збіг слова (без урахування регістру).
func ExactWords(words ...string) Matcher {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return matcherFunc(func(tx *TransformContext) bool {
		_, ok := set[strings.ToLower(tx.Word)]
		return ok
	})
}

// WordSuffix спрацьовує, коли вихідне слово закінчується одним із суфіксів.
func WordSuffix(suffixes ...string) Matcher {
	return matcherFunc(func(tx *TransformContext) bool {
		word := strings.ToLower(tx.Word)
		for _, s := range suffixes {
			if strings.HasSuffix(word, s) {
				return true
			}
		}
		return false
	})
}

// NotWordSuffix спрацьовує, коли вихідне слово НЕ закінчується жодним
// із суфіксів.
func NotWordSuffix(suffixes ...string) Matcher {
	inner := WordSuffix(suffixes...)
	return matcherFunc(func(tx *TransformContext) bool {
		return !inner.Matches(tx)
	})
}

// InflectedSuffix спрацьовує, коли обрана аналізатором форма закінчується
// одним із суфіксів.
func InflectedSuffix(suffixes ...string) Matcher {
	return matcherFunc(func(tx *TransformContext) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(tx.Inflected, s) {
				return true
			}
		}
		return false
	})
}

// HasSurnameTag спрацьовує, коли розбір позначено тегом прізвища.
func HasSurnameTag() Matcher {
	return matcherFunc(func(tx *TransformContext) bool {
		return tx.Parse != nil && tx.Parse.Tag.Surname
	})
}

// AllOf спрацьовує, коли виконуються всі умови одночасно.
func AllOf(matchers ...Matcher) Matcher {
	return matcherFunc(func(tx *TransformContext) bool {
		for _, m := range matchers {
			if !m.Matches(tx) {
				return false
			}
		}
		return true
	})
}

// --- ПЕРЕТВОРЕННЯ ---

// KeepOriginal лишає слово незмінним.
func KeepOriginal() Transform {
	return func(tx *TransformContext) string {
		return strings.ToLower(tx.Word)
	}
}

// CaseSuffixes відкидає stemSuffix і додає закінчення цільового відмінка.
// Якщо закінчення для відмінка не задано, форма аналізатора лишається.
func CaseSuffixes(stemSuffix string, endings map[analyzer.Case]string) Transform {
	return func(tx *TransformContext) string {
		word := strings.ToLower(tx.Word)
		ending, ok := endings[tx.Target]
		if !ok || !strings.HasSuffix(word, stemSuffix) {
			return tx.Inflected
		}
		return strings.TrimSuffix(word, stemSuffix) + ending
	}
}

// PreferParallelDative шукає серед форм лексеми паралельний давальний
// на -у/-ю і віддає перевагу йому.
func PreferParallelDative() Transform {
	return func(tx *TransformContext) string {
		if tx.Analyzer == nil || tx.Parse == nil {
			return tx.Inflected
		}
		number := tx.Parse.Tag.Number
		if number == analyzer.NumberUnknown {
			number = analyzer.Singular
		}
		for _, f := range tx.Analyzer.Lexeme(tx.Parse) {
			if f.Tag.POS != tx.Parse.Tag.POS || f.Tag.Case != analyzer.Dative || f.Tag.Number != number {
				continue
			}
			if strings.HasSuffix(f.Word, "у") || strings.HasSuffix(f.Word, "ю") {
				return f.Word
			}
		}
		return tx.Inflected
	}
}

// --- РУШІЙ ---

type ruleEngine struct {
	rules []CorrectionRule
}

// newRuleEngine перевіряє повноту кожного правила. Помилка конфігурації
// виявляється під час створення морфера, а не посеред відмінювання.
func newRuleEngine(rules []CorrectionRule) (*ruleEngine, error) {
	for i, r := range rules {
		switch {
		case r.Name == "":
			return nil, fmt.Errorf("правило %d: порожня назва", i)
		case r.Match == nil:
			return nil, fmt.Errorf("правило %d (%q): не задано умову", i, r.Name)
		case r.Apply == nil:
			return nil, fmt.Errorf("правило %d (%q): не задано перетворення", i, r.Name)
		case r.Cases == 0:
			return nil, fmt.Errorf("правило %d (%q): порожня множина відмінків", i, r.Name)
		case r.Genders == 0:
			return nil, fmt.Errorf("правило %d (%q): порожня множина родів", i, r.Name)
		}
	}
	return &ruleEngine{rules: rules}, nil
}

// apply пропускає слово крізь ланцюжок правил: застосовується перше,
// чиї множини та умова збіглися. Жодне не підійшло - форма аналізатора
// повертається як є.
func (e *ruleEngine) apply(tx *TransformContext) string {
	for _, r := range e.rules {
		if !r.Cases.Has(tx.Target) || !r.Genders.Has(tx.Gender) {
			continue
		}
		if !r.Match.Matches(tx) {
			continue
		}
		return r.Apply(tx)
	}
	return tx.Inflected
}

// DefaultRules - стандартний набір правил для української мови.
func DefaultRules() []CorrectionRule {
	return []CorrectionRule{
		{
			Name:    "незмінювані запозичення",
			Match:   ExactWords("метро", "кіно", "таксі", "журі", "бюро", "депо", "шосе", "кенгуру"),
			Cases:   AllCases,
			Genders: AllGenders,
			Apply:   KeepOriginal(),
		},
		{
			Name:    "жіночі прізвища без закінчення -а/-я",
			Match:   AllOf(HasSurnameTag(), NotWordSuffix("а", "я")),
			Cases:   AllCases,
			Genders: GendersOf(analyzer.Feminine),
			Apply:   KeepOriginal(),
		},
		{
			Name:    "чоловічі прізвища на -ко",
			Match:   AllOf(HasSurnameTag(), WordSuffix("ко")),
			Cases:   AllCases,
			Genders: GendersOf(analyzer.Masculine),
			Apply: CaseSuffixes("ко", map[analyzer.Case]string{
				analyzer.Nominative:   "ко",
				analyzer.Genitive:     "ка",
				analyzer.Dative:       "ку",
				analyzer.Accusative:   "ка",
				analyzer.Instrumental: "ком",
				analyzer.Locative:     "ку",
				analyzer.Vocative:     "ку",
			}),
		},
		{
			Name:    "давальний на -ові/-еві/-єві: паралельна форма на -у/-ю",
			Match:   InflectedSuffix("ові", "еві", "єві"),
			Cases:   CasesOf(analyzer.Dative),
			Genders: AllGenders,
			Apply:   PreferParallelDative(),
		},
	}
}
