package morpher_test

import (
	"strings"
	"testing"

	"github.com/steosofficial/vidminok/analyzer"
	"github.com/steosofficial/vidminok/morpher"
)

func TestRuleValidation(t *testing.T) {
	valid := morpher.CorrectionRule{
		Name:    "тестове",
		Match:   morpher.ExactWords("слово"),
		Cases:   morpher.AllCases,
		Genders: morpher.AllGenders,
		Apply:   morpher.KeepOriginal(),
	}

	testCases := []struct {
		name    string
		mutate  func(r *morpher.CorrectionRule)
		wantSub string
	}{
		{"порожня назва", func(r *morpher.CorrectionRule) { r.Name = "" }, "порожня назва"},
		{"без умови", func(r *morpher.CorrectionRule) { r.Match = nil }, "умову"},
		{"без перетворення", func(r *morpher.CorrectionRule) { r.Apply = nil }, "перетворення"},
		{"порожні відмінки", func(r *morpher.CorrectionRule) { r.Cases = 0 }, "відмінків"},
		{"порожні роди", func(r *morpher.CorrectionRule) { r.Genders = 0 }, "родів"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule := valid
			tc.mutate(&rule)
			_, err := morpher.New(testAnalyzer, morpher.WithRules([]morpher.CorrectionRule{rule}))
			if err == nil {
				t.Fatal("очікується помилка конфігурації")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("помилка %q не містить %q", err.Error(), tc.wantSub)
			}
		})
	}
}

func TestCustomRuleFirstMatchWins(t *testing.T) {
	// Користувацьке правило попереду стандартних перехоплює слово.
	rules := append([]morpher.CorrectionRule{{
		Name:    "калина незмінювана",
		Match:   morpher.ExactWords("калина"),
		Cases:   morpher.AllCases,
		Genders: morpher.AllGenders,
		Apply:   morpher.KeepOriginal(),
	}}, morpher.DefaultRules()...)

	custom, err := morpher.New(testAnalyzer, morpher.WithRules(rules))
	if err != nil {
		t.Fatal(err)
	}

	got, err := custom.MorphWord("калина", "ablt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "калина" {
		t.Errorf("MorphWord = %q, очікується незмінене слово", got)
	}

	// Стандартний морфер те саме слово відмінює.
	got, err = testMorpher.MorphWord("калина", "ablt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "калиною" {
		t.Errorf("MorphWord = %q, очікується %q", got, "калиною")
	}
}

func TestEmptyRuleSet(t *testing.T) {
	// Порожній набір правил легальний: форма аналізатора повертається як є.
	bare, err := morpher.New(testAnalyzer, morpher.WithRules(nil))
	if err != nil {
		t.Fatal(err)
	}
	got, err := bare.MorphWord("директор", "datv")
	if err != nil {
		t.Fatal(err)
	}
	if got != "директорові" {
		t.Errorf("MorphWord без правил = %q, очікується %q", got, "директорові")
	}
}

func TestCaseSetHas(t *testing.T) {
	s := morpher.CasesOf(analyzer.Dative, analyzer.Locative)
	if !s.Has(analyzer.Dative) || !s.Has(analyzer.Locative) {
		t.Error("множина не містить доданих відмінків")
	}
	if s.Has(analyzer.Genitive) {
		t.Error("множина містить зайвий відмінок")
	}
}

func TestGenderSetHas(t *testing.T) {
	s := morpher.GendersOf(analyzer.Feminine)
	if !s.Has(analyzer.Feminine) {
		t.Error("множина не містить доданого роду")
	}
	if s.Has(analyzer.Masculine) || s.Has(analyzer.GenderUnknown) {
		t.Error("множина містить зайвий рід")
	}
}

func TestDativeRuleSkipsOtherCases(t *testing.T) {
	// Правило паралельного давального не чіпає місцевий відмінок.
	got, err := testMorpher.MorphWord("Тарас", "loct")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Тарасові" {
		t.Errorf("MorphWord = %q, очікується %q", got, "Тарасові")
	}
}
