package morpher_test

import (
	"errors"
	"testing"

	"github.com/steosofficial/vidminok/morpher"
)

func TestMorphSentencePlain(t *testing.T) {
	// Звичайний режим: кожне слово ставиться в цільовий відмінок незалежно.
	testCases := []struct {
		name     string
		text     string
		caseCode string
		want     string
	}{
		{"узгоджена пара", "червона калина", "ablt", "червоною калиною"},
		{"усі слова відмінюються", "заступник начальника відділу", "datv", "заступнику начальнику відділу"},
		{"число зберігається", "обов'язки", "datv", "обов'язкам"},
		{"невідомі слова без змін", "бухгалтер Zoom-2024!", "datv", "бухгалтеру Zoom-2024!"},
		{"дієслово не має відмінка", "бухгалтер працює", "datv", "бухгалтеру працює"},
		{"пробіли зберігаються", "  головний   бухгалтер  ", "datv", "  головному   бухгалтеру  "},
		{"порожній текст", "", "datv", ""},
		{"лише роздільники", " - !", "gent", " - !"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := testMorpher.MorphSentence(tc.text, tc.caseCode, false)
			if err != nil {
				t.Fatalf("MorphSentence: %v", err)
			}
			if got != tc.want {
				t.Errorf("MorphSentence(%q) = %q, очікується %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestMorphSentencePosition(t *testing.T) {
	// Режим посади: відмінюється прикметникова група та головний іменник,
	// залежний хвіст лишається як є.
	testCases := []struct {
		name     string
		text     string
		caseCode string
		want     string
	}{
		{"прикметник та іменник", "головний бухгалтер", "datv", "головному бухгалтеру"},
		{"хвіст не чіпається", "заступник начальника відділу", "gent", "заступника начальника відділу"},
		{"кілька прикметників", "головний старший бухгалтер відділу", "datv", "головному старшому бухгалтеру відділу"},
		{"дефіс починає нову групу", "водій-охоронець", "gent", "водія-охоронця"},
		{"дефіс із пробілами", "водій - охоронець", "gent", "водія - охоронця"},
		{"невідоме слово завершує групу", "головний Zoom бухгалтер", "datv", "головному Zoom бухгалтер"},
		{"кличний без форми прикметника", "головний бухгалтер", "voct", "головний бухгалтере"},
		{"лише іменник", "директор", "datv", "директору"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := testMorpher.MorphSentence(tc.text, tc.caseCode, true)
			if err != nil {
				t.Fatalf("MorphSentence: %v", err)
			}
			if got != tc.want {
				t.Errorf("MorphSentence(%q) = %q, очікується %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestMorphSentencePositionVsPlain(t *testing.T) {
	// Та сама фраза в різних режимах дає різний результат.
	position, err := testMorpher.MorphSentence("заступник начальника відділу", "datv", true)
	if err != nil {
		t.Fatal(err)
	}
	plain, err := testMorpher.MorphSentence("заступник начальника відділу", "datv", false)
	if err != nil {
		t.Fatal(err)
	}
	if position != "заступнику начальника відділу" {
		t.Errorf("режим посади = %q", position)
	}
	if plain != "заступнику начальнику відділу" {
		t.Errorf("звичайний режим = %q", plain)
	}
}

func TestMorphSentenceUnknownCase(t *testing.T) {
	_, err := testMorpher.MorphSentence("головний бухгалтер", "xyz", true)
	var caseErr *morpher.UnknownCaseError
	if !errors.As(err, &caseErr) {
		t.Fatalf("очікується *UnknownCaseError, отримано %v", err)
	}
}
