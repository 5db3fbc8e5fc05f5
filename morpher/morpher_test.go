package morpher_test

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/steosofficial/vidminok/analyzer"
	"github.com/steosofficial/vidminok/morpher"
)

// Словниковий аналізатор має задовольняти інтерфейс морфера.
var _ morpher.Analyzer = (*analyzer.MorphAnalyzer)(nil)

var (
	testAnalyzer *analyzer.MorphAnalyzer
	testMorpher  *morpher.Morpher
)

// TestMain збирає тестовий словник і створює спільний морфер для всіх
// тестів пакета.
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "vidminok-morpher-*")
	if err != nil {
		log.Fatalf("не вдалося створити тимчасовий каталог: %v", err)
	}

	dictPath := filepath.Join(tmpDir, analyzer.DictFileName)
	if _, err := analyzer.CompileLexicon(filepath.Join("testdata", "lexicon.tsv"), dictPath); err != nil {
		log.Fatalf("не вдалося зібрати тестовий словник: %v", err)
	}

	testAnalyzer, err = analyzer.Load(dictPath)
	if err != nil {
		log.Fatalf("не вдалося завантажити тестовий словник: %v", err)
	}

	testMorpher, err = morpher.New(testAnalyzer)
	if err != nil {
		log.Fatalf("не вдалося створити морфер: %v", err)
	}

	code := m.Run()

	testAnalyzer.Close()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestNewNilAnalyzer(t *testing.T) {
	if _, err := morpher.New(nil); err == nil {
		t.Error("New(nil) має повертати помилку")
	}
}

func TestMorphWord(t *testing.T) {
	testCases := []struct {
		name     string
		word     string
		caseCode string
		want     string
	}{
		{"давальний з паралельною формою", "директор", "datv", "директору"},
		{"регістр першої літери", "Директор", "datv", "Директору"},
		{"родовий", "бухгалтер", "gent", "бухгалтера"},
		{"незмінюване слово", "метро", "gent", "метро"},
		{"невідоме слово без змін", "xerox", "datv", "xerox"},
		{"кличний", "бухгалтер", "voct", "бухгалтере"},
		{"порожній рядок", "", "datv", ""},
		{"прізвище на -ко", "Іваненко", "ablt", "Іваненком"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := testMorpher.MorphWord(tc.word, tc.caseCode)
			if err != nil {
				t.Fatalf("MorphWord(%q, %q): %v", tc.word, tc.caseCode, err)
			}
			if got != tc.want {
				t.Errorf("MorphWord(%q, %q) = %q, очікується %q", tc.word, tc.caseCode, got, tc.want)
			}
		})
	}
}

func TestMorphWordUnknownCase(t *testing.T) {
	_, err := testMorpher.MorphWord("бухгалтер", "xyz")
	if err == nil {
		t.Fatal("очікується помилка відмінка")
	}
	var caseErr *morpher.UnknownCaseError
	if !errors.As(err, &caseErr) {
		t.Fatalf("очікується *UnknownCaseError, отримано %T", err)
	}
	if caseErr.Code != "xyz" {
		t.Errorf("Code = %q, очікується %q", caseErr.Code, "xyz")
	}
}

func TestParseCaseCode(t *testing.T) {
	if c, err := morpher.ParseCaseCode(" GENT "); err != nil || c != analyzer.Genitive {
		t.Errorf("ParseCaseCode(\" GENT \") = (%v, %v)", c, err)
	}
	if _, err := morpher.ParseCaseCode("називний"); err == nil {
		t.Error("ParseCaseCode(\"називний\") має повертати помилку")
	}
}
