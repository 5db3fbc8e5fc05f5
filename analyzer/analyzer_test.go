package analyzer_test

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/steosofficial/vidminok/analyzer"
)

var testAnalyzer *analyzer.MorphAnalyzer

// TestMain збирає словник з testdata/lexicon.tsv у тимчасовий каталог
// і завантажує його один раз для всіх тестів пакета.
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "vidminok-dict-*")
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

	code := m.Run()

	testAnalyzer.Close()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// findParse шукає серед розборів той, що має потрібний рядок тегів.
func findParse(parses []*analyzer.Parsed, tags string) *analyzer.Parsed {
	for _, p := range parses {
		if p.Tags == tags {
			return p
		}
	}
	return nil
}

func TestParseDictionary(t *testing.T) {
	testCases := []struct {
		word      string
		wantLemma string
		wantTags  string
	}{
		{"бухгалтером", "бухгалтер", "NOUN,anim,masc,sing,ablt"},
		{"ользі", "ольга", "NOUN,anim,femn,Name,sing,datv"},
		{"ользі", "ольга", "NOUN,anim,femn,Name,sing,loct"},
		{"іваненка", "іваненко", "NOUN,anim,masc,Surn,sing,gent"},
		{"обов'язками", "обов'язок", "NOUN,inan,masc,plur,ablt"},
		{"червоною", "червоний", "ADJF,femn,sing,ablt"},
		{"працюють", "працювати", "VERB,plur"},
	}

	for _, tc := range testCases {
		t.Run(tc.word+"/"+tc.wantTags, func(t *testing.T) {
			parses := testAnalyzer.Parse(tc.word)
			if len(parses) == 0 {
				t.Fatalf("Parse(%q) нічого не знайшов", tc.word)
			}
			p := findParse(parses, tc.wantTags)
			if p == nil {
				t.Fatalf("Parse(%q): немає розбору з тегами %q, є %d інших", tc.word, tc.wantTags, len(parses))
			}
			if p.Lemma != tc.wantLemma {
				t.Errorf("Parse(%q): лема = %q, очікується %q", tc.word, p.Lemma, tc.wantLemma)
			}
			if p.Predicted() {
				t.Errorf("Parse(%q): словникове слово позначено як передбачене", tc.word)
			}
		})
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	parses := testAnalyzer.Parse("Іваненко")
	if len(parses) == 0 {
		t.Fatal("Parse(\"Іваненко\") нічого не знайшов")
	}
	// Поле Word зберігає слово так, як його передав викликач.
	if parses[0].Word != "Іваненко" {
		t.Errorf("Word = %q, очікується %q", parses[0].Word, "Іваненко")
	}
	if parses[0].Lemma != "іваненко" {
		t.Errorf("Lemma = %q, очікується %q", parses[0].Lemma, "іваненко")
	}
}

func TestParseRanking(t *testing.T) {
	// "відділу" - родовий, давальний і місцевий: розбори впорядковані
	// за спаданням Score у порядку лексикону.
	parses := testAnalyzer.Parse("відділу")
	if len(parses) != 3 {
		t.Fatalf("Parse(\"відділу\"): %d розборів, очікується 3", len(parses))
	}
	if parses[0].Tags != "NOUN,inan,masc,sing,gent" {
		t.Errorf("перший розбір = %q, очікується родовий", parses[0].Tags)
	}
	if parses[0].Score != 1.0 {
		t.Errorf("Score першого розбору = %v, очікується 1.0", parses[0].Score)
	}
	for i := 1; i < len(parses); i++ {
		if parses[i].Score >= parses[i-1].Score {
			t.Errorf("Score не спадає: %v після %v", parses[i].Score, parses[i-1].Score)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	for _, word := range []string{"xerox", "qwrt", ""} {
		if parses := testAnalyzer.Parse(word); len(parses) != 0 {
			t.Errorf("Parse(%q): %d розборів, очікується 0", word, len(parses))
		}
	}
}

func TestParsePredicted(t *testing.T) {
	t.Run("іменник", func(t *testing.T) {
		parses := testAnalyzer.Parse("мегабухгалтер")
		if len(parses) != 1 {
			t.Fatalf("Parse: %d розборів, очікується 1", len(parses))
		}
		p := parses[0]
		if !p.Predicted() {
			t.Error("розбір не позначено як передбачений")
		}
		if p.Score >= 1 {
			t.Errorf("Score = %v, передбачення має ранжуватися нижче за словник", p.Score)
		}
		if p.Lemma != "мегабухгалтер" {
			t.Errorf("Lemma = %q, очікується %q", p.Lemma, "мегабухгалтер")
		}
		if p.Tags != "NOUN,anim,masc,sing,nomn" {
			t.Errorf("Tags = %q", p.Tags)
		}
	})

	t.Run("прізвище", func(t *testing.T) {
		parses := testAnalyzer.Parse("бубенко")
		if len(parses) != 1 {
			t.Fatalf("Parse: %d розборів, очікується 1", len(parses))
		}
		p := parses[0]
		if !p.Tag.Surname {
			t.Errorf("Tags = %q, очікується тег прізвища", p.Tags)
		}
		if p.Lemma != "бубенко" {
			t.Errorf("Lemma = %q, очікується %q", p.Lemma, "бубенко")
		}
	})
}

func TestInflect(t *testing.T) {
	testCases := []struct {
		name   string
		word   string
		target analyzer.Case
		hint   analyzer.Gender
		want   string
		wantOK bool
	}{
		{"родовий іменника", "бухгалтер", analyzer.Genitive, analyzer.GenderUnknown, "бухгалтера", true},
		{"давальний без правил", "бухгалтер", analyzer.Dative, analyzer.GenderUnknown, "бухгалтерові", true},
		{"число зберігається", "бухгалтери", analyzer.Dative, analyzer.GenderUnknown, "бухгалтерам", true},
		{"прикметник за підказкою роду", "головний", analyzer.Dative, analyzer.Feminine, "головній", true},
		{"прикметник без підказки", "головний", analyzer.Dative, analyzer.GenderUnknown, "головному", true},
		{"незмінюване слово", "метро", analyzer.Genitive, analyzer.GenderUnknown, "метро", true},
		{"знахідний неістоти", "відділ", analyzer.Accusative, analyzer.GenderUnknown, "відділ", true},
		{"кличний передбаченого", "мегабухгалтер", analyzer.Vocative, analyzer.GenderUnknown, "мегабухгалтере", true},
		{"дієслово не має відмінка", "працює", analyzer.Dative, analyzer.GenderUnknown, "", false},
		{"чоловіча парадигма за жіночою підказкою", "ковальчук", analyzer.Vocative, analyzer.Feminine, "ковальчуку", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parses := testAnalyzer.Parse(tc.word)
			if len(parses) == 0 {
				t.Fatalf("Parse(%q) нічого не знайшов", tc.word)
			}
			got, ok := testAnalyzer.Inflect(parses[0], tc.target, tc.hint)
			if ok != tc.wantOK {
				t.Fatalf("Inflect(%q, %v) ok = %v, очікується %v", tc.word, tc.target, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("Inflect(%q, %v) = %q, очікується %q", tc.word, tc.target, got, tc.want)
			}
		})
	}
}

func TestInflectNil(t *testing.T) {
	if got, ok := testAnalyzer.Inflect(nil, analyzer.Genitive, analyzer.GenderUnknown); ok || got != "" {
		t.Errorf("Inflect(nil) = (%q, %v), очікується порожня відмова", got, ok)
	}
	parses := testAnalyzer.Parse("бухгалтер")
	if got, ok := testAnalyzer.Inflect(parses[0], analyzer.CaseUnknown, analyzer.GenderUnknown); ok || got != "" {
		t.Errorf("Inflect(CaseUnknown) = (%q, %v), очікується порожня відмова", got, ok)
	}
}

func TestLexeme(t *testing.T) {
	parses := testAnalyzer.Parse("бухгалтер")
	if len(parses) == 0 {
		t.Fatal("Parse(\"бухгалтер\") нічого не знайшов")
	}
	forms := testAnalyzer.Lexeme(parses[0])

	// 15 рядків лексикону: форми з кількома наборами тегів повертаються
	// окремими розборами.
	if len(forms) != 15 {
		t.Fatalf("Lexeme: %d форм, очікується 15", len(forms))
	}
	for i := 1; i < len(forms); i++ {
		if forms[i].Word < forms[i-1].Word {
			t.Fatalf("форми не відсортовані: %q після %q", forms[i].Word, forms[i-1].Word)
		}
	}
	if findParse(forms, "NOUN,anim,masc,sing,gent") == nil {
		t.Error("немає родового відмінка однини")
	}
	if findParse(forms, "NOUN,anim,masc,sing,accs") == nil {
		t.Error("немає знахідного відмінка однини")
	}
	if findParse(forms, "NOUN,anim,masc,plur,ablt") == nil {
		t.Error("немає орудного відмінка множини")
	}
}

func TestLexemePredicted(t *testing.T) {
	parses := testAnalyzer.Parse("мегабухгалтер")
	if len(parses) != 1 {
		t.Fatalf("Parse: %d розборів, очікується 1", len(parses))
	}
	forms := testAnalyzer.Lexeme(parses[0])
	if len(forms) != 15 {
		t.Fatalf("Lexeme: %d форм, очікується 15", len(forms))
	}
	// Основа зразка замінюється основою вхідного слова в усіх формах.
	for _, f := range forms {
		if !strings.HasPrefix(f.Word, "мегабухгалтер") {
			t.Fatalf("форма %q не успадкувала основу вхідного слова", f.Word)
		}
	}
	gent := findParse(forms, "NOUN,anim,masc,plur,gent")
	if gent == nil {
		t.Fatal("немає родового відмінка множини")
	}
	if gent.Word != "мегабухгалтерів" {
		t.Errorf("родовий множини = %q, очікується %q", gent.Word, "мегабухгалтерів")
	}
}

func TestLexemeNil(t *testing.T) {
	if forms := testAnalyzer.Lexeme(nil); forms != nil {
		t.Errorf("Lexeme(nil) = %d форм, очікується nil", len(forms))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := analyzer.Load(filepath.Join(t.TempDir(), "відсутній.dawg")); err == nil {
		t.Error("Load неіснуючого файлу має повертати помилку")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "сміття.dawg")
	junk := make([]byte, 4096)
	for i := range junk {
		junk[i] = byte(i % 251)
	}
	if err := os.WriteFile(path, junk, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := analyzer.Load(path); err == nil {
		t.Error("Load файлу з хибною сигнатурою має повертати помилку")
	}
}

func TestLoadDefaultEnv(t *testing.T) {
	tmpDir := t.TempDir()
	dictPath := filepath.Join(tmpDir, "env.dawg")
	if _, err := analyzer.CompileLexicon(filepath.Join("testdata", "lexicon.tsv"), dictPath); err != nil {
		t.Fatal(err)
	}
	t.Setenv(analyzer.EnvDictPath, dictPath)

	a, err := analyzer.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault зі змінною середовища: %v", err)
	}
	defer a.Close()

	if parses := a.Parse("бухгалтер"); len(parses) == 0 {
		t.Error("словник, завантажений через змінну середовища, порожній")
	}
}
