package analyzer_test

import (
	"testing"

	"github.com/steosofficial/vidminok/analyzer"
)

func TestParseTag(t *testing.T) {
	testCases := []struct {
		name string
		tags string
		want analyzer.Tag
	}{
		{
			name: "прізвище",
			tags: "NOUN,anim,masc,Surn,sing,nomn",
			want: analyzer.Tag{
				POS:     analyzer.Noun,
				Animacy: analyzer.Animate,
				Gender:  analyzer.Masculine,
				Number:  analyzer.Singular,
				Case:    analyzer.Nominative,
				Surname: true,
			},
		},
		{
			name: "прикметник без роду",
			tags: "ADJF,plur,datv",
			want: analyzer.Tag{
				POS:    analyzer.Adjective,
				Number: analyzer.Plural,
				Case:   analyzer.Dative,
			},
		},
		{
			name: "незмінюване",
			tags: "NOUN,inan,neut,Fixd,sing,loct",
			want: analyzer.Tag{
				POS:     analyzer.Noun,
				Animacy: analyzer.Inanimate,
				Gender:  analyzer.Neuter,
				Number:  analyzer.Singular,
				Case:    analyzer.Locative,
				Fixed:   true,
			},
		},
		{
			// Невідомі коди пропускаються, а не ламають розбір.
			name: "невідомі коди",
			tags: "NOUN,щось,masc,інше",
			want: analyzer.Tag{POS: analyzer.Noun, Gender: analyzer.Masculine},
		},
		{
			name: "зайві пробіли",
			tags: " NOUN , femn , sing ",
			want: analyzer.Tag{POS: analyzer.Noun, Gender: analyzer.Feminine, Number: analyzer.Singular},
		},
		{
			name: "порожній рядок",
			tags: "",
			want: analyzer.Tag{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := analyzer.ParseTag(tc.tags); got != tc.want {
				t.Errorf("ParseTag(%q) = %+v, очікується %+v", tc.tags, got, tc.want)
			}
		})
	}
}

func TestTagStringRoundTrip(t *testing.T) {
	for _, tags := range []string{
		"NOUN,anim,masc,Surn,sing,nomn",
		"NOUN,anim,femn,Name,sing,voct",
		"NOUN,anim,masc,Patr,sing,datv",
		"ADJF,femn,sing,ablt",
		"NOUN,inan,neut,Fixd,sing,gent",
		"VERB,sing",
		"INFN",
	} {
		parsed := analyzer.ParseTag(tags)
		if got := parsed.String(); got != tags {
			t.Errorf("ParseTag(%q).String() = %q", tags, got)
		}
	}
}

func TestCaseFromCode(t *testing.T) {
	wantCases := map[string]analyzer.Case{
		"nomn": analyzer.Nominative,
		"gent": analyzer.Genitive,
		"datv": analyzer.Dative,
		"accs": analyzer.Accusative,
		"ablt": analyzer.Instrumental,
		"loct": analyzer.Locative,
		"voct": analyzer.Vocative,
	}
	for code, want := range wantCases {
		got, ok := analyzer.CaseFromCode(code)
		if !ok || got != want {
			t.Errorf("CaseFromCode(%q) = (%v, %v), очікується (%v, true)", code, got, ok, want)
		}
	}
	if _, ok := analyzer.CaseFromCode("abcd"); ok {
		t.Error("CaseFromCode(\"abcd\") має повертати false")
	}
	if _, ok := analyzer.CaseFromCode(""); ok {
		t.Error("CaseFromCode(\"\") має повертати false")
	}
}

func TestAllCasesOrder(t *testing.T) {
	want := []string{"nomn", "gent", "datv", "accs", "ablt", "loct", "voct"}
	for i, c := range analyzer.AllCases {
		if c.Code() != want[i] {
			t.Errorf("AllCases[%d] = %q, очікується %q", i, c.Code(), want[i])
		}
	}
}
