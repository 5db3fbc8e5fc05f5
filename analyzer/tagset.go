// tagset.go описує граматичні категорії словника як закриті типи.
// Компактний рядок тегів з бінарного словника ("NOUN,anim,masc,Surn,sing,nomn")
// розбирається у структуру Tag, з якою працюють аналізатор
// і двигун відмінювання, без порівнянь сирих рядків у викликачів.
package analyzer

import "strings"

// PartOfSpeech - частина мови.
type PartOfSpeech uint8

const (
	POSUnknown    PartOfSpeech = iota
	Noun                       // NOUN - іменник
	Adjective                  // ADJF - прикметник
	Participle                 // PRTF - дієприкметник
	Verb                       // VERB - дієслово в особовій формі
	Infinitive                 // INFN - інфінітив
	Transgressive              // GRND - дієприслівник
	Adverb                     // ADVB - прислівник
	Comparative                // COMP - компаратив
	Numeral                    // NUMR - числівник
	Pronoun                    // NPRO - займенник
	Preposition                // PREP - прийменник
	Conjunction                // CONJ - сполучник
	Particle                   // PRCL - частка
	Interjection               // INTJ - вигук
)

// Case - відмінок. Зовнішні коди збігаються з позначеннями OpenCorpora.
type Case uint8

const (
	CaseUnknown  Case = iota
	Nominative        // nomn - називний
	Genitive          // gent - родовий
	Dative            // datv - давальний
	Accusative        // accs - знахідний
	Instrumental      // ablt - орудний
	Locative          // loct - місцевий
	Vocative          // voct - кличний
)

// Gender - граматичний рід.
type Gender uint8

const (
	GenderUnknown Gender = iota
	Masculine            // masc
	Feminine             // femn
	Neuter               // neut
)

// Number - граматичне число.
type Number uint8

const (
	NumberUnknown Number = iota
	Singular             // sing
	Plural               // plur
)

// Animacy - істотовість.
type Animacy uint8

const (
	AnimacyUnknown Animacy = iota
	Animate               // anim - істота
	Inanimate             // inan - неістота
)

// Tag - повний набір граматичних ознак однієї словоформи.
// Лексемні позначки (Surname, GivenName, Patronymic, Fixed) приходять
// з тих самих рядків тегів, що й словозмінні категорії.
type Tag struct {
	POS        PartOfSpeech `json:"pos"`
	Animacy    Animacy      `json:"animacy,omitempty"`
	Gender     Gender       `json:"gender,omitempty"`
	Number     Number       `json:"number,omitempty"`
	Case       Case         `json:"case,omitempty"`
	Surname    bool         `json:"surname,omitempty"`    // Surn - прізвище
	GivenName  bool         `json:"given_name,omitempty"` // Name - ім'я
	Patronymic bool         `json:"patronymic,omitempty"` // Patr - по батькові
	Fixed      bool         `json:"fixed,omitempty"`      // Fixd - незмінюване слово
}

// Таблиці відповідності кодів і категорій. Використовуються ParseTag
// і зворотними методами Code.
var (
	posCodes = map[string]PartOfSpeech{
		"NOUN": Noun,
		"ADJF": Adjective,
		"PRTF": Participle,
		"VERB": Verb,
		"INFN": Infinitive,
		"GRND": Transgressive,
		"ADVB": Adverb,
		"COMP": Comparative,
		"NUMR": Numeral,
		"NPRO": Pronoun,
		"PREP": Preposition,
		"CONJ": Conjunction,
		"PRCL": Particle,
		"INTJ": Interjection,
	}

	caseCodes = map[string]Case{
		"nomn": Nominative,
		"gent": Genitive,
		"datv": Dative,
		"accs": Accusative,
		"ablt": Instrumental,
		"loct": Locative,
		"voct": Vocative,
	}

	genderCodes = map[string]Gender{
		"masc": Masculine,
		"femn": Feminine,
		"neut": Neuter,
	}

	numberCodes = map[string]Number{
		"sing": Singular,
		"plur": Plural,
	}

	animacyCodes = map[string]Animacy{
		"anim": Animate,
		"inan": Inanimate,
	}

	posNames = map[PartOfSpeech]string{
		Noun:          "NOUN",
		Adjective:     "ADJF",
		Participle:    "PRTF",
		Verb:          "VERB",
		Infinitive:    "INFN",
		Transgressive: "GRND",
		Adverb:        "ADVB",
		Comparative:   "COMP",
		Numeral:       "NUMR",
		Pronoun:       "NPRO",
		Preposition:   "PREP",
		Conjunction:   "CONJ",
		Particle:      "PRCL",
		Interjection:  "INTJ",
	}

	caseNames = map[Case]string{
		Nominative:   "nomn",
		Genitive:     "gent",
		Dative:       "datv",
		Accusative:   "accs",
		Instrumental: "ablt",
		Locative:     "loct",
		Vocative:     "voct",
	}

	genderNames = map[Gender]string{
		Masculine: "masc",
		Feminine:  "femn",
		Neuter:    "neut",
	}

	numberNames = map[Number]string{
		Singular: "sing",
		Plural:   "plur",
	}

	animacyNames = map[Animacy]string{
		Animate:   "anim",
		Inanimate: "inan",
	}
)

// AllCases перелічує сім відмінків у канонічному порядку.
var AllCases = [7]Case{Nominative, Genitive, Dative, Accusative, Instrumental, Locative, Vocative}

// CaseFromCode повертає відмінок за зовнішнім кодом ("nomn" .. "voct").
func CaseFromCode(code string) (Case, bool) {
	c, ok := caseCodes[code]
	return c, ok
}

// Code повертає зовнішній код відмінка, порожній рядок для невідомого.
func (c Case) Code() string { return caseNames[c] }

func (c Case) String() string { return caseNames[c] }

func (p PartOfSpeech) Code() string { return posNames[p] }

func (p PartOfSpeech) String() string { return posNames[p] }

func (g Gender) Code() string { return genderNames[g] }

func (g Gender) String() string { return genderNames[g] }

func (n Number) Code() string { return numberNames[n] }

func (n Number) String() string { return numberNames[n] }

func (an Animacy) Code() string { return animacyNames[an] }

func (an Animacy) String() string { return animacyNames[an] }

// ParseTag розбирає рядок тегів словника в структуру Tag.
// Невідомі коди мовчки пропускаються: словник може нести додаткові
// грамеми, які двигуну відмінювання не потрібні.
func ParseTag(tagString string) Tag {
	var t Tag
	for _, code := range strings.Split(tagString, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if pos, ok := posCodes[code]; ok {
			t.POS = pos
			continue
		}
		if c, ok := caseCodes[code]; ok {
			t.Case = c
			continue
		}
		if g, ok := genderCodes[code]; ok {
			t.Gender = g
			continue
		}
		if n, ok := numberCodes[code]; ok {
			t.Number = n
			continue
		}
		if an, ok := animacyCodes[code]; ok {
			t.Animacy = an
			continue
		}
		switch code {
		case "Surn":
			t.Surname = true
		case "Name":
			t.GivenName = true
		case "Patr":
			t.Patronymic = true
		case "Fixd":
			t.Fixed = true
		}
	}
	return t
}

// String збирає канонічний рядок тегів у порядку:
// частина мови, істотовість, рід, лексемні позначки, число, відмінок.
func (t Tag) String() string {
	codes := make([]string, 0, 8)
	if code := t.POS.Code(); code != "" {
		codes = append(codes, code)
	}
	if code := t.Animacy.Code(); code != "" {
		codes = append(codes, code)
	}
	if code := t.Gender.Code(); code != "" {
		codes = append(codes, code)
	}
	if t.Surname {
		codes = append(codes, "Surn")
	}
	if t.GivenName {
		codes = append(codes, "Name")
	}
	if t.Patronymic {
		codes = append(codes, "Patr")
	}
	if t.Fixed {
		codes = append(codes, "Fixd")
	}
	if code := t.Number.Code(); code != "" {
		codes = append(codes, code)
	}
	if code := t.Case.Code(); code != "" {
		codes = append(codes, code)
	}
	return strings.Join(codes, ",")
}
