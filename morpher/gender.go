// Файл gender.go визначає рід носія ПІБ. Джерела, в порядку довіри:
// кураторська таблиця імен, суфікс по батькові, словниковий аналізатор.
// Коли ім'я та по батькові суперечать одне одному, перемагає по батькові -
// його суфікси майже однозначні, на відміну від імен на кшталт "Женя".
package morpher

import (
	"strings"

	"github.com/steosofficial/vidminok/analyzer"
)

// Суфікси жіночих по батькові перевіряються першими: "-івна" закінчується
// на "-на", а чоловічий список містить коротші суфікси.
var femininePatronymicSuffixes = []string{"івна", "ївна", "ична"}

var masculinePatronymicSuffixes = []string{"ович", "ич", "іч"}

// givenNameGenders - кураторська таблиця поширених українських імен.
// Вона відповідає першою: словникові розбори для імен бувають неоднозначні.
var givenNameGenders = map[string]analyzer.Gender{
	// Чоловічі імена.
	"тарас":     analyzer.Masculine,
	"іван":      analyzer.Masculine,
	"петро":     analyzer.Masculine,
	"олександр": analyzer.Masculine,
	"андрій":    analyzer.Masculine,
	"сергій":    analyzer.Masculine,
	"володимир": analyzer.Masculine,
	"микола":    analyzer.Masculine,
	"василь":    analyzer.Masculine,
	"юрій":      analyzer.Masculine,
	"олег":      analyzer.Masculine,
	"ігор":      analyzer.Masculine,
	"дмитро":    analyzer.Masculine,
	"максим":    analyzer.Masculine,
	"богдан":    analyzer.Masculine,
	"олексій":   analyzer.Masculine,
	"михайло":   analyzer.Masculine,
	"степан":    analyzer.Masculine,
	"павло":     analyzer.Masculine,
	"роман":     analyzer.Masculine,
	"ярослав":   analyzer.Masculine,
	"анатолій":  analyzer.Masculine,
	"григорій":  analyzer.Masculine,
	"євген":     analyzer.Masculine,
	"віктор":    analyzer.Masculine,
	"вадим":     analyzer.Masculine,
	"станіслав": analyzer.Masculine,
	"леонід":    analyzer.Masculine,
	"остап":     analyzer.Masculine,
	"назар":     analyzer.Masculine,
	"денис":     analyzer.Masculine,
	"артем":     analyzer.Masculine,

	// Жіночі імена.
	"ольга":     analyzer.Feminine,
	"олена":     analyzer.Feminine,
	"ірина":     analyzer.Feminine,
	"наталія":   analyzer.Feminine,
	"наталя":    analyzer.Feminine,
	"тетяна":    analyzer.Feminine,
	"катерина":  analyzer.Feminine,
	"марія":     analyzer.Feminine,
	"оксана":    analyzer.Feminine,
	"юлія":      analyzer.Feminine,
	"анна":      analyzer.Feminine,
	"ганна":     analyzer.Feminine,
	"світлана":  analyzer.Feminine,
	"людмила":   analyzer.Feminine,
	"валентина": analyzer.Feminine,
	"галина":    analyzer.Feminine,
	"надія":     analyzer.Feminine,
	"віра":      analyzer.Feminine,
	"любов":     analyzer.Feminine,
	"соломія":   analyzer.Feminine,
	"дарина":    analyzer.Feminine,
	"христина":  analyzer.Feminine,
	"зоряна":    analyzer.Feminine,
	"леся":      analyzer.Feminine,
	"іванна":    analyzer.Feminine,
	"марта":     analyzer.Feminine,
	"алла":      analyzer.Feminine,
	"інна":      analyzer.Feminine,
	"жанна":     analyzer.Feminine,
	"лілія":     analyzer.Feminine,
}

// patronymicGender визначає рід за суфіксом по батькові.
func patronymicGender(patronymic string) analyzer.Gender {
	p := strings.ToLower(patronymic)
	for _, s := range femininePatronymicSuffixes {
		if strings.HasSuffix(p, s) {
			return analyzer.Feminine
		}
	}
	for _, s := range masculinePatronymicSuffixes {
		if strings.HasSuffix(p, s) {
			return analyzer.Masculine
		}
	}
	return analyzer.GenderUnknown
}

// lookupNameGender визначає рід за іменем: спершу таблиця, потім словник.
func (m *Morpher) lookupNameGender(firstName string) analyzer.Gender {
	name := strings.ToLower(firstName)
	if g, ok := givenNameGenders[name]; ok {
		return g
	}
	for _, p := range m.analyzer.Parse(firstName) {
		if p.Tag.GivenName && p.Tag.Gender != analyzer.GenderUnknown {
			return p.Tag.Gender
		}
	}
	return analyzer.GenderUnknown
}

// ResolveGender визначає рід носія ПІБ за іменем та по батькові.
// Якщо обидва джерела мовчать, повертається GenderUnknown - це не помилка,
// відмінювання продовжиться з типовою підказкою.
func (m *Morpher) ResolveGender(firstName, patronymic string) analyzer.Gender {
	nameGender := m.lookupNameGender(firstName)
	patroGender := patronymicGender(patronymic)

	switch {
	case nameGender == analyzer.GenderUnknown:
		return patroGender
	case patroGender == analyzer.GenderUnknown:
		return nameGender
	case nameGender == patroGender:
		return nameGender
	case m.namePriority:
		return nameGender
	default:
		return patroGender
	}
}
