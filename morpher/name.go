package morpher

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/steosofficial/vidminok/analyzer"
)

// MorphName відмінює ПІБ у форматі "Прізвище Ім'я По батькові".
// Вхід має містити рівно три слова, інакше повертається FormatError.
// Рід носія визначається за іменем та по батькові і підказує аналізатору,
// як відмінювати прізвище. Прізвище у результаті подається у верхньому
// регістрі (вимикається опцією WithPlainSurname).
func (m *Morpher) MorphName(fullName, caseCode string) (string, error) {
	target, err := ParseCaseCode(caseCode)
	if err != nil {
		return "", err
	}

	parts := strings.Fields(fullName)
	if len(parts) != 3 {
		return "", &FormatError{Input: fullName, Tokens: len(parts)}
	}
	surname, firstName, patronymic := parts[0], parts[1], parts[2]

	gender := m.ResolveGender(firstName, patronymic)
	hint := gender
	if hint == analyzer.GenderUnknown {
		hint = analyzer.Masculine // типова підказка для ПІБ без ознак роду
	}
	ctx := inflectionContext{target: target, gender: hint}

	outSurname := m.morphToken(surname, ctx)
	outFirstName := m.morphToken(firstName, ctx)
	outPatronymic := m.morphToken(patronymic, ctx)

	if !m.plainSurname {
		outSurname = cases.Upper(language.Ukrainian).String(outSurname)
	}
	return outSurname + " " + outFirstName + " " + outPatronymic, nil
}
