package morpher

import (
	"fmt"
	"strings"

	"github.com/steosofficial/vidminok/analyzer"
)

// UnknownCaseError повертається, коли код відмінка не входить до семи
// підтримуваних.
type UnknownCaseError struct {
	Code string
}

func (e *UnknownCaseError) Error() string {
	return fmt.Sprintf("невідомий відмінок %q (очікується: nomn, gent, datv, accs, ablt, loct або voct)", e.Code)
}

// FormatError повертається, коли ПІБ не складається рівно з трьох слів.
type FormatError struct {
	Input  string
	Tokens int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("очікується рівно три слова (Прізвище Ім'я По батькові), отримано %d: %q", e.Tokens, e.Input)
}

// ParseCaseCode перетворює текстовий код відмінка на типізоване значення.
// Код нечутливий до регістру та зайвих пробілів.
func ParseCaseCode(code string) (analyzer.Case, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if c, ok := analyzer.CaseFromCode(normalized); ok {
		return c, nil
	}
	return analyzer.CaseUnknown, &UnknownCaseError{Code: code}
}
