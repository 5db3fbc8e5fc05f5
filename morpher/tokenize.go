package morpher

import "unicode"

// Token - фрагмент тексту: або слово, або роздільник між словами.
// Конкатенація всіх токенів відтворює вихідний текст байт у байт.
type Token struct {
	Text string
	Word bool
}

// Апострофи, які трапляються всередині українських слів.
func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}

// Tokenize розбиває текст на слова та роздільники. Словом вважається
// максимальний збіг літер; апостроф належить до слова лише тоді, коли
// з обох боків стоять літери (об'єднання - одне слово). Цифри, дефіси
// та розділові знаки - роздільники.
func Tokenize(text string) []Token {
	runes := []rune(text)
	var tokens []Token

	isWordRune := func(i int) bool {
		if unicode.IsLetter(runes[i]) {
			return true
		}
		if isApostrophe(runes[i]) {
			return i > 0 && i+1 < len(runes) &&
				unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
		}
		return false
	}

	for i := 0; i < len(runes); {
		start := i
		word := isWordRune(i)
		for i < len(runes) && isWordRune(i) == word {
			i++
		}
		tokens = append(tokens, Token{Text: string(runes[start:i]), Word: word})
	}
	return tokens
}
