package morpher

import (
	"strings"

	"github.com/steosofficial/vidminok/analyzer"
)

// Стани обходу фрази в режимі посади.
type positionState int

const (
	scanningAdjective positionState = iota // узгоджена прикметникова група перед іменником
	nounFound                              // головний іменник відмінено
	passthrough                            // хвіст фрази копіюється без змін
)

// MorphSentence відмінює фразу. Звичайний режим (position=false) ставить
// у цільовий відмінок кожне слово незалежно, зберігаючи його число.
// Режим посади (position=true) відмінює лише прикметникову групу та
// головний іменник, а залежний хвіст ("начальника відділу") лишає як є.
// Дефіс повертає обхід до пошуку нової групи: у "водій - охоронець"
// відмінюються обидві частини. Роздільники копіюються байт у байт.
func (m *Morpher) MorphSentence(text, caseCode string, position bool) (string, error) {
	target, err := ParseCaseCode(caseCode)
	if err != nil {
		return "", err
	}
	ctx := inflectionContext{target: target}

	var b strings.Builder
	state := scanningAdjective

	for _, token := range Tokenize(text) {
		if !token.Word {
			if position && containsDash(token.Text) {
				state = scanningAdjective
			}
			b.WriteString(token.Text)
			continue
		}

		if !position {
			b.WriteString(m.morphToken(token.Text, ctx))
			continue
		}

		switch state {
		case scanningAdjective:
			parses := m.analyzer.Parse(token.Text)
			if len(parses) == 0 {
				// Невідоме слово завершує групу: далі йде залежний хвіст.
				b.WriteString(token.Text)
				state = nounFound
				continue
			}
			p := parses[0]
			b.WriteString(m.inflectParsed(token.Text, p, ctx))
			if p.Tag.POS != analyzer.Adjective && p.Tag.POS != analyzer.Participle {
				state = nounFound
			}
		case nounFound:
			state = passthrough
			b.WriteString(token.Text)
		default:
			b.WriteString(token.Text)
		}
	}
	return b.String(), nil
}

func containsDash(s string) bool {
	return strings.ContainsAny(s, "-–—")
}
