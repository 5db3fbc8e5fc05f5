package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steosofficial/vidminok/morpher"
)

// Кроки інтерактивної консолі: режим -> відмінок -> текст.
type consoleStep int

const (
	stepMode consoleStep = iota
	stepCase
	stepInput
)

// Режими відмінювання.
const (
	modeName     = 1 // ПІБ
	modePosition = 2 // посада
	modeSentence = 3 // довільна фраза
)

// caseMenu - відмінки в порядку шкільної граматики. Той самий перелік
// віддає HTTP-ручка /api/cases.
var caseMenu = []struct {
	Code string
	Name string
}{
	{"nomn", "Називний"},
	{"gent", "Родовий"},
	{"datv", "Давальний"},
	{"accs", "Знахідний"},
	{"ablt", "Орудний"},
	{"loct", "Місцевий"},
	{"voct", "Кличний"},
}

type consoleModel struct {
	m *morpher.Morpher

	step     consoleStep
	mode     int
	caseCode string
	input    string
	result   string
	errMsg   string
}

func runInteractive(m *morpher.Morpher) error {
	_, err := tea.NewProgram(newConsoleModel(m)).Run()
	return err
}

func newConsoleModel(m *morpher.Morpher) consoleModel {
	return consoleModel{m: m, step: stepMode}
}

func (consoleModel) Init() tea.Cmd { return nil }

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		switch v.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				runes := []rune(m.input)
				m.input = string(runes[:len(runes)-1])
			}
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(v.Runes)
		}
	}
	return m, nil
}

// submit обробляє Enter залежно від поточного кроку.
func (m consoleModel) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input)
	m.input = ""

	if isQuitWord(input) {
		return m, tea.Quit
	}

	switch m.step {
	case stepMode:
		switch input {
		case "1", "2", "3":
			m.mode = int(input[0] - '0')
			m.step = stepCase
			m.errMsg = ""
		default:
			m.errMsg = "введіть 1, 2 або 3"
		}
	case stepCase:
		code, ok := caseByInput(input)
		if !ok {
			m.errMsg = "введіть номер 1-7 або код відмінка (nomn..voct)"
			return m, nil
		}
		m.caseCode = code
		m.step = stepInput
		m.errMsg = ""
	case stepInput:
		if input == "" {
			// Порожній рядок повертає до вибору режиму.
			m.step = stepMode
			m.result, m.errMsg = "", ""
			return m, nil
		}
		m.result, m.errMsg = m.morph(input)
	}
	return m, nil
}

func (m consoleModel) morph(input string) (result, errMsg string) {
	var (
		out string
		err error
	)
	switch m.mode {
	case modeName:
		out, err = m.m.MorphName(input, m.caseCode)
	case modePosition:
		out, err = m.m.MorphSentence(input, m.caseCode, true)
	default:
		out, err = m.m.MorphSentence(input, m.caseCode, false)
	}
	if err != nil {
		return "", err.Error()
	}
	return out, ""
}

func (m consoleModel) View() string {
	var b strings.Builder
	b.WriteString("vidminok - відмінювання українською\n\n")

	switch m.step {
	case stepMode:
		b.WriteString("Що відмінюємо?\n")
		b.WriteString("  1 - ПІБ (Прізвище Ім'я По батькові)\n")
		b.WriteString("  2 - посада\n")
		b.WriteString("  3 - фраза\n")
	case stepCase:
		b.WriteString("Оберіть відмінок:\n")
		for i, c := range caseMenu {
			fmt.Fprintf(&b, "  %d - %s (%s)\n", i+1, c.Name, c.Code)
		}
	case stepInput:
		fmt.Fprintf(&b, "Відмінок: %s. Введіть текст (порожній рядок - назад):\n", m.caseCode)
	}

	if m.result != "" {
		fmt.Fprintf(&b, "\nРезультат: %s\n", m.result)
	}
	if m.errMsg != "" {
		fmt.Fprintf(&b, "\nПомилка: %s\n", m.errMsg)
	}

	fmt.Fprintf(&b, "\n> %s", m.input)
	b.WriteString("\n\n(вихід: exit, Esc або Ctrl+C)")
	return b.String()
}

func isQuitWord(input string) bool {
	lower := strings.ToLower(input)
	return lower == "вихід" || lower == "exit"
}

// caseByInput приймає номер пункту меню (1-7) або код відмінка.
func caseByInput(input string) (string, bool) {
	lower := strings.ToLower(input)
	for i, c := range caseMenu {
		if lower == c.Code || input == fmt.Sprintf("%d", i+1) {
			return c.Code, true
		}
	}
	return "", false
}
