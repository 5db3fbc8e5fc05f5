// Файл analyzer.go містить логіку морфологічного аналізатора.
// Він завантажує скомпільований бінарний словник (morph.dawg) і надає
// API для розбору слів, пошуку всіх форм лексеми та відмінювання у цільовий
// відмінок. Ключова особливість - використання mmap для Zero-Copy
// завантаження, що мінімізує споживання ОЗП.
package analyzer

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// EnvDictPath - змінна середовища, що переозначує шлях до словника.
const EnvDictPath = "VIDMINOK_DICT_PATH"

// DictFileName - типова назва бінарного словника поруч із пакетом.
const DictFileName = "morph.dawg"

// dictMagic - сигнатура бінарного словника.
const dictMagic = "VDK1"

// Розбори, отримані передбаченням за суфіксом, ранжуються нижче за будь-який
// словниковий розбір.
const predictedScore = 0.05

// --- СТРУКТУРИ ДАНИХ ---

// morphInfo зберігає індекси, що вказують на пули рядків та парадигму форми.
type morphInfo struct {
	LemmaID    uint32
	TagsID     uint32
	ParadigmID uint32
}

// predictInfo - корисна інформація у вузлах DAWG передбачувача.
type predictInfo struct {
	Frequency  uint16 // скільки разів правило (суфікс + парадигма) траплялося в лексиконі
	ParadigmID uint32 // парадигма-зразок, за якою проєктуються форми
	FormIdx    uint32 // індекс слова-зразка в канонічно відсортованій парадигмі
	TagsID     uint32 // теги форми-зразка
}

// flatNode - "плоске" представлення вузла DAWG для збереження на диск.
// Замість вказівників - індекси в глобальних масивах.
type flatNode struct {
	PayloadIdx, EdgesIdx uint32 // початок зрізів у масивах payload-ів та ребер
	PayloadLen, EdgesLen uint16 // довжини цих зрізів
	IsFinal              bool   // чи закінчується в цьому вузлі слово/правило
}

// flatEdge - "плоске" ребро графа.
type flatEdge struct {
	Char   rune   // символ на ребрі
	NodeID uint32 // дочірній вузол, на який вказує ребро
}

// paradigmInfo описує одну з основ парадигми та вузол "плоского" DAWG,
// де ця основа закінчується. Потрібна для генерації форм без повного обходу.
type paradigmInfo struct {
	Stem   string
	NodeID uint32
}

// dictHeader - заголовок бінарного словника. Це "карта" всього файлу,
// яка дозволяє завантажувати дані методом Zero-Copy.
type dictHeader struct {
	Magic                 [4]byte // сигнатура для перевірки коректності файлу
	ComplexDataOffset     int64   // зсув блоку "складних" даних (у байтах)
	ComplexDataLength     int64   // довжина цього блоку
	NodesOffset           int64   // зсув масиву вузлів основного словника
	NodesCount            int64   // кількість елементів у масиві
	EdgesOffset           int64   // зсув масиву ребер основного словника
	EdgesCount            int64   // кількість елементів
	PayloadsOffset        int64   // зсув масиву payload-ів основного словника
	PayloadsCount         int64   // кількість елементів
	PredictNodesOffset    int64   // зсув масиву вузлів передбачувача
	PredictNodesCount     int64   // кількість елементів
	PredictEdgesOffset    int64   // зсув масиву ребер передбачувача
	PredictEdgesCount     int64   // кількість елементів
	PredictPayloadsOffset int64   // зсув масиву payload-ів передбачувача
	PredictPayloadsCount  int64   // кількість елементів
}

// complexData - контейнер для даних, які неефективно тримати в сирому
// вигляді. Ця частина файлу серіалізується за допомогою gob і повністю
// завантажується в пам'ять.
type complexData struct {
	LemmaPool         []string                  // пул усіх лем
	TagsPool          []string                  // пул усіх наборів тегів
	Paradigms         map[uint32][]paradigmInfo // основи кожної парадигми
	ParadigmToLemmaID map[uint32]uint32         // лема за ідентифікатором парадигми
}

// MorphAnalyzer - основна структура, що тримає всі дані словника.
// Після завантаження стан лише читається, тож аналізатор безпечний
// для конкурентного використання.
type MorphAnalyzer struct {
	lemmaPool         []string
	tagsPool          []string
	paradigms         map[uint32][]paradigmInfo
	paradigmToLemmaID map[uint32]uint32

	// "Сирі" дані, відображені в пам'ять (mmap), але не скопійовані
	// в "купу" Go. Зрізи вказують на область пам'яті, якою керує ОС.
	nodes    []flatNode
	edges    []flatEdge
	payloads []morphInfo

	predictNodes    []flatNode
	predictEdges    []flatEdge
	predictPayloads []predictInfo

	// Посилання на mmap-об'єкт, щоб його не зібрав збирач сміття
	// і пам'ять лишалася доступною.
	mmapFile mmap.MMap
}

// predictionCandidate - тимчасова структура кандидата на передбачення.
type predictionCandidate struct {
	predictInfo
	SuffixLen int
}

// Parsed - один варіант морфологічного розбору слова.
type Parsed struct {
	Word  string  `json:"word"`  // слово, як його передав викликач
	Lemma string  `json:"lemma"` // нормальна форма
	Tags  string  `json:"tags"`  // повний рядок тегів
	Tag   Tag     `json:"-"`     // розібрані граматичні ознаки
	Score float64 `json:"score"` // словникові розбори ранжуються вище за передбачені

	paradigmID uint32

	// Для передбачених слів: проєкція форм парадигми-зразка на вхідне слово.
	predicted   bool
	projectable bool
	inputPrefix string
	dictPrefix  string
}

// Predicted повідомляє, що розбір отримано передбаченням за суфіксом,
// а не зі словника.
func (p *Parsed) Predicted() bool { return p.predicted }

func newParsed(word, lemma, tagString string, score float64, paradigmID uint32) *Parsed {
	return &Parsed{
		Word:       word,
		Lemma:      lemma,
		Tags:       tagString,
		Tag:        ParseTag(tagString),
		Score:      score,
		paradigmID: paradigmID,
	}
}

// --- ЗАВАНТАЖЕННЯ СЛОВНИКА ---

// Load відкриває бінарний словник за вказаним шляхом.
func Load(path string) (*MorphAnalyzer, error) {
	return loadInternal(path)
}

// LoadDefault шукає словник спершу за змінною середовища EnvDictPath,
// а далі - поруч із пакетом (шлях обчислюється через runtime.Caller).
func LoadDefault() (*MorphAnalyzer, error) {
	if dictPath := os.Getenv(EnvDictPath); dictPath != "" {
		return loadInternal(dictPath)
	}

	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("не вдалося визначити шлях до пакета analyzer")
	}

	dictPath := filepath.Join(filepath.Dir(currentFilePath), DictFileName)
	if _, err := os.Stat(dictPath); os.IsNotExist(err) {
		return nil, fmt.Errorf(
			"словник не знайдено за шляхом %q: зберіть його командою `vidminok dictgen` або задайте змінну середовища %s",
			dictPath, EnvDictPath,
		)
	}
	return loadInternal(dictPath)
}

// loadInternal завантажує бінарний словник: читає заголовок, декодує
// "складну" частину і створює "віртуальні" зрізи для сирих масивів.
func loadInternal(path string) (*MorphAnalyzer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("помилка відкриття файлу: %w", err)
	}
	defer file.Close()

	// Відображаємо весь файл у віртуальний адресний простір процесу.
	// Файл не копіюється в ОЗП: ОС сама підвантажує потрібні сторінки.
	mmapFile, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("помилка mmap.Map: %w", err)
	}

	// Читаємо заголовок (карту файлу) прямо з mmap-зрізу.
	var header dictHeader
	headerSize := int(unsafe.Sizeof(header))
	if len(mmapFile) < headerSize {
		_ = mmapFile.Unmap()
		return nil, errors.New("файл закороткий для заголовка словника")
	}
	if err := binary.Read(bytes.NewReader(mmapFile[:headerSize]), binary.LittleEndian, &header); err != nil {
		_ = mmapFile.Unmap()
		return nil, fmt.Errorf("помилка читання заголовка: %w", err)
	}
	if string(header.Magic[:]) != dictMagic {
		_ = mmapFile.Unmap()
		return nil, errors.New("невірна сигнатура файлу словника")
	}

	// Декодуємо "складний" блок (рядки, карти): спершу gzip, потім gob.
	complexStart := header.ComplexDataOffset
	complexEnd := complexStart + header.ComplexDataLength
	gzipReader, err := gzip.NewReader(bytes.NewReader(mmapFile[complexStart:complexEnd]))
	if err != nil {
		_ = mmapFile.Unmap()
		return nil, fmt.Errorf("помилка створення gzip.Reader: %w", err)
	}
	decompressed, err := io.ReadAll(gzipReader)
	if err != nil {
		_ = mmapFile.Unmap()
		return nil, fmt.Errorf("помилка розпакування даних: %w", err)
	}
	if err := gzipReader.Close(); err != nil {
		_ = mmapFile.Unmap()
		return nil, fmt.Errorf("помилка закриття gzip.Reader: %w", err)
	}

	var cdata complexData
	if err := gob.NewDecoder(bytes.NewReader(decompressed)).Decode(&cdata); err != nil {
		_ = mmapFile.Unmap()
		return nil, fmt.Errorf("помилка gob-декодування: %w", err)
	}

	// Створюємо "віртуальні" зрізи: вони не володіють даними, а лише
	// вказують на потрібні ділянки mmap-файлу.
	a := &MorphAnalyzer{
		lemmaPool:         cdata.LemmaPool,
		tagsPool:          cdata.TagsPool,
		paradigms:         cdata.Paradigms,
		paradigmToLemmaID: cdata.ParadigmToLemmaID,
		nodes:             bytesToSlice[flatNode](mmapFile[header.NodesOffset : header.NodesOffset+header.NodesCount*int64(unsafe.Sizeof(flatNode{}))]),
		edges:             bytesToSlice[flatEdge](mmapFile[header.EdgesOffset : header.EdgesOffset+header.EdgesCount*int64(unsafe.Sizeof(flatEdge{}))]),
		payloads:          bytesToSlice[morphInfo](mmapFile[header.PayloadsOffset : header.PayloadsOffset+header.PayloadsCount*int64(unsafe.Sizeof(morphInfo{}))]),
		predictNodes:      bytesToSlice[flatNode](mmapFile[header.PredictNodesOffset : header.PredictNodesOffset+header.PredictNodesCount*int64(unsafe.Sizeof(flatNode{}))]),
		predictEdges:      bytesToSlice[flatEdge](mmapFile[header.PredictEdgesOffset : header.PredictEdgesOffset+header.PredictEdgesCount*int64(unsafe.Sizeof(flatEdge{}))]),
		predictPayloads:   bytesToSlice[predictInfo](mmapFile[header.PredictPayloadsOffset : header.PredictPayloadsOffset+header.PredictPayloadsCount*int64(unsafe.Sizeof(predictInfo{}))]),
		mmapFile:          mmapFile,
	}
	return a, nil
}

// Close звільняє відображений у пам'ять словник. Після виклику аналізатор
// використовувати не можна.
func (a *MorphAnalyzer) Close() error {
	if a.mmapFile == nil {
		return nil
	}
	err := a.mmapFile.Unmap()
	a.mmapFile = nil
	a.nodes, a.edges, a.payloads = nil, nil, nil
	a.predictNodes, a.predictEdges, a.predictPayloads = nil, nil, nil
	return err
}

// bytesToSlice створює заголовок зрізу, що вказує на область байтів,
// без копіювання самих даних.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/size)
}

// --- ЛОГІКА АНАЛІЗАТОРА ---

// Parse повертає варіанти розбору слова, відсортовані за спаданням Score.
// Пошук нечутливий до регістру. Якщо слова немає в словнику, аналізатор
// пробує передбачити розбір за суфіксом. Якщо не вдалося і це - повертає
// порожній зріз: невідоме слово не є помилкою.
func (a *MorphAnalyzer) Parse(word string) []*Parsed {
	if parses := a.parseDict(word); len(parses) > 0 {
		return parses
	}
	return a.parsePredicted(word)
}

// parseDict шукає слово в основному словнику (DAWG).
func (a *MorphAnalyzer) parseDict(word string) []*Parsed {
	lowerWord := strings.ToLower(word)
	currentNodeIndex := uint32(0)

	// Ідемо графом символ за символом.
	for _, char := range lowerWord {
		childNodeIndex, found := a.findChild(currentNodeIndex, char, a.nodes, a.edges)
		if !found {
			return nil
		}
		currentNodeIndex = childNodeIndex
	}

	node := a.nodes[currentNodeIndex]
	if !node.IsFinal {
		return nil // дійшли до кінця слова, але вузол не фінальний
	}

	var results []*Parsed
	payloadStart, payloadEnd := node.PayloadIdx, node.PayloadIdx+uint32(node.PayloadLen)
	for i, info := range a.payloads[payloadStart:payloadEnd] {
		results = append(results, newParsed(
			word,
			a.lemmaPool[info.LemmaID],
			a.tagsPool[info.TagsID],
			1/float64(i+1),
			info.ParadigmID,
		))
	}
	return results
}

// parsePredicted пробує передбачити розбір несловникового слова за суфіксом.
func (a *MorphAnalyzer) parsePredicted(word string) []*Parsed {
	lowerWord := strings.ToLower(word)
	best := a.findBestPrediction(lowerWord)
	if best == nil {
		return nil
	}

	// Запасний варіант: лемою вважаємо саме слово, без проєкції форм.
	fallback := func() []*Parsed {
		p := newParsed(word, lowerWord, a.tagsPool[best.TagsID], predictedScore, best.ParadigmID)
		p.predicted = true
		return []*Parsed{p}
	}

	allForms := a.getFormsByParadigmID(best.ParadigmID)
	lemmaID, ok := a.paradigmToLemmaID[best.ParadigmID]
	if !ok || len(allForms) == 0 || int(best.FormIdx) >= len(allForms) {
		return fallback()
	}
	wordOfTemplate := allForms[best.FormIdx]
	if len([]rune(wordOfTemplate)) < best.SuffixLen {
		return fallback()
	}
	inputRunes := []rune(lowerWord)
	commonSuffix := string(inputRunes[len(inputRunes)-best.SuffixLen:])
	if !strings.HasSuffix(wordOfTemplate, commonSuffix) {
		return fallback()
	}

	inputPrefix := strings.TrimSuffix(lowerWord, commonSuffix)
	dictPrefix := strings.TrimSuffix(wordOfTemplate, commonSuffix)

	// Пропорційна заміна префікса відновлює лему. Якщо лема зразка має
	// іншу основу (суплетивізм), лемою лишається саме слово, але проєкція
	// форм далі працює.
	lemma := lowerWord
	if lemmaOfTemplate := a.lemmaPool[lemmaID]; strings.HasPrefix(lemmaOfTemplate, dictPrefix) {
		lemma = inputPrefix + strings.TrimPrefix(lemmaOfTemplate, dictPrefix)
	}

	p := newParsed(word, lemma, a.tagsPool[best.TagsID], predictedScore, best.ParadigmID)
	p.predicted = true
	p.projectable = true
	p.inputPrefix = inputPrefix
	p.dictPrefix = dictPrefix
	return []*Parsed{p}
}

// Lexeme повертає всі форми лексеми, з якої походить розбір, відсортовані
// за словом. Для передбачених слів основа словникового зразка замінюється
// основою вхідного слова.
func (a *MorphAnalyzer) Lexeme(p *Parsed) []*Parsed {
	if p == nil {
		return nil
	}
	if p.predicted && !p.projectable {
		return nil
	}

	collected := a.collectForms(p.paradigmID)
	if len(collected) == 0 {
		return nil
	}

	out := make([]*Parsed, 0, len(collected))
	for form, tagsIDs := range collected {
		word := form
		if p.predicted {
			if !strings.HasPrefix(form, p.dictPrefix) {
				continue
			}
			word = p.inputPrefix + strings.TrimPrefix(form, p.dictPrefix)
		}
		for _, tagsID := range tagsIDs {
			f := newParsed(word, p.Lemma, a.tagsPool[tagsID], p.Score, p.paradigmID)
			f.predicted = p.predicted
			f.projectable = p.projectable
			f.inputPrefix = p.inputPrefix
			f.dictPrefix = p.dictPrefix
			out = append(out, f)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Word != out[j].Word {
			return out[i].Word < out[j].Word
		}
		return out[i].Tags < out[j].Tags
	})
	return out
}

// Inflect ставить розбір у цільовий відмінок. Зберігається число вихідної
// форми (однина, якщо число невідоме) і частина мови. Підказка роду має
// пріоритет над родом самого розбору: це дозволяє відмінювати прикметникові
// прізвища в роді носія. Якщо парадигма не містить потрібної форми,
// повертається ("", false) - відмова, а не помилка.
func (a *MorphAnalyzer) Inflect(p *Parsed, target Case, hint Gender) (string, bool) {
	if p == nil || target == CaseUnknown {
		return "", false
	}
	forms := a.Lexeme(p)
	if len(forms) == 0 {
		return "", false
	}

	number := p.Tag.Number
	if number == NumberUnknown {
		number = Singular
	}
	gender := hint
	if gender == GenderUnknown {
		gender = p.Tag.Gender
	}

	// Форми відсортовані, тож перший відповідний кандидат стабільний.
	for _, f := range forms {
		if f.Tag.POS != p.Tag.POS || f.Tag.Case != target || f.Tag.Number != number {
			continue
		}
		if gender == GenderUnknown || f.Tag.Gender == GenderUnknown || f.Tag.Gender == gender {
			return f.Word, true
		}
	}
	// Другий прохід без урахування роду: покриває парадигми, де цільова
	// форма позначена лише протилежним родом.
	for _, f := range forms {
		if f.Tag.POS == p.Tag.POS && f.Tag.Case == target && f.Tag.Number == number {
			return f.Word, true
		}
	}
	return "", false
}

// collectForms збирає всі форми парадигми разом з ідентифікаторами тегів.
// Одна форма може нести кілька наборів тегів (наприклад, родовий і
// знахідний відмінки істот збігаються).
func (a *MorphAnalyzer) collectForms(pID uint32) map[string][]uint32 {
	results := make(map[string][]uint32)
	for _, pInfo := range a.paradigms[pID] {
		a.dfsGenerate(pInfo.NodeID, []rune(pInfo.Stem), pID, results)
	}
	return results
}

// getFormsByParadigmID повертає канонічно відсортований зріз усіх словоформ
// парадигми. Сортування критичне: FormIdx передбачувача має завжди вказувати
// на те саме слово.
func (a *MorphAnalyzer) getFormsByParadigmID(pID uint32) []string {
	collected := a.collectForms(pID)
	if len(collected) == 0 {
		return nil
	}
	forms := make([]string, 0, len(collected))
	for form := range collected {
		forms = append(forms, form)
	}
	sort.Strings(forms)
	return forms
}

// findBestPrediction шукає найкраще правило передбачення для слова.
// Пробує суфікси довжиною від 5 до 1 у DAWG передбачувача. Серед знайдених
// правил перемагає найдовший суфікс, далі найвища частота, далі менші
// ідентифікатори - порядок повністю детермінований.
func (a *MorphAnalyzer) findBestPrediction(word string) *predictionCandidate {
	runes := []rune(word)
	var candidates []predictionCandidate

	for suffixLen := 5; suffixLen >= 1; suffixLen-- {
		if suffixLen > len(runes) {
			continue
		}

		suffix := string(runes[len(runes)-suffixLen:])
		currentNodeIndex, foundSuffix := uint32(0), true
		for _, char := range suffix {
			childNodeIndex, ok := a.findChild(currentNodeIndex, char, a.predictNodes, a.predictEdges)
			if !ok {
				foundSuffix = false
				break
			}
			currentNodeIndex = childNodeIndex
		}
		if !foundSuffix || !a.predictNodes[currentNodeIndex].IsFinal {
			continue
		}

		node := a.predictNodes[currentNodeIndex]
		payloadStart, payloadEnd := node.PayloadIdx, node.PayloadIdx+uint32(node.PayloadLen)
		for _, p := range a.predictPayloads[payloadStart:payloadEnd] {
			candidates = append(candidates, predictionCandidate{predictInfo: p, SuffixLen: suffixLen})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].SuffixLen != candidates[j].SuffixLen {
			return candidates[i].SuffixLen > candidates[j].SuffixLen
		}
		if candidates[i].Frequency != candidates[j].Frequency {
			return candidates[i].Frequency > candidates[j].Frequency
		}
		if candidates[i].ParadigmID != candidates[j].ParadigmID {
			return candidates[i].ParadigmID < candidates[j].ParadigmID
		}
		if candidates[i].FormIdx != candidates[j].FormIdx {
			return candidates[i].FormIdx < candidates[j].FormIdx
		}
		return candidates[i].TagsID < candidates[j].TagsID
	})
	return &candidates[0]
}

// findChild - універсальний пошук дочірнього вузла за символом.
// Працює з "плоскими" вузлами та ребрами обох DAWG. Ребра кожного вузла
// відсортовані, тож використовується бінарний пошук.
func (a *MorphAnalyzer) findChild(nodeIndex uint32, char rune, nodes []flatNode, edges []flatEdge) (uint32, bool) {
	node := nodes[nodeIndex]
	if node.EdgesLen == 0 {
		return 0, false
	}

	// Ребра одного вузла лежать у глобальному масиві суцільним блоком:
	// відомо, де він починається (EdgesIdx) і якої він довжини (EdgesLen).
	edgesStart, edgesEnd := node.EdgesIdx, node.EdgesIdx+uint32(node.EdgesLen)
	searchSlice := edges[edgesStart:edgesEnd]

	i := sort.Search(len(searchSlice), func(i int) bool { return searchSlice[i].Char >= char })
	if i < len(searchSlice) && searchSlice[i].Char == char {
		return searchSlice[i].NodeID, true
	}
	return 0, false
}

// dfsGenerate рекурсивно обходить DAWG, починаючи з вузла nodeIndex,
// і збирає всі словоформи цільової парадигми, додаючи до них префікс.
func (a *MorphAnalyzer) dfsGenerate(nodeIndex uint32, prefix []rune, targetID uint32, results map[string][]uint32) {
	var findWord func(uint32, []rune)

	findWord = func(currNodeIdx uint32, currentSuffix []rune) {
		currNode := a.nodes[currNodeIdx]
		if currNode.IsFinal {
			payloadStart, payloadEnd := currNode.PayloadIdx, currNode.PayloadIdx+uint32(currNode.PayloadLen)
			for _, info := range a.payloads[payloadStart:payloadEnd] {
				if info.ParadigmID == targetID {
					form := string(append(prefix, currentSuffix...))
					results[form] = append(results[form], info.TagsID)
				}
			}
		}

		edgesStart, edgesEnd := currNode.EdgesIdx, currNode.EdgesIdx+uint32(currNode.EdgesLen)
		for _, edge := range a.edges[edgesStart:edgesEnd] {
			findWord(edge.NodeID, append(currentSuffix, edge.Char))
		}
	}

	findWord(nodeIndex, nil)
}
