// Файл builder.go компілює текстовий лексикон у бінарний словник,
// який потім завантажується через mmap. Формат лексикону: блоки,
// розділені порожніми рядками; перший рядок блоку - лема, решта -
// "форма<TAB>теги". Рядки, що починаються з #, ігноруються.
package analyzer

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unsafe"
)

// CompileStats - підсумок компіляції словника.
type CompileStats struct {
	Lexemes      int   // кількість парадигм
	Forms        int   // кількість словоформ (рядків лексикону)
	Nodes        int   // вузлів в основному DAWG
	Edges        int   // ребер в основному DAWG
	PredictRules int   // правил передбачення
	Bytes        int64 // розмір бінарного словника
}

// formEntry - одна словоформа з її тегами.
type formEntry struct {
	form string
	tags string
}

// lexemeBlock - розібраний блок лексикону: лема та всі її форми.
type lexemeBlock struct {
	lemma string
	forms []formEntry
	line  int // рядок, з якого блок починається (для повідомлень про помилки)
}

// stringPool накопичує унікальні рядки та видає кожному стабільний індекс.
// Нульове значення готове до використання.
type stringPool struct {
	items []string
	index map[string]uint32
}

// intern повертає індекс рядка в пулі; новий рядок додається в кінець.
func (p *stringPool) intern(s string) uint32 {
	if id, ok := p.index[s]; ok {
		return id
	}
	if p.index == nil {
		p.index = make(map[string]uint32)
	}
	id := uint32(len(p.items))
	p.items = append(p.items, s)
	p.index[s] = id
	return id
}

// CompileLexicon читає текстовий лексикон із srcPath, будує обидва DAWG
// (основний і передбачувача) та записує бінарний словник у dstPath.
// Помилки формату повідомляються з номером рядка, компіляція зупиняється
// на першій.
func CompileLexicon(srcPath, dstPath string) (*CompileStats, error) {
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("помилка читання лексикону: %w", err)
	}

	blocks, err := parseLexicon(raw)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, errors.New("лексикон порожній: жодної парадигми")
	}

	var lemmas, tags stringPool

	// Основний DAWG: кожна словоформа вставляється з індексами в пули.
	dictRoot := newBuildNode[morphInfo]()
	paradigms := make(map[uint32][]paradigmInfo, len(blocks))
	paradigmToLemmaID := make(map[uint32]uint32, len(blocks))
	totalForms := 0

	for blockIdx, block := range blocks {
		pID := uint32(blockIdx)
		paradigmToLemmaID[pID] = lemmas.intern(block.lemma)

		for _, entry := range block.forms {
			var mi morphInfo
			mi.LemmaID = paradigmToLemmaID[pID]
			mi.TagsID = tags.intern(entry.tags)
			mi.ParadigmID = pID
			dictRoot.insert(entry.form, mi)
			totalForms++
		}
	}

	nodes, edges, payloads, ids, err := flattenTrie(dictRoot)
	if err != nil {
		return nil, err
	}

	// Основа парадигми - найдовший спільний префікс усіх її форм.
	// Вузол, де основа закінчується, стає стартовим для генерації форм.
	for blockIdx, block := range blocks {
		stem := commonPrefix(block.forms)
		stemNode, ok := dictRoot.walk(stem)
		if !ok {
			return nil, fmt.Errorf("внутрішня помилка: основу %q не знайдено в DAWG", stem)
		}
		paradigms[uint32(blockIdx)] = []paradigmInfo{{Stem: stem, NodeID: ids[stemNode]}}
	}

	// DAWG передбачувача: суфікси словоформ довжиною 1..5 символів.
	// Правила агрегуються за ключем і вставляються у відсортованому
	// порядку, щоб словник збирався однаково від запуску до запуску.
	counts := make(map[predictKey]int)
	for blockIdx, block := range blocks {
		pID := uint32(blockIdx)
		sortedForms, formTags := canonicalForms(block, &tags)
		for idx, form := range sortedForms {
			runes := []rune(form)
			for _, tagsID := range formTags[form] {
				for suffixLen := 1; suffixLen <= 5 && suffixLen <= len(runes); suffixLen++ {
					key := predictKey{
						suffix:     string(runes[len(runes)-suffixLen:]),
						paradigmID: pID,
						formIdx:    uint32(idx),
						tagsID:     tagsID,
					}
					counts[key]++
				}
			}
		}
	}

	keys := make([]predictKey, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].suffix != keys[j].suffix {
			return keys[i].suffix < keys[j].suffix
		}
		if keys[i].paradigmID != keys[j].paradigmID {
			return keys[i].paradigmID < keys[j].paradigmID
		}
		if keys[i].formIdx != keys[j].formIdx {
			return keys[i].formIdx < keys[j].formIdx
		}
		return keys[i].tagsID < keys[j].tagsID
	})

	predictRoot := newBuildNode[predictInfo]()
	for _, key := range keys {
		freq := counts[key]
		if freq > 65535 {
			freq = 65535
		}
		var pi predictInfo
		pi.Frequency = uint16(freq)
		pi.ParadigmID = key.paradigmID
		pi.FormIdx = key.formIdx
		pi.TagsID = key.tagsID
		predictRoot.insert(key.suffix, pi)
	}

	predictNodes, predictEdges, predictPayloads, _, err := flattenTrie(predictRoot)
	if err != nil {
		return nil, err
	}

	out, err := assembleDict(complexData{
		LemmaPool:         lemmas.items,
		TagsPool:          tags.items,
		Paradigms:         paradigms,
		ParadigmToLemmaID: paradigmToLemmaID,
	}, nodes, edges, payloads, predictNodes, predictEdges, predictPayloads)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(dstPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("помилка запису словника: %w", err)
	}

	return &CompileStats{
		Lexemes:      len(blocks),
		Forms:        totalForms,
		Nodes:        len(nodes),
		Edges:        len(edges),
		PredictRules: len(predictPayloads),
		Bytes:        int64(len(out)),
	}, nil
}

// parseLexicon розбирає текст лексикону на блоки. Форми та леми зводяться
// до нижнього регістру, теги лишаються як є.
func parseLexicon(raw []byte) ([]lexemeBlock, error) {
	var blocks []lexemeBlock
	var current *lexemeBlock

	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			if current != nil {
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if current == nil {
			if strings.Contains(trimmed, "\t") {
				return nil, fmt.Errorf("рядок %d: перший рядок блоку має містити лему без табуляції", lineNo)
			}
			current = &lexemeBlock{lemma: strings.ToLower(trimmed), line: lineNo}
			continue
		}

		form, tagString, found := strings.Cut(trimmed, "\t")
		if !found {
			return nil, fmt.Errorf("рядок %d: очікується форма і теги, розділені табуляцією", lineNo)
		}
		form = strings.ToLower(strings.TrimSpace(form))
		tagString = strings.TrimSpace(tagString)
		if form == "" || tagString == "" {
			return nil, fmt.Errorf("рядок %d: порожня форма або порожні теги", lineNo)
		}
		current.forms = append(current.forms, formEntry{form: form, tags: tagString})
	}
	if current != nil {
		blocks = append(blocks, *current)
	}

	for _, block := range blocks {
		if len(block.forms) == 0 {
			return nil, fmt.Errorf("рядок %d: парадигма %q не має жодної форми", block.line, block.lemma)
		}
	}
	return blocks, nil
}

// canonicalForms повертає унікальні форми блоку у канонічному (лексикографічному)
// порядку та теги кожної форми в порядку появи в лексиконі. Той самий порядок
// аналізатор відтворює під час виконання, тож FormIdx передбачувача завжди
// вказує на те саме слово.
func canonicalForms(block lexemeBlock, tags *stringPool) ([]string, map[string][]uint32) {
	formTags := make(map[string][]uint32, len(block.forms))
	for _, entry := range block.forms {
		formTags[entry.form] = append(formTags[entry.form], tags.intern(entry.tags))
	}
	sorted := make([]string, 0, len(formTags))
	for form := range formTags {
		sorted = append(sorted, form)
	}
	sort.Strings(sorted)
	return sorted, formTags
}

// commonPrefix обчислює найдовший спільний префікс форм блоку (в рунах).
func commonPrefix(forms []formEntry) string {
	prefix := []rune(forms[0].form)
	for _, entry := range forms[1:] {
		runes := []rune(entry.form)
		if len(runes) < len(prefix) {
			prefix = prefix[:len(runes)]
		}
		for i := range prefix {
			if prefix[i] != runes[i] {
				prefix = prefix[:i]
				break
			}
		}
	}
	return string(prefix)
}

// --- ПОБУДОВА DAWG ---

// buildNode - вузол префіксного дерева на етапі збирання.
type buildNode[P any] struct {
	children map[rune]*buildNode[P]
	payload  []P
	isFinal  bool
}

func newBuildNode[P any]() *buildNode[P] {
	return &buildNode[P]{children: make(map[rune]*buildNode[P])}
}

// insert додає слово в дерево і чіпляє payload до фінального вузла.
func (n *buildNode[P]) insert(word string, p P) {
	current := n
	for _, char := range word {
		child, ok := current.children[char]
		if !ok {
			child = newBuildNode[P]()
			current.children[char] = child
		}
		current = child
	}
	current.isFinal = true
	current.payload = append(current.payload, p)
}

// walk проходить дерево за словом і повертає вузол, де слово закінчується.
func (n *buildNode[P]) walk(word string) (*buildNode[P], bool) {
	current := n
	for _, char := range word {
		child, ok := current.children[char]
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

// flattenTrie перетворює дерево на "плоскі" масиви, готові до запису на диск.
// Вузли нумеруються обходом у ширину (корінь = 0), ребра кожного вузла
// сортуються за символом - цього вимагає бінарний пошук у findChild.
func flattenTrie[P any](root *buildNode[P]) ([]flatNode, []flatEdge, []P, map[*buildNode[P]]uint32, error) {
	order := []*buildNode[P]{root}
	ids := map[*buildNode[P]]uint32{root: 0}

	for head := 0; head < len(order); head++ {
		node := order[head]
		for _, char := range sortedChildRunes(node) {
			child := node.children[char]
			ids[child] = uint32(len(order))
			order = append(order, child)
		}
	}

	// Зрізи створюються через make і заповнюються по полях: байти
	// вирівнювання мають лишатися нульовими.
	nodes := make([]flatNode, len(order))
	var edges []flatEdge
	var payloads []P

	for idx, node := range order {
		if len(node.payload) > 65535 {
			return nil, nil, nil, nil, fmt.Errorf("вузол %d: забагато payload-ів (%d)", idx, len(node.payload))
		}
		if len(node.children) > 65535 {
			return nil, nil, nil, nil, fmt.Errorf("вузол %d: забагато ребер (%d)", idx, len(node.children))
		}

		nodes[idx].PayloadIdx = uint32(len(payloads))
		nodes[idx].PayloadLen = uint16(len(node.payload))
		nodes[idx].IsFinal = node.isFinal
		payloads = append(payloads, node.payload...)

		nodes[idx].EdgesIdx = uint32(len(edges))
		nodes[idx].EdgesLen = uint16(len(node.children))
		for _, char := range sortedChildRunes(node) {
			edges = append(edges, flatEdge{Char: char, NodeID: ids[node.children[char]]})
		}
	}
	return nodes, edges, payloads, ids, nil
}

func sortedChildRunes[P any](n *buildNode[P]) []rune {
	runes := make([]rune, 0, len(n.children))
	for char := range n.children {
		runes = append(runes, char)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

// --- ЗАПИС БІНАРНОГО ФАЙЛУ ---

// predictKey - ключ агрегації правил передбачення.
type predictKey struct {
	suffix     string
	paradigmID uint32
	formIdx    uint32
	tagsID     uint32
}

// assembleDict збирає бінарний словник: заголовок, gzip+gob блок
// "складних" даних, далі сирі масиви, кожен вирівняний на 8 байтів.
func assembleDict(
	cdata complexData,
	nodes []flatNode, edges []flatEdge, payloads []morphInfo,
	predictNodes []flatNode, predictEdges []flatEdge, predictPayloads []predictInfo,
) ([]byte, error) {
	var complexBuf bytes.Buffer
	gzipWriter := gzip.NewWriter(&complexBuf)
	if err := gob.NewEncoder(gzipWriter).Encode(&cdata); err != nil {
		return nil, fmt.Errorf("помилка gob-кодування: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, fmt.Errorf("помилка стиснення даних: %w", err)
	}

	var header dictHeader
	copy(header.Magic[:], dictMagic)

	// Розкладка файлу: спочатку обчислюються всі зсуви, потім секції
	// записуються одна за одною з доповненням нулями до зсуву.
	offset := align8(int64(unsafe.Sizeof(header)))
	header.ComplexDataOffset = offset
	header.ComplexDataLength = int64(complexBuf.Len())
	offset = align8(offset + header.ComplexDataLength)

	header.NodesOffset = offset
	header.NodesCount = int64(len(nodes))
	offset = align8(offset + int64(len(nodes))*int64(unsafe.Sizeof(flatNode{})))

	header.EdgesOffset = offset
	header.EdgesCount = int64(len(edges))
	offset = align8(offset + int64(len(edges))*int64(unsafe.Sizeof(flatEdge{})))

	header.PayloadsOffset = offset
	header.PayloadsCount = int64(len(payloads))
	offset = align8(offset + int64(len(payloads))*int64(unsafe.Sizeof(morphInfo{})))

	header.PredictNodesOffset = offset
	header.PredictNodesCount = int64(len(predictNodes))
	offset = align8(offset + int64(len(predictNodes))*int64(unsafe.Sizeof(flatNode{})))

	header.PredictEdgesOffset = offset
	header.PredictEdgesCount = int64(len(predictEdges))
	offset = align8(offset + int64(len(predictEdges))*int64(unsafe.Sizeof(flatEdge{})))

	header.PredictPayloadsOffset = offset
	header.PredictPayloadsCount = int64(len(predictPayloads))

	var out bytes.Buffer
	if err := binary.Write(&out, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("помилка запису заголовка: %w", err)
	}

	padTo(&out, header.ComplexDataOffset)
	out.Write(complexBuf.Bytes())

	padTo(&out, header.NodesOffset)
	out.Write(sliceBytes(nodes))

	padTo(&out, header.EdgesOffset)
	out.Write(sliceBytes(edges))

	padTo(&out, header.PayloadsOffset)
	out.Write(sliceBytes(payloads))

	padTo(&out, header.PredictNodesOffset)
	out.Write(sliceBytes(predictNodes))

	padTo(&out, header.PredictEdgesOffset)
	out.Write(sliceBytes(predictEdges))

	padTo(&out, header.PredictPayloadsOffset)
	out.Write(sliceBytes(predictPayloads))

	return out.Bytes(), nil
}

func align8(n int64) int64 {
	return (n + 7) &^ 7
}

// padTo доповнює буфер нулями до потрібного зсуву.
func padTo(buf *bytes.Buffer, offset int64) {
	for int64(buf.Len()) < offset {
		buf.WriteByte(0)
	}
}

// sliceBytes повертає байтове представлення зрізу структур без копіювання.
// Розкладка в пам'яті збігається з тією, яку читає bytesToSlice.
func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
}
