package morpher

import (
	"runtime"
	"sync"
)

// NameResult - результат відмінювання одного ПІБ у пакеті.
type NameResult struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Err    error  `json:"-"`
}

// MorphNameList відмінює список ПІБ паралельно. Порядок результатів
// збігається з порядком входу, помилка одного запису не зачіпає решту.
// workers <= 0 означає "кількість CPU".
func (m *Morpher) MorphNameList(fullNames []string, caseCode string, workers int) []NameResult {
	if len(fullNames) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(fullNames) {
		workers = len(fullNames)
	}

	results := make([]NameResult, len(fullNames))
	indexCh := make(chan int, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				// Кожен воркер пише лише у свої індекси, тож зріз
				// результатів не потребує блокувань.
				output, err := m.MorphName(fullNames[i], caseCode)
				results[i] = NameResult{Input: fullNames[i], Output: output, Err: err}
			}
		}()
	}

	for i := range fullNames {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	return results
}
