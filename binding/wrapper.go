// Збірка C-бібліотеки для викликів з Python чи C#:
//
//	go build -buildmode=c-shared -o vidminok.so ./binding
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"unsafe"

	"github.com/steosofficial/vidminok/analyzer"
	"github.com/steosofficial/vidminok/morpher"
)

var (
	morphAnalyzer *analyzer.MorphAnalyzer
	morph         *morpher.Morpher
)

type response struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func toJSON(result string, err error) *C.char {
	var resp response
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Result = result
	}
	raw, _ := json.Marshal(resp)
	return C.CString(string(raw))
}

//export CreateMorpher
func CreateMorpher(dictPath *C.char) C.int {
	var (
		a   *analyzer.MorphAnalyzer
		err error
	)
	if path := C.GoString(dictPath); path != "" {
		a, err = analyzer.Load(path)
	} else {
		a, err = analyzer.LoadDefault()
	}
	if err != nil {
		return -1
	}
	m, err := morpher.New(a)
	if err != nil {
		a.Close()
		return -1
	}
	morphAnalyzer = a
	morph = m
	return 0
}

//export MorphName
func MorphName(fullName, caseCode *C.char) *C.char {
	if morph == nil {
		return C.CString(`{"error":"морфер не ініціалізовано"}`)
	}
	result, err := morph.MorphName(C.GoString(fullName), C.GoString(caseCode))
	return toJSON(result, err)
}

//export MorphSentence
func MorphSentence(text, caseCode *C.char, position C.int) *C.char {
	if morph == nil {
		return C.CString(`{"error":"морфер не ініціалізовано"}`)
	}
	result, err := morph.MorphSentence(C.GoString(text), C.GoString(caseCode), position != 0)
	return toJSON(result, err)
}

//export FreeString
func FreeString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

//export ReleaseMorpher
func ReleaseMorpher() {
	if morphAnalyzer != nil {
		morphAnalyzer.Close()
	}
	morphAnalyzer = nil
	morph = nil
}

func main() {}
