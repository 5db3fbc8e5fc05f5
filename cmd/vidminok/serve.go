package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/steosofficial/vidminok/morpher"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустити HTTP API відмінювання",
		Long: `Запускає JSON REST API:

  GET  /api/name?name=<ПІБ>&case=<відмінок>
  GET  /api/sentence?text=<фраза>&case=<відмінок>[&position=true]
  POST /api/names          тіло: {"names": [...], "case": "...", "workers": N}
  GET  /api/cases`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildMorpher()
			if err != nil {
				return err
			}
			return runServer(m, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8554", "адреса, на якій слухає сервер")
	return cmd
}

// --- ТИПИ ВІДПОВІДЕЙ ---

type resultResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type caseJSON struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type nameItemJSON struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// --- ДОПОМІЖНІ ФУНКЦІЇ ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("не вдалося записати відповідь: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor розрізняє помилки викликача та внутрішні: хибний формат ПІБ
// чи невідомий відмінок - це 400.
func statusFor(err error) int {
	var formatErr *morpher.FormatError
	var caseErr *morpher.UnknownCaseError
	if errors.As(err, &formatErr) || errors.As(err, &caseErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// withRequestID додає до кожної відповіді X-Request-Id і пише один рядок
// логу з тривалістю обробки.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s (%s)", id, r.Method, r.URL.Path, time.Since(start))
	})
}

// --- ОБРОБНИКИ ---

func handleName(m *morpher.Morpher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "потрібен GET")
			return
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			writeError(w, http.StatusBadRequest, "відсутній параметр 'name'")
			return
		}
		result, err := m.MorphName(name, r.URL.Query().Get("case"))
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resultResponse{Result: result})
	}
}

func handleSentence(m *morpher.Morpher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "потрібен GET")
			return
		}
		text := r.URL.Query().Get("text")
		if text == "" {
			writeError(w, http.StatusBadRequest, "відсутній параметр 'text'")
			return
		}
		position, _ := strconv.ParseBool(r.URL.Query().Get("position"))

		result, err := m.MorphSentence(text, r.URL.Query().Get("case"), position)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resultResponse{Result: result})
	}
}

// handleNames відмінює пакет ПІБ. Помилки окремих записів повертаються
// всередині елементів відповіді, а не валять увесь запит.
func handleNames(m *morpher.Morpher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "потрібен POST")
			return
		}
		var body struct {
			Names   []string `json:"names"`
			Case    string   `json:"case"`
			Workers int      `json:"workers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Names) == 0 {
			writeError(w, http.StatusBadRequest, "тіло має бути JSON з непорожнім полем 'names'")
			return
		}

		results := m.MorphNameList(body.Names, body.Case, body.Workers)
		items := make([]nameItemJSON, len(results))
		for i, res := range results {
			items[i] = nameItemJSON{Input: res.Input, Output: res.Output}
			if res.Err != nil {
				items[i].Error = res.Err.Error()
			}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// handleCases віддає перелік підтримуваних відмінків - той самий,
// що й меню інтерактивної консолі.
func handleCases(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "потрібен GET")
		return
	}
	out := make([]caseJSON, 0, len(caseMenu))
	for _, c := range caseMenu {
		out = append(out, caseJSON{Code: c.Code, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func runServer(m *morpher.Morpher, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/name", handleName(m))
	mux.HandleFunc("/api/names", handleNames(m))
	mux.HandleFunc("/api/sentence", handleSentence(m))
	mux.HandleFunc("/api/cases", handleCases)

	handler := cors.Default().Handler(withRequestID(mux))
	log.Printf("vidminok слухає на %s", addr)
	return http.ListenAndServe(addr, handler)
}
