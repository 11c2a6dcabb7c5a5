package models

import (
	"encoding/json"
	"net/http"

	"crewhub/internal/errs"
)

// Problem — ответ об ошибке в стиле RFC 7807.
type Problem struct {
	Type     string      `json:"type,omitempty"`
	Title    string      `json:"title"`
	Status   int         `json:"status"`
	Detail   string      `json:"detail,omitempty"`
	Instance string      `json:"instance,omitempty"`
	Extra    interface{} `json:"extra,omitempty"`
}

func WriteProblem(w http.ResponseWriter, status int, title, detail string, extra any) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Title:  title,
		Status: status,
		Detail: detail,
		Extra:  extra,
	})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError переводит ошибку сервиса в problem+json. Текст неизвестных
// ошибок наружу не уходит.
func WriteError(w http.ResponseWriter, err error) {
	status := errs.StatusOf(err)
	detail := err.Error()
	if !errs.IsKnown(err) {
		detail = "internal error"
	}
	WriteProblem(w, status, http.StatusText(status), detail, nil)
}

// Message — короткий позитивный ответ ("user created" и т.п.).
type Message struct {
	Message string `json:"message"`
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Message{Message: msg})
}
