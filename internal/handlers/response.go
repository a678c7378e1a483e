package handlers

import (
	"encoding/json"
	"net/http"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func toJSON(storage map[string]any, payload Payload) {
	storage[payload.Key] = payload.Payload
}

// responseWithPayload собирает объект ответа из пар ключ-значение
func responseWithPayload(w http.ResponseWriter, code int, payload ...Payload) {
	storage := make(map[string]any, len(payload))
	for _, pl := range payload {
		toJSON(storage, pl)
	}
	responseWithJSON(w, code, storage)
}

func responseWithJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func responseWithError(w http.ResponseWriter, code int, errCode, message string) {
	responseWithPayload(w, code,
		toPayload("error", errCode),
		toPayload("message", message),
		toPayload("details", map[string]any{}),
	)
}
