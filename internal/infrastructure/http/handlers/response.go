package handlers

import (
	"encoding/json"
	"net/http"
)

// Every response uses the envelope the original client expects:
// {"status":"success"|"error", "message":..., "data":...} with "_id" keys
// inside data. The "code" field is additive, for stable client handling.

type envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeData(w http.ResponseWriter, code int, data interface{}) {
	writeJSON(w, code, envelope{Status: "success", Data: data})
}

func writeMessage(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, envelope{Status: "success", Message: message, Data: data})
}

// writeErr sends {"status":"error","message":...,"code":...}. If errCode is
// empty, a default is derived from the HTTP status.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	writeJSON(w, code, envelope{Status: "error", Message: message, Code: errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeAccountLocked
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
