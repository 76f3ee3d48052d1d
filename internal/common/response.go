package common

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape for every JSON response:
// {status, token?, data?, message?}. Status is "success" for 2xx,
// "fail" for client errors and "error" for server errors.
type Envelope struct {
	Status  string      `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// StatusLabel returns the envelope status word for an HTTP code.
func StatusLabel(code int) string {
	switch {
	case code < 400:
		return "success"
	case code < 500:
		return "fail"
	default:
		return "error"
	}
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Envelope{Status: StatusLabel(code), Message: message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","message":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
