package httpapi

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes payload as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// RespondError writes a {"error": message} JSON body with the given status code.
func RespondError(w http.ResponseWriter, code int, message string) {
	RespondJSON(w, code, map[string]string{"error": message})
}
